package topology

import "time"

// MinRollingReplicas keeps one task serving while another is replaced.
const MinRollingReplicas = 2

// ElasticityPolicy scales the compute tier between MinReplicas and
// MaxReplicas on CPU and memory utilization.
type ElasticityPolicy struct {
	Target              string
	MinReplicas         int
	MaxReplicas         int
	CPUTargetPercent    int
	MemoryTargetPercent int
	ScaleInCooldown     time.Duration
	ScaleOutCooldown    time.Duration
}

// RegistryDeclaration is an ECR repository declared in its own stack.
type RegistryDeclaration struct {
	RepositoryName string
	MaxImageCount  int
	ScanOnPush     bool
}
