package topology

// Identity names.
const (
	IdentityExecution = "execution"
	IdentityTask      = "task"
)

// ExecutionRolePolicy is the managed policy that lets ECS pull images and
// deliver logs on behalf of a task.
const ExecutionRolePolicy = "service-role/AmazonECSTaskExecutionRolePolicy"

// Identity is an IAM role assumed by ECS tasks. The execution identity is
// used by the agent before the container starts; the task identity is what
// the application runs as.
type Identity struct {
	Name            string
	Description     string
	ManagedPolicies []string

	// RestrictToAccount adds aws:SourceAccount and aws:SourceArn conditions to
	// the trust policy so only ECS in this account can assume the role.
	RestrictToAccount bool

	// DiscoveryBucket grants read/write on the cache discovery bucket.
	DiscoveryBucket bool
}

// NodeID returns the graph node of the identity.
func (i Identity) NodeID() string { return IdentityNode(i.Name) }

// IdentityNode returns the graph node id for an identity name.
func IdentityNode(name string) string { return "identity/" + name }
