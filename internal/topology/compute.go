package topology

import (
	"sort"
	"time"
)

// Ports used by the Keycloak container.
const (
	AppPort       = 8080
	DiscoveryPort = 7800
)

// Port purposes.
const (
	PortApp       = "http"
	PortDiscovery = "jgroups"
)

// Image selects the container image: a registry reference or an ECR
// repository and tag. Exactly one of Registry and Repository is set.
type Image struct {
	Registry   string
	Repository string
	Tag        string
}

// String renders the image reference.
func (i Image) String() string {
	if i.Registry != "" {
		return i.Registry
	}
	return "ecr:" + i.Repository + ":" + i.Tag
}

// DefaultCommand starts Keycloak in production mode.
var DefaultCommand = []string{"start"}

// PortBinding is a container port.
type PortBinding struct {
	Name string
	Port int
}

// LogSpec is the CloudWatch log group the container writes to.
type LogSpec struct {
	Group         string
	RetentionDays int
	StreamPrefix  string
}

// DiscoveryMode selects how cache members find each other.
type DiscoveryMode string

const (
	DiscoveryDNS DiscoveryMode = "dns"
	DiscoveryS3  DiscoveryMode = "s3"
)

// Discovery describes JGroups member discovery.
type Discovery struct {
	Mode DiscoveryMode

	// Namespace and Service form the Cloud Map DNS name for DiscoveryDNS.
	Namespace string
	Service   string
}

// DNSQuery returns the name DNS_PING resolves.
func (d Discovery) DNSQuery() string {
	return d.Service + "." + d.Namespace
}

// ComputeTaskSpec is the Keycloak task definition and the service running it.
type ComputeTaskSpec struct {
	Name              string
	Image             Image
	Command           []string
	CPU               int
	MemoryMiB         int
	Ports             []PortBinding
	Environment       map[string]Value
	ExecutionIdentity Identity
	TaskIdentity      Identity
	Policy            string
	Tier              Tier
	AssignPublicIP    bool
	DesiredCount      int
	Logs              LogSpec
	Discovery         Discovery
	GracePeriod       time.Duration
}

// Port returns the container port with the given name, or 0.
func (c ComputeTaskSpec) Port(name string) int {
	for _, p := range c.Ports {
		if p.Name == name {
			return p.Port
		}
	}
	return 0
}

// EnvNames returns the environment variable names in sorted order.
func (c ComputeTaskSpec) EnvNames() []string {
	names := make([]string, 0, len(c.Environment))
	for k := range c.Environment {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// UsesDatabaseURL reports whether any variable needs the data tier endpoint.
func (c ComputeTaskSpec) UsesDatabaseURL() bool {
	for _, v := range c.Environment {
		if v.Kind == ValueDatabaseURL {
			return true
		}
	}
	return false
}

// ReferencedSecrets returns the secret names used by the environment, sorted.
func (c ComputeTaskSpec) ReferencedSecrets() []string {
	seen := make(map[string]bool)
	for _, v := range c.Environment {
		if v.Kind == ValueSecretField {
			seen[v.Secret] = true
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (c ComputeTaskSpec) references() []string {
	refs := []string{
		NodeNetwork,
		PolicyNode(c.Policy),
		c.ExecutionIdentity.NodeID(),
		c.TaskIdentity.NodeID(),
	}
	for _, s := range c.ReferencedSecrets() {
		refs = append(refs, SecretNode(s))
	}
	if c.UsesDatabaseURL() {
		refs = append(refs, NodeData)
	}
	return refs
}
