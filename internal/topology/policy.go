package topology

import "fmt"

// Access policy group names.
const (
	PolicyLoadBalancer = "load-balancer"
	PolicyCompute      = "compute"
	PolicyData         = "data"
)

// ScopeKind is the kind of traffic source an ingress rule admits.
type ScopeKind string

const (
	// ScopeAnywhere admits any IPv4 source. Only the entry point uses it.
	ScopeAnywhere ScopeKind = "anywhere"
	// ScopeSelf admits members of the same policy group.
	ScopeSelf ScopeKind = "self"
	// ScopeGroup admits members of another declared policy group.
	ScopeGroup ScopeKind = "group"
)

// SourceScope is the source of an ingress rule: another declared group, the
// group itself, or the internet. There is no CIDR form.
type SourceScope struct {
	Kind  ScopeKind
	Group string
}

// Anywhere admits any source.
func Anywhere() SourceScope { return SourceScope{Kind: ScopeAnywhere} }

// Self admits the policy's own members.
func Self() SourceScope { return SourceScope{Kind: ScopeSelf} }

// FromGroup admits members of the named policy group.
func FromGroup(name string) SourceScope { return SourceScope{Kind: ScopeGroup, Group: name} }

// String renders the scope for plans and errors.
func (s SourceScope) String() string {
	if s.Kind == ScopeGroup {
		return "group:" + s.Group
	}
	return string(s.Kind)
}

// IngressRule admits TCP traffic on Port from Source.
type IngressRule struct {
	Port        int
	Source      SourceScope
	Description string
}

// AccessPolicy is one security group.
type AccessPolicy struct {
	Name             string
	Description      string
	Ingress          []IngressRule
	AllowAllOutbound bool
}

// NodeID returns the graph node of the policy.
func (p AccessPolicy) NodeID() string { return PolicyNode(p.Name) }

// PolicyNode returns the graph node id for a policy name.
func PolicyNode(name string) string { return "policy/" + name }

// SourcesForPort returns the sources admitted on one port.
func (p AccessPolicy) SourcesForPort(port int) []SourceScope {
	var out []SourceScope
	for _, r := range p.Ingress {
		if r.Port == port {
			out = append(out, r.Source)
		}
	}
	return out
}

// References returns the other policy groups this policy admits traffic from.
func (p AccessPolicy) References() []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range p.Ingress {
		if r.Source.Kind == ScopeGroup && !seen[r.Source.Group] {
			seen[r.Source.Group] = true
			out = append(out, r.Source.Group)
		}
	}
	return out
}

// entryPolicy admits HTTP and, when enabled, HTTPS from anywhere.
func entryPolicy(listenerPort int, https *HTTPSListener) AccessPolicy {
	p := AccessPolicy{
		Name:             PolicyLoadBalancer,
		Description:      "Load balancer entry point",
		AllowAllOutbound: true,
		Ingress: []IngressRule{
			{Port: listenerPort, Source: Anywhere(), Description: fmt.Sprintf("HTTP %d from anywhere", listenerPort)},
		},
	}
	if https != nil {
		p.Ingress = append(p.Ingress, IngressRule{
			Port: https.Port, Source: Anywhere(), Description: fmt.Sprintf("HTTPS %d from anywhere", https.Port),
		})
	}
	return p
}

// computePolicy admits the application port from the entry point and the
// cache discovery port between tasks.
func computePolicy(appPort, discoveryPort int) AccessPolicy {
	return AccessPolicy{
		Name:             PolicyCompute,
		Description:      "Keycloak tasks",
		AllowAllOutbound: true,
		Ingress: []IngressRule{
			{Port: appPort, Source: FromGroup(PolicyLoadBalancer), Description: "Keycloak HTTP from load balancer"},
			{Port: discoveryPort, Source: Self(), Description: "JGroups cluster traffic between tasks"},
		},
	}
}

// dataPolicy admits the database port from the compute group only.
func dataPolicy(dbPort int) AccessPolicy {
	return AccessPolicy{
		Name:             PolicyData,
		Description:      "Aurora MySQL cluster",
		AllowAllOutbound: false,
		Ingress: []IngressRule{
			{Port: dbPort, Source: FromGroup(PolicyCompute), Description: "MySQL from Keycloak tasks"},
		},
	}
}
