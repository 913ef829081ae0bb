package topology

import (
	"errors"
	"fmt"
	"sort"
)

// Topology is the complete, immutable declaration of one deployment.
type Topology struct {
	Name        string
	Environment string
	Account     string
	Region      string
	Tags        map[string]string

	Network    NetworkTopology
	Policies   []AccessPolicy
	Secrets    []CredentialSecret
	Data       DataTierCluster
	Compute    ComputeTaskSpec
	Traffic    TrafficDistribution
	Elasticity ElasticityPolicy

	// Registry is set when the ECR repository is declared alongside.
	Registry *RegistryDeclaration
}

// StackName returns the CloudFormation stack name of the deployment.
func (t *Topology) StackName() string {
	if t.Environment == "" {
		return t.Name
	}
	return t.Name + "-" + t.Environment
}

// Policy returns the named access policy.
func (t *Topology) Policy(name string) (AccessPolicy, bool) {
	for _, p := range t.Policies {
		if p.Name == name {
			return p, true
		}
	}
	return AccessPolicy{}, false
}

// Secret returns the named credential secret.
func (t *Topology) Secret(name string) (CredentialSecret, bool) {
	for _, s := range t.Secrets {
		if s.Name == name {
			return s, true
		}
	}
	return CredentialSecret{}, false
}

// Graph returns the dependency graph of every declared entity.
func (t *Topology) Graph() *Graph {
	g := NewGraph()
	g.Add(NodeNetwork)

	for _, p := range t.Policies {
		g.Add(p.NodeID(), NodeNetwork)
		for _, ref := range p.References() {
			g.Add(p.NodeID(), PolicyNode(ref))
		}
	}
	for _, s := range t.Secrets {
		g.Add(s.NodeID())
	}
	g.Add(t.Compute.ExecutionIdentity.NodeID())
	g.Add(t.Compute.TaskIdentity.NodeID())

	g.Add(NodeData, t.Data.references()...)
	g.Add(NodeCompute, t.Compute.references()...)
	g.Add(NodeTraffic, t.Traffic.references()...)
	g.Add(NodeElasticity, t.Elasticity.Target)
	return g
}

// Order returns the resolved declaration order.
func (t *Topology) Order() ([]string, error) {
	return t.Graph().Resolve()
}

// Validate checks every structural rule and returns all violations joined.
// Each violation is a *DeclarationError.
func (t *Topology) Validate() error {
	var errs []error

	errs = append(errs, t.Network.validate()...)
	errs = append(errs, t.validatePolicies()...)
	errs = append(errs, t.validateData()...)
	errs = append(errs, t.validateCompute()...)
	errs = append(errs, t.validateEnvironment()...)
	errs = append(errs, t.validateTraffic()...)
	errs = append(errs, t.validateElasticity()...)

	// Missing references are already reported with more context above.
	if !HasReason(errors.Join(errs...), ReasonMissingRef) {
		if _, err := t.Order(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *Topology) validatePolicies() []error {
	var errs []error
	seen := make(map[string]bool)
	for _, p := range t.Policies {
		if seen[p.Name] {
			errs = append(errs, declErr(p.NodeID(), ReasonInvalid, "declared twice"))
		}
		seen[p.Name] = true
	}

	for _, p := range t.Policies {
		for _, r := range p.Ingress {
			if r.Port < 1 || r.Port > 65535 {
				errs = append(errs, declErr(p.NodeID(), ReasonInvalid, "port %d out of range", r.Port))
			}
			switch r.Source.Kind {
			case ScopeAnywhere, ScopeSelf:
			case ScopeGroup:
				if !seen[r.Source.Group] {
					errs = append(errs, refErr(p.NodeID(), PolicyNode(r.Source.Group), ReasonMissingRef, "ingress source is not a declared policy group"))
				}
			default:
				errs = append(errs, declErr(p.NodeID(), ReasonInvalid, "unknown source scope %q", r.Source.Kind))
			}
		}
	}

	// Only the entry point may be reached from anywhere.
	for _, p := range t.Policies {
		if p.Name == PolicyLoadBalancer {
			continue
		}
		for _, r := range p.Ingress {
			if r.Source.Kind == ScopeAnywhere {
				errs = append(errs, declErr(p.NodeID(), ReasonScope, "port %d is open to anywhere; only %s may be", r.Port, PolicyLoadBalancer))
			}
		}
	}

	if data, ok := t.Policy(t.Data.Policy); ok {
		for _, r := range data.Ingress {
			if r.Source != FromGroup(t.Compute.Policy) {
				errs = append(errs, declErr(data.NodeID(), ReasonScope, "port %d admits %s; the data tier only admits %s", r.Port, r.Source, FromGroup(t.Compute.Policy)))
			}
		}
		if data.AllowAllOutbound {
			errs = append(errs, declErr(data.NodeID(), ReasonScope, "data tier must not allow all outbound traffic"))
		}
	}

	if compute, ok := t.Policy(t.Compute.Policy); ok {
		app := t.Compute.Port(PortApp)
		for _, s := range compute.SourcesForPort(app) {
			if s != FromGroup(t.Traffic.Policy) {
				errs = append(errs, declErr(compute.NodeID(), ReasonScope, "application port %d admits %s; only %s is allowed", app, s, FromGroup(t.Traffic.Policy)))
			}
		}
		disc := t.Compute.Port(PortDiscovery)
		for _, s := range compute.SourcesForPort(disc) {
			if s != Self() {
				errs = append(errs, declErr(compute.NodeID(), ReasonScope, "discovery port %d admits %s; only self is allowed", disc, s))
			}
		}
	}
	return errs
}

func (t *Topology) validateData() []error {
	var errs []error
	d := t.Data

	if d.Instances < MinDataInstances {
		errs = append(errs, declErr(NodeData, ReasonBounds, "%d instances declared; at least %d are required", d.Instances, MinDataInstances))
	}
	if d.Tier != TierIsolated {
		errs = append(errs, declErr(NodeData, ReasonScope, "data tier must be placed in isolated subnets, got %q", d.Tier))
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, declErr(NodeData, ReasonInvalid, "port %d out of range", d.Port))
	}
	if _, ok := t.Secret(d.Credential); !ok {
		errs = append(errs, refErr(NodeData, SecretNode(d.Credential), ReasonMissingRef, "credential secret is not declared"))
	}
	if p, ok := t.Policy(d.Policy); !ok {
		errs = append(errs, refErr(NodeData, PolicyNode(d.Policy), ReasonMissingRef, "access policy is not declared"))
	} else if len(p.SourcesForPort(d.Port)) == 0 {
		errs = append(errs, declErr(p.NodeID(), ReasonInvalid, "no ingress rule for the database port %d", d.Port))
	}
	return errs
}

func (t *Topology) validateCompute() []error {
	var errs []error
	c := t.Compute

	img := c.Image
	if (img.Registry == "") == (img.Repository == "") {
		errs = append(errs, declErr(NodeCompute, ReasonInvalid, "image must name exactly one of a registry reference or a repository"))
	}
	if c.Port(PortApp) == 0 {
		errs = append(errs, declErr(NodeCompute, ReasonInvalid, "no %s port declared", PortApp))
	}
	if c.Port(PortDiscovery) == 0 {
		errs = append(errs, declErr(NodeCompute, ReasonInvalid, "no %s port declared", PortDiscovery))
	}
	if c.ExecutionIdentity.Name == c.TaskIdentity.Name {
		errs = append(errs, declErr(NodeCompute, ReasonInvalid, "execution and task identities must be distinct"))
	}
	if c.Discovery.Mode == DiscoveryS3 && !c.TaskIdentity.DiscoveryBucket {
		errs = append(errs, declErr(c.TaskIdentity.NodeID(), ReasonInvalid, "s3 discovery needs bucket access on the task identity"))
	}
	if !c.Tier.IsValid() {
		errs = append(errs, declErr(NodeCompute, ReasonInvalid, "tier %q is not public or isolated", c.Tier))
	}
	if c.Tier == TierIsolated && !t.Network.Endpoints {
		errs = append(errs, declErr(NodeCompute, ReasonInvalid, "tasks in isolated subnets need network endpoints to pull images and read secrets"))
	}
	if c.Tier == TierPublic && !c.AssignPublicIP && !t.Network.Endpoints {
		errs = append(errs, declErr(NodeCompute, ReasonInvalid, "tasks in public subnets without a public IP cannot reach the registry"))
	}
	if _, ok := t.Policy(c.Policy); !ok {
		errs = append(errs, refErr(NodeCompute, PolicyNode(c.Policy), ReasonMissingRef, "access policy is not declared"))
	}
	return errs
}

// validateEnvironment enforces that credentials only arrive through secrets.
func (t *Topology) validateEnvironment() []error {
	var errs []error
	for _, name := range t.Compute.EnvNames() {
		v := t.Compute.Environment[name]
		entity := fmt.Sprintf("%s/env/%s", NodeCompute, name)

		if IsCredentialName(name) && !v.IsSecret() {
			errs = append(errs, declErr(entity, ReasonSecret, "credential must be a secret reference, got %s", v.Kind))
		}
		if v.Kind == ValueSecretField {
			s, ok := t.Secret(v.Secret)
			switch {
			case !ok:
				errs = append(errs, refErr(entity, SecretNode(v.Secret), ReasonMissingRef, "secret is not declared"))
			case !s.HasField(v.Field):
				errs = append(errs, refErr(entity, SecretNode(v.Secret), ReasonMissingRef, "secret has no field %q", v.Field))
			}
		}
	}
	return errs
}

func (t *Topology) validateTraffic() []error {
	var errs []error
	tr := t.Traffic

	if tr.ListenerPort < 1 || tr.ListenerPort > 65535 {
		errs = append(errs, declErr(NodeTraffic, ReasonInvalid, "listener port %d out of range", tr.ListenerPort))
	}
	if tr.HTTPS != nil && tr.HTTPS.CertificateARN == "" {
		errs = append(errs, declErr(NodeTraffic, ReasonInvalid, "HTTPS listener needs a certificate"))
	}
	if tr.Target != NodeCompute {
		errs = append(errs, refErr(NodeTraffic, tr.Target, ReasonMissingRef, "target must be the compute tier"))
	}
	if tr.TargetPort != t.Compute.Port(PortApp) {
		errs = append(errs, declErr(NodeTraffic, ReasonInvalid, "target port %d is not the application port %d", tr.TargetPort, t.Compute.Port(PortApp)))
	}
	if tr.Public && tr.Tier != TierPublic {
		errs = append(errs, declErr(NodeTraffic, ReasonScope, "internet-facing load balancer must be in public subnets"))
	}
	return errs
}

func (t *Topology) validateElasticity() []error {
	var errs []error
	e := t.Elasticity

	if e.MinReplicas > e.MaxReplicas {
		errs = append(errs, declErr(NodeElasticity, ReasonBounds, "min replicas %d exceeds max replicas %d", e.MinReplicas, e.MaxReplicas))
	}
	if e.MinReplicas < MinRollingReplicas {
		errs = append(errs, declErr(NodeElasticity, ReasonBounds, "min replicas %d is below %d; rolling updates would drop to zero tasks", e.MinReplicas, MinRollingReplicas))
	}
	if d := t.Compute.DesiredCount; d < e.MinReplicas || d > e.MaxReplicas {
		errs = append(errs, declErr(NodeElasticity, ReasonBounds, "desired count %d is outside %d..%d", d, e.MinReplicas, e.MaxReplicas))
	}
	if e.Target != NodeCompute {
		errs = append(errs, refErr(NodeElasticity, e.Target, ReasonMissingRef, "target must be the compute tier"))
	}
	for _, pct := range []int{e.CPUTargetPercent, e.MemoryTargetPercent} {
		if pct < 1 || pct > 100 {
			errs = append(errs, declErr(NodeElasticity, ReasonInvalid, "target utilization %d%% out of range", pct))
		}
	}
	return errs
}

// SortedTags returns tag keys in order.
func (t *Topology) SortedTags() []string {
	keys := make([]string, 0, len(t.Tags))
	for k := range t.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
