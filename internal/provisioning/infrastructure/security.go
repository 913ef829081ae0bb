package infrastructure

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/topology"
	"github.com/imamik/kcstack/internal/util/naming"
)

// SecurityPhase declares one security group per access policy and the
// ingress rules between them.
type SecurityPhase struct{}

// NewSecurityPhase creates a new security phase.
func NewSecurityPhase() *SecurityPhase {
	return &SecurityPhase{}
}

// Name implements the provisioning.Phase interface.
func (p *SecurityPhase) Name() string {
	return provisioning.PhaseSecurity
}

// DependsOn implements the provisioning.Phase interface.
func (p *SecurityPhase) DependsOn() []string {
	return []string{provisioning.PhaseNetwork}
}

// Provision implements the provisioning.Phase interface.
func (p *SecurityPhase) Provision(ctx *provisioning.Context) error {
	if ctx.State.VPC == nil {
		return fmt.Errorf("security groups need the VPC from the %s phase", provisioning.PhaseNetwork)
	}

	// Groups first so rules can reference any of them.
	for _, policy := range ctx.Topology.Policies {
		id := naming.SecurityGroupID(policy.Name)
		sg := awsec2.NewSecurityGroup(ctx.Stack, jsii.String(id), &awsec2.SecurityGroupProps{
			Vpc:              ctx.State.VPC,
			Description:      jsii.String(policy.Description),
			AllowAllOutbound: jsii.Bool(policy.AllowAllOutbound),
		})
		ctx.State.SecurityGroups[policy.Name] = sg
		ctx.Tag(sg, provisioning.PhaseSecurity)
		ctx.Declared(provisioning.PhaseSecurity, "security-group", id)
	}

	for _, policy := range ctx.Topology.Policies {
		sg := ctx.State.SecurityGroups[policy.Name]
		for _, rule := range policy.Ingress {
			peer, err := resolvePeer(ctx.State, sg, rule.Source)
			if err != nil {
				return fmt.Errorf("policy %s port %d: %w", policy.Name, rule.Port, err)
			}
			sg.AddIngressRule(peer, awsec2.Port_Tcp(jsii.Number(float64(rule.Port))), jsii.String(rule.Description), nil)
		}
		ctx.Observer.Printf("[%s] %s admits %d ingress rules", provisioning.PhaseSecurity, policy.Name, len(policy.Ingress))
	}

	return p.openEndpoints(ctx)
}

// openEndpoints lets the compute group reach the interface endpoints on 443.
func (p *SecurityPhase) openEndpoints(ctx *provisioning.Context) error {
	if len(ctx.State.Endpoints) == 0 {
		return nil
	}
	compute, ok := ctx.State.SecurityGroups[ctx.Topology.Compute.Policy]
	if !ok {
		return fmt.Errorf("no security group for policy %s", ctx.Topology.Compute.Policy)
	}
	for _, ep := range ctx.State.Endpoints {
		ep.Connections().AllowDefaultPortFrom(compute, jsii.String("HTTPS from Keycloak tasks"))
	}
	return nil
}

func resolvePeer(state *provisioning.State, self awsec2.SecurityGroup, s topology.SourceScope) (awsec2.IPeer, error) {
	switch s.Kind {
	case topology.ScopeAnywhere:
		return awsec2.Peer_AnyIpv4(), nil
	case topology.ScopeSelf:
		return self, nil
	case topology.ScopeGroup:
		sg, ok := state.SecurityGroups[s.Group]
		if !ok {
			return nil, fmt.Errorf("source group %s is not declared", s.Group)
		}
		return sg, nil
	default:
		return nil, fmt.Errorf("unknown source scope %q", s.Kind)
	}
}
