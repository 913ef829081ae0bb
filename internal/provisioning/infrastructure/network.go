package infrastructure

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/topology"
	"github.com/imamik/kcstack/internal/util/naming"
)

// Interface endpoint services. Tasks in isolated subnets reach ECR,
// CloudWatch Logs, Secrets Manager and SSM only through these.
const (
	EndpointECR            = "ecr"
	EndpointECRDocker      = "ecr-docker"
	EndpointLogs           = "logs"
	EndpointSecretsManager = "secretsmanager"
	EndpointSSM            = "ssm"
)

// InterfaceEndpoints returns the interface endpoint services of a network,
// or nil when endpoints are disabled.
func InterfaceEndpoints(n topology.NetworkTopology) []string {
	if !n.Endpoints {
		return nil
	}
	return []string{EndpointECR, EndpointECRDocker, EndpointLogs, EndpointSecretsManager, EndpointSSM}
}

// SubnetType maps a tier to the CDK subnet type.
func SubnetType(t topology.Tier) awsec2.SubnetType {
	if t == topology.TierPublic {
		return awsec2.SubnetType_PUBLIC
	}
	return awsec2.SubnetType_PRIVATE_ISOLATED
}

// EndpointGroup returns the subnet group interface endpoints are placed in:
// the first group of the compute tier.
func EndpointGroup(t *topology.Topology) (string, error) {
	groups := t.Network.GroupNames(t.Compute.Tier)
	if len(groups) == 0 {
		return "", fmt.Errorf("no %s subnet group for endpoints", t.Compute.Tier)
	}
	return groups[0], nil
}

// NetworkPhase declares the VPC.
type NetworkPhase struct{}

// NewNetworkPhase creates a new network phase.
func NewNetworkPhase() *NetworkPhase {
	return &NetworkPhase{}
}

// Name implements the provisioning.Phase interface.
func (p *NetworkPhase) Name() string {
	return provisioning.PhaseNetwork
}

// DependsOn implements the provisioning.Phase interface.
func (p *NetworkPhase) DependsOn() []string {
	return []string{provisioning.PhaseValidation}
}

// Provision implements the provisioning.Phase interface.
func (p *NetworkPhase) Provision(ctx *provisioning.Context) error {
	n := ctx.Topology.Network
	ctx.Observer.Printf("[%s] Declaring VPC %s across %d AZs...", provisioning.PhaseNetwork, n.CIDR, n.MaxAZs)

	// 1. VPC and subnet groups, laid out in declaration order
	subnets := make([]*awsec2.SubnetConfiguration, 0, len(n.Groups))
	for _, g := range n.Groups {
		subnets = append(subnets, &awsec2.SubnetConfiguration{
			Name:       jsii.String(g.Name),
			SubnetType: SubnetType(g.Tier),
			CidrMask:   jsii.Number(float64(g.CIDRMask)),
		})
	}

	vpc := awsec2.NewVpc(ctx.Stack, jsii.String(naming.VPCID), &awsec2.VpcProps{
		IpAddresses:         awsec2.IpAddresses_Cidr(jsii.String(n.CIDR)),
		MaxAzs:              jsii.Number(float64(n.MaxAZs)),
		NatGateways:         jsii.Number(0),
		SubnetConfiguration: &subnets,
		EnableDnsHostnames:  jsii.Bool(true),
		EnableDnsSupport:    jsii.Bool(true),
	})
	ctx.State.VPC = vpc
	ctx.Tag(vpc, provisioning.PhaseNetwork)
	ctx.Declared(provisioning.PhaseNetwork, "vpc", naming.VPCID)

	// 2. Endpoints
	if !n.Endpoints {
		provisioning.LogResourceSkipped(ctx.Observer, provisioning.PhaseNetwork, "endpoints", "network endpoints disabled")
		return nil
	}
	return p.provisionEndpoints(ctx, vpc)
}

func (p *NetworkPhase) provisionEndpoints(ctx *provisioning.Context, vpc awsec2.Vpc) error {
	group, err := EndpointGroup(ctx.Topology)
	if err != nil {
		return err
	}

	// S3 serves ECR image layers and the discovery bucket.
	vpc.AddGatewayEndpoint(jsii.String(naming.EndpointID("s3")), &awsec2.GatewayVpcEndpointOptions{
		Service: awsec2.GatewayVpcEndpointAwsService_S3(),
		Subnets: &[]*awsec2.SubnetSelection{{SubnetType: SubnetType(ctx.Topology.Compute.Tier)}},
	})
	ctx.Declared(provisioning.PhaseNetwork, "gateway-endpoint", naming.EndpointID("s3"))

	for _, name := range InterfaceEndpoints(ctx.Topology.Network) {
		id := naming.EndpointID(name)
		ep := vpc.AddInterfaceEndpoint(jsii.String(id), &awsec2.InterfaceVpcEndpointOptions{
			Service:           interfaceService(name),
			Subnets:           &awsec2.SubnetSelection{SubnetGroupName: jsii.String(group)},
			PrivateDnsEnabled: jsii.Bool(true),
			Open:              jsii.Bool(false),
		})
		ctx.State.Endpoints = append(ctx.State.Endpoints, ep)
		ctx.Declared(provisioning.PhaseNetwork, "interface-endpoint", id)
	}
	return nil
}

func interfaceService(name string) awsec2.IInterfaceVpcEndpointService {
	switch name {
	case EndpointECR:
		return awsec2.InterfaceVpcEndpointAwsService_ECR()
	case EndpointECRDocker:
		return awsec2.InterfaceVpcEndpointAwsService_ECR_DOCKER()
	case EndpointLogs:
		return awsec2.InterfaceVpcEndpointAwsService_CLOUDWATCH_LOGS()
	case EndpointSecretsManager:
		return awsec2.InterfaceVpcEndpointAwsService_SECRETS_MANAGER()
	default:
		return awsec2.InterfaceVpcEndpointAwsService_SSM()
	}
}
