package compute

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsservicediscovery"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/provisioning/infrastructure"
	"github.com/imamik/kcstack/internal/topology"
	"github.com/imamik/kcstack/internal/util/naming"
)

// Rolling update bounds: with two tasks, one keeps serving while the
// replacement starts.
const (
	minHealthyPercent = 50
	maxHealthyPercent = 200
)

func (p *Provisioner) provisionService(ctx *provisioning.Context) error {
	c := ctx.Topology.Compute
	sg, ok := ctx.State.SecurityGroups[c.Policy]
	if !ok {
		return fmt.Errorf("no security group for policy %s", c.Policy)
	}

	props := &awsecs.FargateServiceProps{
		Cluster:           ctx.State.Cluster,
		TaskDefinition:    ctx.State.TaskDefinition,
		ServiceName:       jsii.String(naming.Service(c.Name)),
		DesiredCount:      jsii.Number(float64(c.DesiredCount)),
		SecurityGroups:    &[]awsec2.ISecurityGroup{sg},
		VpcSubnets:        &awsec2.SubnetSelection{SubnetType: infrastructure.SubnetType(c.Tier)},
		AssignPublicIp:    jsii.Bool(c.AssignPublicIP),
		MinHealthyPercent: jsii.Number(minHealthyPercent),
		MaxHealthyPercent: jsii.Number(maxHealthyPercent),
		CircuitBreaker: &awsecs.DeploymentCircuitBreaker{
			Enable:   jsii.Bool(true),
			Rollback: jsii.Bool(true),
		},
	}
	if c.GracePeriod > 0 {
		props.HealthCheckGracePeriod = awscdk.Duration_Seconds(jsii.Number(c.GracePeriod.Seconds()))
	}
	if c.Discovery.Mode == topology.DiscoveryDNS {
		if ctx.State.Namespace == nil {
			return fmt.Errorf("dns discovery needs the Cloud Map namespace")
		}
		props.CloudMapOptions = &awsecs.CloudMapOptions{
			CloudMapNamespace: ctx.State.Namespace,
			Name:              jsii.String(c.Discovery.Service),
			DnsRecordType:     awsservicediscovery.DnsRecordType_A,
			DnsTtl:            awscdk.Duration_Seconds(jsii.Number(dnsTTLSeconds)),
		}
	}

	service := awsecs.NewFargateService(ctx.Stack, jsii.String(naming.ServiceID), props)
	ctx.State.Service = service
	ctx.Tag(service, phase)
	ctx.Declared(phase, "fargate-service", naming.ServiceID)
	ctx.Observer.Printf("[%s] Service %s runs %d tasks in %s subnets", phase, naming.Service(c.Name), c.DesiredCount, c.Tier)
	return nil
}
