package provisioning

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awselasticloadbalancingv2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsrds"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssecretsmanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsservicediscovery"
)

// State holds the construct handles declared by each phase.
// It is progressively populated as phases complete and is read by
// later phases that reference earlier constructs.
type State struct {
	// Infrastructure results
	VPC            awsec2.Vpc
	Endpoints      []awsec2.InterfaceVpcEndpoint
	SecurityGroups map[string]awsec2.SecurityGroup // policy name -> group
	LoadBalancer   awselasticloadbalancingv2.ApplicationLoadBalancer
	Listener       awselasticloadbalancingv2.ApplicationListener // listener carrying the targets
	TargetGroup    awselasticloadbalancingv2.ApplicationTargetGroup

	// Database results
	Secrets  map[string]awssecretsmanager.Secret // secret name -> secret
	Database awsrds.DatabaseCluster

	// Compute results
	Roles           map[string]awsiam.Role // identity name -> role
	Cluster         awsecs.Cluster
	LogGroup        awslogs.LogGroup
	DiscoveryBucket awss3.Bucket
	Namespace       awsservicediscovery.PrivateDnsNamespace
	TaskDefinition  awsecs.FargateTaskDefinition
	Container       awsecs.ContainerDefinition
	Service         awsecs.FargateService
	Scaling         awsecs.ScalableTaskCount
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{
		SecurityGroups: make(map[string]awsec2.SecurityGroup),
		Secrets:        make(map[string]awssecretsmanager.Secret),
		Roles:          make(map[string]awsiam.Role),
	}
}
