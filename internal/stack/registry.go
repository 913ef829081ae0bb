package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecr"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/topology"
	"github.com/imamik/kcstack/internal/util/naming"
)

// NewRegistryStack declares the ECR repository of a topology in its own
// stack. It returns nil when the topology declares no repository.
func NewRegistryStack(scope constructs.Construct, topo *topology.Topology, opts Options) awscdk.Stack {
	reg := topo.Registry
	if reg == nil {
		return nil
	}

	name := naming.RegistryStack(topo.StackName())
	stack := awscdk.NewStack(scope, jsii.String(name), &awscdk.StackProps{
		StackName:   jsii.String(name),
		Env:         Environment(topo),
		Description: jsii.String("Keycloak container image repository"),
	})
	applyTags(stack, StackTags(topo).WithComponent("registry"))

	repo := awsecr.NewRepository(stack, jsii.String(naming.RepositoryID), &awsecr.RepositoryProps{
		RepositoryName:  jsii.String(reg.RepositoryName),
		ImageScanOnPush: jsii.Bool(reg.ScanOnPush),
		RemovalPolicy:   awscdk.RemovalPolicy_RETAIN,
		LifecycleRules: &[]*awsecr.LifecycleRule{{
			Description:   jsii.String("Keep the most recent images"),
			MaxImageCount: jsii.Number(float64(reg.MaxImageCount)),
		}},
	})

	awscdk.NewCfnOutput(stack, jsii.String(OutputRepositoryURI), &awscdk.CfnOutputProps{
		Value:       repo.RepositoryUri(),
		Description: jsii.String("Repository Keycloak images are pushed to"),
		ExportName:  jsii.String(naming.OutputExport(name, OutputRepositoryURI)),
	})

	if opts.Observer != nil {
		provisioning.LogResourceDeclared(opts.Observer, "registry", "repository", reg.RepositoryName)
	}
	if opts.Metrics != nil {
		opts.Metrics.ResourceDeclared("registry", "repository")
	}
	return stack
}
