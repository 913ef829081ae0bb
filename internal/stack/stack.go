package stack

import (
	"context"
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/topology"
	"github.com/imamik/kcstack/internal/util/tags"
)

// Options carries what a stack declaration needs besides the topology.
type Options struct {
	Observer provisioning.Observer
	Metrics  *provisioning.Metrics

	// Description is the CloudFormation stack description.
	Description string
}

// Stack outputs.
const (
	OutputLoadBalancerDNS   = topology.OutputName
	OutputDatabaseEndpoint  = "DatabaseEndpoint"
	OutputDatabaseSecretArn = "DatabaseSecretArn"
	OutputAdminSecretArn    = "AdminSecretArn"
	OutputRepositoryURI     = "RepositoryUri"
)

// Keycloak is a declared Keycloak stack and the constructs it holds.
type Keycloak struct {
	Stack awscdk.Stack
	State *provisioning.State
}

// NewKeycloakStack declares the stack of one deployment under scope.
func NewKeycloakStack(ctx context.Context, scope constructs.Construct, topo *topology.Topology, opts Options) (*Keycloak, error) {
	name := topo.StackName()
	description := opts.Description
	if description == "" {
		description = fmt.Sprintf("Keycloak %s on ECS Fargate with Aurora MySQL", name)
	}

	stack := awscdk.NewStack(scope, jsii.String(name), &awscdk.StackProps{
		StackName:   jsii.String(name),
		Env:         Environment(topo),
		Description: jsii.String(description),
	})
	applyTags(stack, StackTags(topo))

	observer := opts.Observer
	if observer != nil {
		observer = observer.WithFields(map[string]string{"stack": name})
	}
	pctx := provisioning.NewContext(ctx, stack, topo, observer, opts.Metrics)

	err := provisioning.RunPhases(pctx, Phases())
	pctx.Metrics.ObserveDeclaration(name, err)
	if err != nil {
		return nil, fmt.Errorf("failed to declare stack %s: %w", name, err)
	}

	addOutputs(stack, name, pctx.State)
	return &Keycloak{Stack: stack, State: pctx.State}, nil
}

// Environment returns the stack environment, or nil for an
// environment-agnostic stack when neither account nor region is set.
func Environment(topo *topology.Topology) *awscdk.Environment {
	if topo.Account == "" && topo.Region == "" {
		return nil
	}
	env := &awscdk.Environment{}
	if topo.Account != "" {
		env.Account = jsii.String(topo.Account)
	}
	if topo.Region != "" {
		env.Region = jsii.String(topo.Region)
	}
	return env
}

// StackTags returns the tags applied to every construct of the stack.
func StackTags(topo *topology.Topology) *tags.TagBuilder {
	return tags.NewTagBuilder(topo.StackName()).
		WithDeployment(topo.Name).
		WithEnvironment(topo.Environment).
		Merge(topo.Tags)
}

func applyTags(scope constructs.IConstruct, tb *tags.TagBuilder) {
	values := tb.Build()
	for _, k := range tb.Keys() {
		awscdk.Tags_Of(scope).Add(jsii.String(k), jsii.String(values[k]), nil)
	}
}
