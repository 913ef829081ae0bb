package compute

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/topology"
	"github.com/imamik/kcstack/internal/util/naming"
)

// TaskPrincipal is the service principal ECS tasks assume roles with.
const TaskPrincipal = "ecs-tasks.amazonaws.com"

func (p *Provisioner) provisionIdentities(ctx *provisioning.Context) error {
	c := ctx.Topology.Compute
	for _, identity := range []topology.Identity{c.ExecutionIdentity, c.TaskIdentity} {
		id := naming.RoleID(identity.Name)

		policies := make([]awsiam.IManagedPolicy, 0, len(identity.ManagedPolicies))
		for _, name := range identity.ManagedPolicies {
			policies = append(policies, awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String(name)))
		}

		role := awsiam.NewRole(ctx.Stack, jsii.String(id), &awsiam.RoleProps{
			AssumedBy:       principal(ctx.Stack, identity),
			Description:     jsii.String(identity.Description),
			ManagedPolicies: &policies,
		})
		ctx.State.Roles[identity.Name] = role
		ctx.Declared(phase, "role", id)
	}
	return nil
}

// principal returns the ECS tasks principal, restricted to tasks of this
// account when the identity asks for it.
func principal(stack awscdk.Stack, identity topology.Identity) awsiam.IPrincipal {
	if !identity.RestrictToAccount {
		return awsiam.NewServicePrincipal(jsii.String(TaskPrincipal), nil)
	}
	return awsiam.NewServicePrincipal(jsii.String(TaskPrincipal), &awsiam.ServicePrincipalOpts{
		Conditions: &map[string]interface{}{
			"StringEquals": map[string]interface{}{
				"aws:SourceAccount": *stack.Account(),
			},
			"ArnLike": map[string]interface{}{
				"aws:SourceArn": *stack.FormatArn(&awscdk.ArnComponents{
					Service:  jsii.String("ecs"),
					Resource: jsii.String("*"),
				}),
			},
		},
	})
}
