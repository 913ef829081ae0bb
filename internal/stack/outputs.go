package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/topology"
	"github.com/imamik/kcstack/internal/util/naming"
)

func addOutputs(stack awscdk.Stack, name string, state *provisioning.State) {
	output := func(id, description string, value *string) {
		awscdk.NewCfnOutput(stack, jsii.String(id), &awscdk.CfnOutputProps{
			Value:       value,
			Description: jsii.String(description),
			ExportName:  jsii.String(naming.OutputExport(name, id)),
		})
	}

	output(OutputLoadBalancerDNS, "DNS name Keycloak is reached at", state.LoadBalancer.LoadBalancerDnsName())
	output(OutputDatabaseEndpoint, "Aurora MySQL writer endpoint", state.Database.ClusterEndpoint().Hostname())
	if s, ok := state.Secrets[topology.SecretDatabase]; ok {
		output(OutputDatabaseSecretArn, "Secret holding the database credentials", s.SecretArn())
	}
	if s, ok := state.Secrets[topology.SecretAdmin]; ok {
		output(OutputAdminSecretArn, "Secret holding the Keycloak administrator credentials", s.SecretArn())
	}
}
