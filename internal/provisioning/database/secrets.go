package database

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awssecretsmanager"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/topology"
	"github.com/imamik/kcstack/internal/util/naming"
)

// provisionSecrets declares every credential secret of the topology. The
// password is generated by Secrets Manager at deploy time.
func provisionSecrets(ctx *provisioning.Context) {
	for _, s := range ctx.Topology.Secrets {
		id := naming.SecretID(s.Name)
		secret := awssecretsmanager.NewSecret(ctx.Stack, jsii.String(id), &awssecretsmanager.SecretProps{
			SecretName:           jsii.String(naming.Secret(ctx.Topology.StackName(), s.Name)),
			Description:          jsii.String(s.Description),
			GenerateSecretString: generator(s),
		})
		ctx.State.Secrets[s.Name] = secret
		ctx.Tag(secret, provisioning.PhaseDatabase)
		ctx.Declared(provisioning.PhaseDatabase, "secret", id)
	}
}

func generator(s topology.CredentialSecret) *awssecretsmanager.SecretStringGenerator {
	return &awssecretsmanager.SecretStringGenerator{
		SecretStringTemplate: jsii.String(s.Template()),
		GenerateStringKey:    jsii.String(s.PasswordKey),
		PasswordLength:       jsii.Number(float64(s.Length)),
		ExcludePunctuation:   jsii.Bool(s.ExcludePunctuation),
		IncludeSpace:         jsii.Bool(false),
	}
}
