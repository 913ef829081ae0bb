package compute

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsecr"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsssm"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/topology"
	"github.com/imamik/kcstack/internal/util/naming"
)

// resolver turns container values into what ECS consumes. Each field
// resolves one reference kind.
type resolver struct {
	parameter       func(envName, param string) string
	secureParameter func(envName, param string) awsecs.Secret
	secretField     func(secret, field string) (awsecs.Secret, error)
	databaseURL     func() (string, error)
	discoveryBucket func() (string, error)
}

// resolve splits the environment into plain variables and ECS secrets.
func (r resolver) resolve(env map[string]topology.Value) (map[string]*string, map[string]awsecs.Secret, error) {
	plain := make(map[string]*string)
	secrets := make(map[string]awsecs.Secret)

	for name, v := range env {
		switch v.Kind {
		case topology.ValueLiteral:
			plain[name] = jsii.String(v.Text)
		case topology.ValueParameter:
			plain[name] = jsii.String(r.parameter(name, v.Text))
		case topology.ValueSecureParameter:
			secrets[name] = r.secureParameter(name, v.Text)
		case topology.ValueSecretField:
			s, err := r.secretField(v.Secret, v.Field)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", name, err)
			}
			secrets[name] = s
		case topology.ValueDatabaseURL:
			url, err := r.databaseURL()
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", name, err)
			}
			plain[name] = jsii.String(url)
		case topology.ValueDiscoveryBucket:
			bucket, err := r.discoveryBucket()
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", name, err)
			}
			plain[name] = jsii.String(v.Text + bucket)
		default:
			return nil, nil, fmt.Errorf("%s: unknown value kind %q", name, v.Kind)
		}
	}
	return plain, secrets, nil
}

// stackResolver resolves references against the constructs already declared.
func stackResolver(ctx *provisioning.Context) resolver {
	return resolver{
		parameter: func(_, param string) string {
			return *awsssm.StringParameter_ValueForStringParameter(ctx.Stack, jsii.String(param), nil)
		},
		secureParameter: func(envName, param string) awsecs.Secret {
			p := awsssm.StringParameter_FromSecureStringParameterAttributes(ctx.Stack, jsii.String(naming.ID("env", envName, "parameter")), &awsssm.SecureStringParameterAttributes{
				ParameterName: jsii.String(param),
			})
			return awsecs.Secret_FromSsmParameter(p)
		},
		secretField: func(secret, field string) (awsecs.Secret, error) {
			s, ok := ctx.State.Secrets[secret]
			if !ok {
				return nil, fmt.Errorf("secret %s was not declared", secret)
			}
			return awsecs.Secret_FromSecretsManager(s, jsii.String(field)), nil
		},
		databaseURL: func() (string, error) {
			if ctx.State.Database == nil {
				return "", fmt.Errorf("database URL needs the cluster from the %s phase", provisioning.PhaseDatabase)
			}
			return ctx.Topology.Data.JDBCURL(*ctx.State.Database.ClusterEndpoint().Hostname()), nil
		},
		discoveryBucket: func() (string, error) {
			if ctx.State.DiscoveryBucket == nil {
				return "", fmt.Errorf("discovery bucket was not declared")
			}
			return *ctx.State.DiscoveryBucket.BucketName(), nil
		},
	}
}

func (p *Provisioner) provisionTask(ctx *provisioning.Context) error {
	c := ctx.Topology.Compute

	td := awsecs.NewFargateTaskDefinition(ctx.Stack, jsii.String(naming.TaskDefinitionID), &awsecs.FargateTaskDefinitionProps{
		Family:         jsii.String(naming.TaskFamily(c.Name)),
		Cpu:            jsii.Number(float64(c.CPU)),
		MemoryLimitMiB: jsii.Number(float64(c.MemoryMiB)),
		ExecutionRole:  ctx.State.Roles[c.ExecutionIdentity.Name],
		TaskRole:       ctx.State.Roles[c.TaskIdentity.Name],
	})
	ctx.State.TaskDefinition = td
	ctx.Declared(phase, "task-definition", naming.TaskDefinitionID)

	plain, secrets, err := stackResolver(ctx).resolve(c.Environment)
	if err != nil {
		return fmt.Errorf("failed to resolve container environment: %w", err)
	}

	opts := &awsecs.ContainerDefinitionOptions{
		Image:     containerImage(ctx, c.Image),
		Essential: jsii.Bool(true),
		Logging: awsecs.LogDrivers_AwsLogs(&awsecs.AwsLogDriverProps{
			StreamPrefix: jsii.String(c.Logs.StreamPrefix),
			LogGroup:     ctx.State.LogGroup,
		}),
	}
	if len(c.Command) > 0 {
		opts.Command = jsii.Strings(c.Command...)
	}

	container := td.AddContainer(jsii.String(naming.ContainerID), opts)

	// Sorted so synthesized templates are stable between runs.
	for _, name := range slices.Sorted(maps.Keys(plain)) {
		container.AddEnvironment(jsii.String(name), plain[name])
	}
	for _, name := range slices.Sorted(maps.Keys(secrets)) {
		container.AddSecret(jsii.String(name), secrets[name])
	}
	for _, port := range c.Ports {
		container.AddPortMappings(&awsecs.PortMapping{
			Name:          jsii.String(port.Name),
			ContainerPort: jsii.Number(float64(port.Port)),
			Protocol:      awsecs.Protocol_TCP,
		})
	}
	ctx.State.Container = container
	ctx.Declared(phase, "container", naming.ContainerID)
	ctx.Observer.Printf("[%s] Container %s: %d variables, %d secrets", phase, c.Image, len(plain), len(secrets))
	return nil
}

// containerImage returns the registry image, or the ECR repository image
// which also grants the execution role pull access.
func containerImage(ctx *provisioning.Context, img topology.Image) awsecs.ContainerImage {
	if img.Repository == "" {
		return awsecs.ContainerImage_FromRegistry(jsii.String(img.Registry), nil)
	}
	repo := awsecr.Repository_FromRepositoryName(ctx.Stack, jsii.String(naming.RepositoryID), jsii.String(img.Repository))
	return awsecs.ContainerImage_FromEcrRepository(repo, jsii.String(img.Tag))
}
