package compute

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsservicediscovery"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/topology"
	"github.com/imamik/kcstack/internal/util/naming"
)

// discoveryExpiryDays bounds how long stale member records survive in the
// discovery bucket.
const discoveryExpiryDays = 1

// dnsTTLSeconds is the TTL of the Cloud Map A records DNS_PING resolves.
const dnsTTLSeconds = 10

func (p *Provisioner) provisionDiscovery(ctx *provisioning.Context) error {
	d := ctx.Topology.Compute.Discovery

	switch d.Mode {
	case topology.DiscoveryS3:
		bucket := awss3.NewBucket(ctx.Stack, jsii.String(naming.DiscoveryID), &awss3.BucketProps{
			BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
			Encryption:        awss3.BucketEncryption_S3_MANAGED,
			EnforceSSL:        jsii.Bool(true),
			RemovalPolicy:     awscdk.RemovalPolicy_DESTROY,
			LifecycleRules: &[]*awss3.LifecycleRule{{
				Expiration: awscdk.Duration_Days(jsii.Number(discoveryExpiryDays)),
			}},
		})
		ctx.State.DiscoveryBucket = bucket
		ctx.Tag(bucket, phase)
		ctx.Declared(phase, "bucket", naming.DiscoveryID)

		if ctx.Topology.Compute.TaskIdentity.DiscoveryBucket {
			bucket.GrantReadWrite(ctx.State.Roles[ctx.Topology.Compute.TaskIdentity.Name], nil)
		}
		provisioning.LogResourceSkipped(ctx.Observer, phase, "namespace", "s3 discovery does not use Cloud Map")

	default:
		ns := awsservicediscovery.NewPrivateDnsNamespace(ctx.Stack, jsii.String(naming.NamespaceID), &awsservicediscovery.PrivateDnsNamespaceProps{
			Name:        jsii.String(d.Namespace),
			Vpc:         ctx.State.VPC,
			Description: jsii.String("Keycloak cache member discovery"),
		})
		ctx.State.Namespace = ns
		ctx.Tag(ns, phase)
		ctx.Declared(phase, "namespace", naming.NamespaceID)
	}
	return nil
}
