//go:build integration

package stack

import (
	"context"
	"os"
	"path/filepath"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/kcstack/internal/config"
	"github.com/imamik/kcstack/internal/topology"
	"github.com/imamik/kcstack/internal/util/naming"
)

func integrationTopology(mutate func(*config.Config)) *topology.Topology {
	cfg := config.Default()
	cfg.Account = "123456789012"
	cfg.Region = "eu-west-1"
	cfg.Environment = "dev"
	cfg.Keycloak.Hostname = "auth.example.com"
	if mutate != nil {
		mutate(cfg)
	}
	topo, err := topology.Declare(cfg)
	Expect(err).NotTo(HaveOccurred())
	return topo
}

func template(topo *topology.Topology) assertions.Template {
	app := awscdk.NewApp(nil)
	kc, err := NewKeycloakStack(context.Background(), app, topo, Options{})
	Expect(err).NotTo(HaveOccurred())
	return assertions.Template_FromStack(kc.Stack, nil)
}

var _ = Describe("Keycloak stack", func() {
	Context("with the default configuration", func() {
		var tpl assertions.Template

		BeforeEach(func() {
			tpl = template(integrationTopology(nil))
		})

		It("declares a VPC without NAT gateways", func() {
			tpl.ResourceCountIs(jsii.String("AWS::EC2::VPC"), jsii.Number(1))
			tpl.ResourceCountIs(jsii.String("AWS::EC2::NatGateway"), jsii.Number(0))
		})

		It("declares an Aurora MySQL cluster with a writer and a reader", func() {
			tpl.ResourceCountIs(jsii.String("AWS::RDS::DBCluster"), jsii.Number(1))
			tpl.ResourceCountIs(jsii.String("AWS::RDS::DBInstance"), jsii.Number(2))
			tpl.HasResourceProperties(jsii.String("AWS::RDS::DBCluster"), map[string]interface{}{
				"Engine":           "aurora-mysql",
				"StorageEncrypted": true,
				"DatabaseName":     "keycloakdb",
			})
		})

		It("generates both credential secrets", func() {
			tpl.ResourceCountIs(jsii.String("AWS::SecretsManager::Secret"), jsii.Number(2))
		})

		It("keeps credentials out of the plain container environment", func() {
			By("passing passwords as secrets")
			tpl.HasResourceProperties(jsii.String("AWS::ECS::TaskDefinition"), map[string]interface{}{
				"ContainerDefinitions": assertions.Match_ArrayWith(&[]interface{}{
					assertions.Match_ObjectLike(&map[string]interface{}{
						"Name": "keycloak",
						"Secrets": assertions.Match_ArrayWith(&[]interface{}{
							assertions.Match_ObjectLike(&map[string]interface{}{"Name": "KC_DB_PASSWORD"}),
							assertions.Match_ObjectLike(&map[string]interface{}{"Name": "KEYCLOAK_ADMIN_PASSWORD"}),
						}),
					}),
				}),
			})

			By("never listing them as environment variables")
			tpl.HasResourceProperties(jsii.String("AWS::ECS::TaskDefinition"), map[string]interface{}{
				"ContainerDefinitions": assertions.Match_ArrayWith(&[]interface{}{
					assertions.Match_ObjectLike(&map[string]interface{}{
						"Environment": assertions.Match_Not(assertions.Match_ArrayWith(&[]interface{}{
							assertions.Match_ObjectLike(&map[string]interface{}{"Name": "KC_DB_PASSWORD"}),
						})),
					}),
				}),
			})
		})

		It("runs the service on Fargate behind the load balancer", func() {
			tpl.HasResourceProperties(jsii.String("AWS::ECS::Service"), map[string]interface{}{
				"LaunchType":   "FARGATE",
				"DesiredCount": 2,
			})
			tpl.ResourceCountIs(jsii.String("AWS::ElasticLoadBalancingV2::LoadBalancer"), jsii.Number(1))
			tpl.HasResourceProperties(jsii.String("AWS::ElasticLoadBalancingV2::TargetGroup"), map[string]interface{}{
				"Port":     8080,
				"Protocol": "HTTP",
			})
		})

		It("only lets the compute group reach the database", func() {
			tpl.HasResourceProperties(jsii.String("AWS::EC2::SecurityGroupIngress"), map[string]interface{}{
				"FromPort":              3306,
				"ToPort":                3306,
				"SourceSecurityGroupId": assertions.Match_AnyValue(),
			})
		})

		It("scales on CPU and memory", func() {
			tpl.ResourceCountIs(jsii.String("AWS::ApplicationAutoScaling::ScalableTarget"), jsii.Number(1))
			tpl.ResourceCountIs(jsii.String("AWS::ApplicationAutoScaling::ScalingPolicy"), jsii.Number(2))
		})

		It("exports the load balancer DNS name", func() {
			tpl.HasOutput(jsii.String(OutputLoadBalancerDNS), map[string]interface{}{
				"Export": map[string]interface{}{"Name": naming.OutputExport("keycloak-dev", OutputLoadBalancerDNS)},
			})
		})
	})

	Context("with S3 discovery", func() {
		It("declares the discovery bucket instead of a namespace", func() {
			tpl := template(integrationTopology(func(c *config.Config) {
				c.Keycloak.Discovery = config.DiscoveryS3
			}))
			tpl.ResourceCountIs(jsii.String("AWS::S3::Bucket"), jsii.Number(1))
			tpl.ResourceCountIs(jsii.String("AWS::ServiceDiscovery::PrivateDnsNamespace"), jsii.Number(0))
		})
	})

	Context("when synthesizing an app", func() {
		It("writes the assembly with the registry stack first", func() {
			outdir := GinkgoT().TempDir()
			topo := integrationTopology(func(c *config.Config) {
				c.Registry.Create = true
			})

			res, err := Synthesize(context.Background(), []*topology.Topology{topo}, outdir, Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Directory).To(Equal(outdir))
			Expect(res.Stacks).To(Equal([]string{"keycloak-dev-registry", "keycloak-dev"}))

			_, err = os.Stat(filepath.Join(outdir, "manifest.json"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("reports invalid topologies as errors", func() {
			topo := integrationTopology(nil)
			topo.Data.Instances = 1

			_, err := Synthesize(context.Background(), []*topology.Topology{topo}, GinkgoT().TempDir(), Options{})
			Expect(err).To(MatchError(ContainSubstring("keycloak-dev")))
		})
	})
})
