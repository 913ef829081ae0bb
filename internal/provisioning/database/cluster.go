package database

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsrds"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/provisioning/infrastructure"
	"github.com/imamik/kcstack/internal/topology"
	"github.com/imamik/kcstack/internal/util/naming"
)

// Provisioner declares the credential secrets and the Aurora cluster.
type Provisioner struct{}

// NewProvisioner creates a new database provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return provisioning.PhaseDatabase
}

// DependsOn implements the provisioning.Phase interface.
func (p *Provisioner) DependsOn() []string {
	return []string{provisioning.PhaseNetwork, provisioning.PhaseSecurity}
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	// 1. Secrets
	provisionSecrets(ctx)

	// 2. Cluster
	return p.provisionCluster(ctx)
}

func (p *Provisioner) provisionCluster(ctx *provisioning.Context) error {
	d := ctx.Topology.Data
	sg, ok := ctx.State.SecurityGroups[d.Policy]
	if !ok {
		return fmt.Errorf("no security group for policy %s", d.Policy)
	}
	secret, ok := ctx.State.Secrets[d.Credential]
	if !ok {
		return fmt.Errorf("credential secret %s was not declared", d.Credential)
	}
	removal, err := RemovalPolicy(d.RemovalPolicy)
	if err != nil {
		return err
	}

	ctx.Observer.Printf("[%s] Declaring Aurora MySQL %s with %d instances...", provisioning.PhaseDatabase, d.EngineVersion, d.Instances)

	instanceType := awsec2.NewInstanceType(jsii.String(d.InstanceType))
	readers := make([]awsrds.IClusterInstance, 0, d.Readers())
	for _, id := range ReaderIDs(d) {
		readers = append(readers, awsrds.ClusterInstance_Provisioned(jsii.String(id), &awsrds.ProvisionedClusterInstanceProps{
			InstanceType: instanceType,
		}))
	}

	cluster := awsrds.NewDatabaseCluster(ctx.Stack, jsii.String(naming.DatabaseID), &awsrds.DatabaseClusterProps{
		ClusterIdentifier: jsii.String(d.Name),
		Engine: awsrds.DatabaseClusterEngine_AuroraMysql(&awsrds.AuroraMysqlClusterEngineProps{
			Version: awsrds.AuroraMysqlEngineVersion_Of(jsii.String(d.EngineVersion), jsii.String(d.MajorVersion)),
		}),
		Credentials: awsrds.Credentials_FromSecret(secret, nil),
		Writer: awsrds.ClusterInstance_Provisioned(jsii.String("Writer"), &awsrds.ProvisionedClusterInstanceProps{
			InstanceType: instanceType,
		}),
		Readers:             &readers,
		Vpc:                 ctx.State.VPC,
		VpcSubnets:          &awsec2.SubnetSelection{SubnetType: infrastructure.SubnetType(d.Tier)},
		SecurityGroups:      &[]awsec2.ISecurityGroup{sg},
		DefaultDatabaseName: jsii.String(d.DefaultDatabase),
		Port:                jsii.Number(float64(d.Port)),
		StorageEncrypted:    jsii.Bool(true),
		Backup: &awsrds.BackupProps{
			Retention: awscdk.Duration_Days(jsii.Number(float64(d.BackupRetentionDays))),
		},
		DeletionProtection: jsii.Bool(d.DeletionProtection),
		RemovalPolicy:      removal,
	})
	ctx.State.Database = cluster
	ctx.Tag(cluster, provisioning.PhaseDatabase)
	ctx.Declared(provisioning.PhaseDatabase, "database-cluster", naming.DatabaseID)
	return nil
}

// ReaderIDs returns the construct ids of the reader instances.
func ReaderIDs(d topology.DataTierCluster) []string {
	ids := make([]string, 0, d.Readers())
	for i := 1; i <= d.Readers(); i++ {
		ids = append(ids, fmt.Sprintf("Reader%d", i))
	}
	return ids
}

// RemovalPolicy maps a removal policy name to the CDK value.
func RemovalPolicy(name string) (awscdk.RemovalPolicy, error) {
	switch name {
	case "snapshot", "":
		return awscdk.RemovalPolicy_SNAPSHOT, nil
	case "retain":
		return awscdk.RemovalPolicy_RETAIN, nil
	case "destroy":
		return awscdk.RemovalPolicy_DESTROY, nil
	default:
		return "", fmt.Errorf("unknown removal policy %q", name)
	}
}
