package topology

import "fmt"

// MinDataInstances is the smallest cluster size accepted: one writer and at
// least one reader in another AZ.
const MinDataInstances = 2

// DataTierCluster is the Aurora MySQL cluster holding Keycloak's state.
type DataTierCluster struct {
	Name                string
	EngineVersion       string // full RDS version, 8.0.mysql_aurora.3.04.0
	MajorVersion        string
	Instances           int
	InstanceType        string
	DefaultDatabase     string
	Port                int
	Tier                Tier
	Policy              string
	Credential          string
	BackupRetentionDays int
	DeletionProtection  bool
	RemovalPolicy       string
}

// Readers returns the number of reader instances behind the writer.
func (d DataTierCluster) Readers() int {
	if d.Instances < 1 {
		return 0
	}
	return d.Instances - 1
}

// JDBCURL builds the connection URL for a resolved endpoint host.
func (d DataTierCluster) JDBCURL(host string) string {
	return fmt.Sprintf("jdbc:mysql://%s:%d/%s", host, d.Port, d.DefaultDatabase)
}

func (d DataTierCluster) references() []string {
	return []string{NodeNetwork, PolicyNode(d.Policy), SecretNode(d.Credential)}
}
