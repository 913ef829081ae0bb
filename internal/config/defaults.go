package config

import "time"

// Default values applied by ApplyDefaults.
const (
	DefaultName             = "keycloak"
	DefaultVPCCIDR          = "10.1.0.0/16"
	DefaultMaxAZs           = 2
	DefaultSubnetMask       = 24
	DefaultDBInstances      = 2
	DefaultDBInstanceType   = "t3.medium"
	DefaultDBName           = "keycloakdb"
	DefaultDBPort           = 3306
	DefaultDBUsername       = "keycloak_user"
	DefaultBackupRetention  = 7
	DefaultImage            = "quay.io/keycloak/keycloak:latest"
	DefaultAdminUsername    = "admin"
	DefaultProxy            = "edge"
	DefaultCPU              = 1024
	DefaultMemory           = 4096
	DefaultDesiredCount     = 2
	DefaultLogRetentionDays = 30
	DefaultGracePeriod      = 120 * time.Second
	DefaultScaleMin         = 2
	DefaultScaleMax         = 10
	DefaultCPUTarget        = 50
	DefaultMemoryTarget     = 50
	DefaultCooldown         = 60 * time.Second
	DefaultHealthCheckPath  = "/health/ready"
	DefaultRepositoryName   = "sample_repository"
	DefaultMaxImageCount    = 10
)

// DefaultSubnets returns the two public and two isolated subnet groups the
// deployment has always used.
func DefaultSubnets() []SubnetConfig {
	return []SubnetConfig{
		{Name: "publicForEcsFargate1", Tier: TierPublic, CIDRMask: DefaultSubnetMask},
		{Name: "publicForEcsFargate2", Tier: TierPublic, CIDRMask: DefaultSubnetMask},
		{Name: "privateForRds1", Tier: TierIsolated, CIDRMask: DefaultSubnetMask},
		{Name: "privateForRds2", Tier: TierIsolated, CIDRMask: DefaultSubnetMask},
	}
}

// Default returns a complete configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero-valued fields only. A configured instances: 1 is
// kept and rejected by Validate.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}

	n := &c.Network
	if n.CIDR == "" {
		n.CIDR = DefaultVPCCIDR
	}
	if n.MaxAZs == 0 {
		n.MaxAZs = DefaultMaxAZs
	}
	if len(n.Subnets) == 0 {
		n.Subnets = DefaultSubnets()
	}
	for i := range n.Subnets {
		if n.Subnets[i].CIDRMask == 0 {
			n.Subnets[i].CIDRMask = DefaultSubnetMask
		}
	}

	d := &c.Database
	if d.EngineVersion == "" {
		d.EngineVersion = DefaultEngineVersion
	}
	if d.Instances == 0 {
		d.Instances = DefaultDBInstances
	}
	if d.InstanceType == "" {
		d.InstanceType = DefaultDBInstanceType
	}
	if d.Name == "" {
		d.Name = DefaultDBName
	}
	if d.Port == 0 {
		d.Port = DefaultDBPort
	}
	if d.Username == "" {
		d.Username = DefaultDBUsername
	}
	if d.BackupRetentionDays == 0 {
		d.BackupRetentionDays = DefaultBackupRetention
	}
	if d.RemovalPolicy == "" {
		d.RemovalPolicy = RemovalSnapshot
	}

	r := &c.Registry
	if r.Name == "" {
		r.Name = c.Keycloak.Repository
		if r.Name == "" {
			r.Name = DefaultRepositoryName
		}
	}
	if r.MaxImageCount == 0 {
		r.MaxImageCount = DefaultMaxImageCount
	}

	k := &c.Keycloak
	if k.Image == "" && k.Repository == "" {
		if r.Create {
			k.Repository = r.Name
		} else {
			k.Image = DefaultImage
		}
	}
	if k.AdminUsername == "" {
		k.AdminUsername = DefaultAdminUsername
	}
	if k.Proxy == "" {
		k.Proxy = DefaultProxy
	}
	if k.Discovery == "" {
		k.Discovery = DiscoveryDNS
	}

	s := &c.Service
	if s.CPU == 0 {
		s.CPU = DefaultCPU
	}
	if s.Memory == 0 {
		s.Memory = DefaultMemory
	}
	if s.DesiredCount == 0 {
		s.DesiredCount = DefaultDesiredCount
	}
	if s.Tier == "" {
		s.Tier = TierPublic
	}
	if s.LogRetentionDays == 0 {
		s.LogRetentionDays = DefaultLogRetentionDays
	}
	if s.GracePeriod == 0 {
		s.GracePeriod = DefaultGracePeriod
	}

	sc := &c.Scaling
	if sc.Min == 0 {
		sc.Min = DefaultScaleMin
	}
	if sc.Max == 0 {
		sc.Max = DefaultScaleMax
	}
	if sc.CPUTarget == 0 {
		sc.CPUTarget = DefaultCPUTarget
	}
	if sc.MemoryTarget == 0 {
		sc.MemoryTarget = DefaultMemoryTarget
	}
	if sc.ScaleInCooldown == 0 {
		sc.ScaleInCooldown = DefaultCooldown
	}
	if sc.ScaleOutCooldown == 0 {
		sc.ScaleOutCooldown = DefaultCooldown
	}

	if c.LoadBalancer.HealthCheckPath == "" {
		c.LoadBalancer.HealthCheckPath = DefaultHealthCheckPath
	}
}
