package config

import (
	"strings"
	"time"
)

// Config is the declaration input for one Keycloak deployment.
type Config struct {
	// Name is the deployment name, used for stack and resource naming.
	// Must be DNS-safe: lowercase alphanumeric and hyphens, must start with a letter.
	Name string `yaml:"name" toml:"name"`

	// Environment is a free-form stage label (dev, staging, prod).
	Environment string `yaml:"environment,omitempty" toml:"environment"`

	// Account is the AWS account id. Falls back to CDK_DEFAULT_ACCOUNT.
	Account string `yaml:"account,omitempty" toml:"account"`

	// Region is the AWS region. Falls back to CDK_DEFAULT_REGION.
	Region string `yaml:"region,omitempty" toml:"region"`

	// Tags are applied to every resource in the stack.
	Tags map[string]string `yaml:"tags,omitempty" toml:"tags"`

	Network      NetworkConfig      `yaml:"network" toml:"network"`
	Database     DatabaseConfig     `yaml:"database" toml:"database"`
	Keycloak     KeycloakConfig     `yaml:"keycloak" toml:"keycloak"`
	Service      ServiceConfig      `yaml:"service" toml:"service"`
	Scaling      ScalingConfig      `yaml:"scaling" toml:"scaling"`
	LoadBalancer LoadBalancerConfig `yaml:"load_balancer" toml:"load_balancer"`
	Registry     RegistryConfig     `yaml:"registry,omitempty" toml:"registry"`
}

// NetworkConfig describes the VPC and its subnet groups.
type NetworkConfig struct {
	CIDR   string `yaml:"cidr" toml:"cidr"`
	MaxAZs int    `yaml:"max_azs" toml:"max_azs"`

	// Subnets are laid out in declaration order, each replicated once per AZ.
	Subnets []SubnetConfig `yaml:"subnets" toml:"subnets"`

	// Endpoints adds VPC endpoints for ECR, CloudWatch Logs, Secrets Manager
	// and S3 so tasks can run in isolated subnets.
	Endpoints bool `yaml:"endpoints,omitempty" toml:"endpoints"`
}

// SubnetConfig is one subnet group.
type SubnetConfig struct {
	Name     string     `yaml:"name" toml:"name"`
	Tier     SubnetTier `yaml:"tier" toml:"tier"`
	CIDRMask int        `yaml:"cidr_mask" toml:"cidr_mask"`
}

// DatabaseConfig describes the Aurora MySQL cluster.
type DatabaseConfig struct {
	EngineVersion       EngineVersion `yaml:"engine_version" toml:"engine_version"`
	Instances           int           `yaml:"instances" toml:"instances"`
	InstanceType        string        `yaml:"instance_type" toml:"instance_type"`
	Name                string        `yaml:"name" toml:"name"`
	Port                int           `yaml:"port" toml:"port"`
	Username            string        `yaml:"username" toml:"username"`
	BackupRetentionDays int           `yaml:"backup_retention_days" toml:"backup_retention_days"`
	DeletionProtection  bool          `yaml:"deletion_protection,omitempty" toml:"deletion_protection"`
	RemovalPolicy       RemovalPolicy `yaml:"removal_policy,omitempty" toml:"removal_policy"`
}

// KeycloakConfig holds the application-level settings passed to the container.
type KeycloakConfig struct {
	// Image is a full registry reference (quay.io/keycloak/keycloak:24.0).
	// Mutually exclusive with Repository.
	Image string `yaml:"image,omitempty" toml:"image"`

	// Repository is an ECR repository name; Tag selects the image.
	Repository string `yaml:"repository,omitempty" toml:"repository"`
	Tag        string `yaml:"tag,omitempty" toml:"tag"`

	Hostname      string `yaml:"hostname" toml:"hostname"`
	AdminHostname string `yaml:"admin_hostname,omitempty" toml:"admin_hostname"`
	AdminUsername string `yaml:"admin_username,omitempty" toml:"admin_username"`
	Proxy         string `yaml:"proxy,omitempty" toml:"proxy"`

	// Discovery selects how cluster members find each other.
	Discovery DiscoveryMode `yaml:"discovery,omitempty" toml:"discovery"`

	// Env adds container variables. Values prefixed with "ssm:" are read from
	// SSM Parameter Store, "ssm-secure:" from SecureString parameters and
	// "secret:<name>:<field>" from a declared secret.
	Env map[string]string `yaml:"env,omitempty" toml:"env"`
}

// ServiceConfig sizes the Fargate service.
type ServiceConfig struct {
	CPU              int           `yaml:"cpu" toml:"cpu"`
	Memory           int           `yaml:"memory" toml:"memory"`
	DesiredCount     int           `yaml:"desired_count" toml:"desired_count"`
	Tier             SubnetTier    `yaml:"tier,omitempty" toml:"tier"`
	AssignPublicIP   *bool         `yaml:"assign_public_ip,omitempty" toml:"assign_public_ip"`
	LogRetentionDays int           `yaml:"log_retention_days" toml:"log_retention_days"`
	GracePeriod      time.Duration `yaml:"health_check_grace_period,omitempty" toml:"health_check_grace_period"`
}

// ScalingConfig bounds the service replica count.
type ScalingConfig struct {
	Min              int           `yaml:"min" toml:"min"`
	Max              int           `yaml:"max" toml:"max"`
	CPUTarget        int           `yaml:"cpu_target" toml:"cpu_target"`
	MemoryTarget     int           `yaml:"memory_target" toml:"memory_target"`
	ScaleInCooldown  time.Duration `yaml:"scale_in_cooldown,omitempty" toml:"scale_in_cooldown"`
	ScaleOutCooldown time.Duration `yaml:"scale_out_cooldown,omitempty" toml:"scale_out_cooldown"`
}

// LoadBalancerConfig describes the entry point.
type LoadBalancerConfig struct {
	Public          *bool  `yaml:"public,omitempty" toml:"public"`
	HTTPS           bool   `yaml:"https,omitempty" toml:"https"`
	CertificateARN  string `yaml:"certificate_arn,omitempty" toml:"certificate_arn"`
	HealthCheckPath string `yaml:"health_check_path,omitempty" toml:"health_check_path"`
	StickySessions  *bool  `yaml:"sticky_sessions,omitempty" toml:"sticky_sessions"`
}

// RegistryConfig optionally declares an ECR repository in its own stack.
type RegistryConfig struct {
	Create        bool   `yaml:"create,omitempty" toml:"create"`
	Name          string `yaml:"name,omitempty" toml:"name"`
	MaxImageCount int    `yaml:"max_image_count,omitempty" toml:"max_image_count"`
	ScanOnPush    bool   `yaml:"scan_on_push,omitempty" toml:"scan_on_push"`
}

// StackName returns the CloudFormation stack name for the deployment.
func (c *Config) StackName() string {
	if c.Environment == "" {
		return c.Name
	}
	return c.Name + "-" + c.Environment
}

// UsesRepository reports whether the image comes from an ECR repository.
func (c *Config) UsesRepository() bool {
	return c.Keycloak.Repository != ""
}

// PublicLoadBalancer reports whether the load balancer is internet-facing.
func (c *Config) PublicLoadBalancer() bool {
	return c.LoadBalancer.Public == nil || *c.LoadBalancer.Public
}

// StickySessions reports whether target group stickiness is enabled.
func (c *Config) StickySessions() bool {
	return c.LoadBalancer.StickySessions == nil || *c.LoadBalancer.StickySessions
}

// AssignPublicIP reports whether tasks get a public address.
// Defaults to true for public placement, false otherwise.
func (c *Config) AssignPublicIP() bool {
	if c.Service.AssignPublicIP != nil {
		return *c.Service.AssignPublicIP
	}
	return c.Service.Tier == TierPublic
}

// AdminHost returns the admin console hostname, defaulting to Hostname.
func (c *Config) AdminHost() string {
	if c.Keycloak.AdminHostname != "" {
		return c.Keycloak.AdminHostname
	}
	return c.Keycloak.Hostname
}

// ImageTag returns the repository tag, defaulting to "latest".
func (c *Config) ImageTag() string {
	if t := strings.TrimSpace(c.Keycloak.Tag); t != "" {
		return t
	}
	return "latest"
}
