package config

import (
	"errors"
	"fmt"
	"net/netip"
	"regexp"
	"strings"
)

var (
	nameRegex         = regexp.MustCompile(`^[a-z][a-z0-9-]{0,30}[a-z0-9]$`)
	accountRegex      = regexp.MustCompile(`^[0-9]{12}$`)
	regionRegex       = regexp.MustCompile(`^[a-z]{2}(-gov)?-[a-z]+-[0-9]$`)
	domainRegex       = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?)*\.[a-zA-Z]{2,}$`)
	dbNameRegex       = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,63}$`)
	instanceTypeRegex = regexp.MustCompile(`^[a-z][a-z0-9]*\.[a-z0-9]+$`)
	envKeyRegex       = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*$`)
	certARNRegex      = regexp.MustCompile(`^arn:aws[a-z-]*:acm:[a-z0-9-]+:[0-9]{12}:certificate/.+$`)
)

// fargateMemory lists the memory sizes (MiB) allowed per Fargate CPU value.
var fargateMemory = map[int][]int{
	256:   {512, 1024, 2048},
	512:   stepRange(1024, 4096, 1024),
	1024:  stepRange(2048, 8192, 1024),
	2048:  stepRange(4096, 16384, 1024),
	4096:  stepRange(8192, 30720, 1024),
	8192:  stepRange(16384, 61440, 4096),
	16384: stepRange(32768, 122880, 8192),
}

func stepRange(from, to, step int) []int {
	var out []int
	for v := from; v <= to; v += step {
		out = append(out, v)
	}
	return out
}

// ValidFargateSize reports whether cpu and memory form a Fargate task size.
func ValidFargateSize(cpu, memory int) bool {
	for _, m := range fargateMemory[cpu] {
		if m == memory {
			return true
		}
	}
	return false
}

// Validate checks every field of the configuration and returns all problems
// joined together. Relationships between declared resources are checked
// later by the topology package.
func (c *Config) Validate() error {
	var errs []error

	if !nameRegex.MatchString(c.Name) {
		errs = append(errs, fmt.Errorf("name %q must be 2-32 lowercase alphanumeric characters or hyphens, starting with a letter", c.Name))
	}
	if c.Account != "" && !accountRegex.MatchString(c.Account) {
		errs = append(errs, fmt.Errorf("account %q must be a 12 digit AWS account id", c.Account))
	}
	if c.Region != "" && !regionRegex.MatchString(c.Region) {
		errs = append(errs, fmt.Errorf("region %q is not an AWS region name", c.Region))
	}

	errs = append(errs, c.validateNetwork()...)
	errs = append(errs, c.validateDatabase()...)
	errs = append(errs, c.validateKeycloak()...)
	errs = append(errs, c.validateService()...)
	errs = append(errs, c.validateScaling()...)
	errs = append(errs, c.validateLoadBalancer()...)

	if c.Registry.Create && c.Registry.MaxImageCount < 1 {
		errs = append(errs, errors.New("registry.max_image_count must be at least 1"))
	}

	return errors.Join(errs...)
}

func (c *Config) validateNetwork() []error {
	var errs []error
	n := c.Network

	prefix, err := netip.ParsePrefix(n.CIDR)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("network.cidr %q is invalid: %w", n.CIDR, err))
	case !prefix.Addr().Is4():
		errs = append(errs, fmt.Errorf("network.cidr %q must be IPv4", n.CIDR))
	case prefix.Bits() < 16 || prefix.Bits() > 28:
		errs = append(errs, fmt.Errorf("network.cidr %q must have a prefix between /16 and /28", n.CIDR))
	case prefix.Masked() != prefix:
		errs = append(errs, fmt.Errorf("network.cidr %q has host bits set", n.CIDR))
	}

	if n.MaxAZs < 2 || n.MaxAZs > 6 {
		errs = append(errs, fmt.Errorf("network.max_azs must be between 2 and 6, got %d", n.MaxAZs))
	}

	seen := make(map[string]bool)
	for i, s := range n.Subnets {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("network.subnets[%d].name is required", i))
		} else if seen[s.Name] {
			errs = append(errs, fmt.Errorf("network.subnets[%d].name %q is duplicated", i, s.Name))
		}
		seen[s.Name] = true

		if !s.Tier.IsValid() {
			errs = append(errs, fmt.Errorf("network.subnets[%d].tier %q must be one of %v", i, s.Tier, ValidTiers()))
		}
		if s.CIDRMask < 16 || s.CIDRMask > 28 {
			errs = append(errs, fmt.Errorf("network.subnets[%d].cidr_mask must be between 16 and 28, got %d", i, s.CIDRMask))
		}
		if err == nil && s.CIDRMask < prefix.Bits() {
			errs = append(errs, fmt.Errorf("network.subnets[%d].cidr_mask /%d is larger than the VPC %s", i, s.CIDRMask, n.CIDR))
		}
	}
	return errs
}

func (c *Config) validateDatabase() []error {
	var errs []error
	d := c.Database

	if !d.EngineVersion.IsValid() {
		errs = append(errs, fmt.Errorf("database.engine_version %q must be one of %v", d.EngineVersion, SupportedEngineVersions()))
	}
	if !instanceTypeRegex.MatchString(d.InstanceType) {
		errs = append(errs, fmt.Errorf("database.instance_type %q must look like r6g.large", d.InstanceType))
	}
	if !dbNameRegex.MatchString(d.Name) {
		errs = append(errs, fmt.Errorf("database.name %q must start with a letter and contain only letters, digits and underscores", d.Name))
	}
	if d.Port < 1150 || d.Port > 65535 {
		errs = append(errs, fmt.Errorf("database.port must be between 1150 and 65535, got %d", d.Port))
	}
	if !dbNameRegex.MatchString(d.Username) || len(d.Username) > 16 {
		errs = append(errs, fmt.Errorf("database.username %q must be 1-16 letters, digits or underscores", d.Username))
	}
	if d.BackupRetentionDays < 1 || d.BackupRetentionDays > 35 {
		errs = append(errs, fmt.Errorf("database.backup_retention_days must be between 1 and 35, got %d", d.BackupRetentionDays))
	}
	if !d.RemovalPolicy.IsValid() {
		errs = append(errs, fmt.Errorf("database.removal_policy %q must be snapshot, retain or destroy", d.RemovalPolicy))
	}
	return errs
}

func (c *Config) validateKeycloak() []error {
	var errs []error
	k := c.Keycloak

	switch {
	case k.Image != "" && k.Repository != "":
		errs = append(errs, errors.New("keycloak.image and keycloak.repository are mutually exclusive"))
	case k.Image == "" && k.Repository == "":
		errs = append(errs, errors.New("keycloak.image or keycloak.repository is required"))
	}

	if k.Hostname == "" {
		errs = append(errs, errors.New("keycloak.hostname is required"))
	} else if !domainRegex.MatchString(k.Hostname) {
		errs = append(errs, fmt.Errorf("keycloak.hostname %q is not a valid domain name", k.Hostname))
	}
	if k.AdminHostname != "" && !domainRegex.MatchString(k.AdminHostname) {
		errs = append(errs, fmt.Errorf("keycloak.admin_hostname %q is not a valid domain name", k.AdminHostname))
	}

	switch k.Proxy {
	case "edge", "reencrypt", "passthrough", "none":
	default:
		errs = append(errs, fmt.Errorf("keycloak.proxy %q must be edge, reencrypt, passthrough or none", k.Proxy))
	}

	if !k.Discovery.IsValid() {
		errs = append(errs, fmt.Errorf("keycloak.discovery %q must be one of %v", k.Discovery, ValidDiscoveryModes()))
	}

	for key, value := range k.Env {
		if !envKeyRegex.MatchString(key) {
			errs = append(errs, fmt.Errorf("keycloak.env key %q must be upper case letters, digits and underscores", key))
		}
		if _, err := ParseEnvValue(value); err != nil {
			errs = append(errs, fmt.Errorf("keycloak.env %s: %w", key, err))
		}
	}
	return errs
}

func (c *Config) validateService() []error {
	var errs []error
	s := c.Service

	if !ValidFargateSize(s.CPU, s.Memory) {
		errs = append(errs, fmt.Errorf("service cpu %d with memory %d is not a valid Fargate task size", s.CPU, s.Memory))
	}
	if s.DesiredCount < 1 {
		errs = append(errs, fmt.Errorf("service.desired_count must be at least 1, got %d", s.DesiredCount))
	}
	if !s.Tier.IsValid() {
		errs = append(errs, fmt.Errorf("service.tier %q must be one of %v", s.Tier, ValidTiers()))
	}
	if !ValidLogRetention(s.LogRetentionDays) {
		errs = append(errs, fmt.Errorf("service.log_retention_days %d is not a CloudWatch retention period", s.LogRetentionDays))
	}
	if s.GracePeriod < 0 {
		errs = append(errs, errors.New("service.health_check_grace_period must not be negative"))
	}
	return errs
}

func (c *Config) validateScaling() []error {
	var errs []error
	s := c.Scaling

	if s.CPUTarget < 1 || s.CPUTarget > 100 {
		errs = append(errs, fmt.Errorf("scaling.cpu_target must be between 1 and 100, got %d", s.CPUTarget))
	}
	if s.MemoryTarget < 1 || s.MemoryTarget > 100 {
		errs = append(errs, fmt.Errorf("scaling.memory_target must be between 1 and 100, got %d", s.MemoryTarget))
	}
	if s.ScaleInCooldown < 0 || s.ScaleOutCooldown < 0 {
		errs = append(errs, errors.New("scaling cooldowns must not be negative"))
	}
	return errs
}

func (c *Config) validateLoadBalancer() []error {
	var errs []error
	lb := c.LoadBalancer

	if lb.HTTPS {
		if lb.CertificateARN == "" {
			errs = append(errs, errors.New("load_balancer.certificate_arn is required when https is enabled"))
		} else if !certARNRegex.MatchString(lb.CertificateARN) {
			errs = append(errs, fmt.Errorf("load_balancer.certificate_arn %q is not an ACM certificate ARN", lb.CertificateARN))
		}
	}
	if !strings.HasPrefix(lb.HealthCheckPath, "/") {
		errs = append(errs, fmt.Errorf("load_balancer.health_check_path %q must start with /", lb.HealthCheckPath))
	}
	return errs
}
