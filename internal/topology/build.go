package topology

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/imamik/kcstack/internal/config"
)

// FromConfig builds the topology for a validated configuration. It fails
// only when the configuration cannot be expressed at all; structural rules
// are checked by Validate.
func FromConfig(cfg *config.Config) (*Topology, error) {
	t := &Topology{
		Name:        cfg.Name,
		Environment: cfg.Environment,
		Account:     cfg.Account,
		Region:      cfg.Region,
		Tags:        maps.Clone(cfg.Tags),
	}

	t.Network = NetworkTopology{
		CIDR:      cfg.Network.CIDR,
		MaxAZs:    cfg.Network.MaxAZs,
		Endpoints: cfg.Network.Endpoints,
	}
	for _, s := range cfg.Network.Subnets {
		t.Network.Groups = append(t.Network.Groups, SubnetGroup{Name: s.Name, Tier: Tier(s.Tier), CIDRMask: s.CIDRMask})
	}

	var https *HTTPSListener
	if cfg.LoadBalancer.HTTPS {
		https = &HTTPSListener{Port: 443, CertificateARN: cfg.LoadBalancer.CertificateARN, RedirectHTTP: true}
	}

	t.Policies = []AccessPolicy{
		entryPolicy(80, https),
		computePolicy(AppPort, DiscoveryPort),
		dataPolicy(cfg.Database.Port),
	}

	t.Secrets = []CredentialSecret{
		generatedSecret(SecretDatabase, "Aurora MySQL credentials for Keycloak", cfg.Database.Username),
		generatedSecret(SecretAdmin, "Keycloak bootstrap administrator", cfg.Keycloak.AdminUsername),
	}

	t.Data = DataTierCluster{
		Name:                cfg.Name + "-db",
		EngineVersion:       cfg.Database.EngineVersion.FullVersion(),
		MajorVersion:        cfg.Database.EngineVersion.MajorVersion(),
		Instances:           cfg.Database.Instances,
		InstanceType:        cfg.Database.InstanceType,
		DefaultDatabase:     cfg.Database.Name,
		Port:                cfg.Database.Port,
		Tier:                TierIsolated,
		Policy:              PolicyData,
		Credential:          SecretDatabase,
		BackupRetentionDays: cfg.Database.BackupRetentionDays,
		DeletionProtection:  cfg.Database.DeletionProtection,
		RemovalPolicy:       string(cfg.Database.RemovalPolicy),
	}

	compute, err := buildCompute(cfg, t.Data)
	if err != nil {
		return nil, err
	}
	t.Compute = compute

	t.Traffic = TrafficDistribution{
		Name:         cfg.Name + "-alb",
		Public:       cfg.PublicLoadBalancer(),
		ListenerPort: 80,
		HTTPS:        https,
		Target:       NodeCompute,
		TargetPort:   AppPort,
		Policy:       PolicyLoadBalancer,
		Tier:         TierPublic,
		HealthCheck: HealthCheck{
			Path:             cfg.LoadBalancer.HealthCheckPath,
			Interval:         30 * time.Second,
			Timeout:          5 * time.Second,
			HealthyThreshold: 2,
			HealthyCodes:     "200",
		},
		StickySessions: cfg.StickySessions(),
	}

	t.Elasticity = ElasticityPolicy{
		Target:              NodeCompute,
		MinReplicas:         cfg.Scaling.Min,
		MaxReplicas:         cfg.Scaling.Max,
		CPUTargetPercent:    cfg.Scaling.CPUTarget,
		MemoryTargetPercent: cfg.Scaling.MemoryTarget,
		ScaleInCooldown:     cfg.Scaling.ScaleInCooldown,
		ScaleOutCooldown:    cfg.Scaling.ScaleOutCooldown,
	}

	if cfg.Registry.Create {
		t.Registry = &RegistryDeclaration{
			RepositoryName: cfg.Registry.Name,
			MaxImageCount:  cfg.Registry.MaxImageCount,
			ScanOnPush:     cfg.Registry.ScanOnPush,
		}
	}

	return t, nil
}

// Declare builds and validates the topology in one step.
func Declare(cfg *config.Config) (*Topology, error) {
	t, err := FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func buildCompute(cfg *config.Config, data DataTierCluster) (ComputeTaskSpec, error) {
	c := ComputeTaskSpec{
		Name:      cfg.Name,
		Command:   slices.Clone(DefaultCommand),
		CPU:       cfg.Service.CPU,
		MemoryMiB: cfg.Service.Memory,
		Ports: []PortBinding{
			{Name: PortApp, Port: AppPort},
			{Name: PortDiscovery, Port: DiscoveryPort},
		},
		ExecutionIdentity: Identity{
			Name:            IdentityExecution,
			Description:     "Pulls the Keycloak image and ships logs",
			ManagedPolicies: []string{ExecutionRolePolicy},
		},
		TaskIdentity: Identity{
			Name:              IdentityTask,
			Description:       "Keycloak application role",
			RestrictToAccount: true,
			DiscoveryBucket:   cfg.Keycloak.Discovery == config.DiscoveryS3,
		},
		Policy:         PolicyCompute,
		Tier:           Tier(cfg.Service.Tier),
		AssignPublicIP: cfg.AssignPublicIP(),
		DesiredCount:   cfg.Service.DesiredCount,
		Logs: LogSpec{
			Group:         "/ecs/" + cfg.Name,
			RetentionDays: cfg.Service.LogRetentionDays,
			StreamPrefix:  "keycloak",
		},
		Discovery: Discovery{
			Mode:      DiscoveryMode(cfg.Keycloak.Discovery),
			Namespace: cfg.StackName() + ".internal",
			Service:   "keycloak",
		},
		GracePeriod: cfg.Service.GracePeriod,
	}

	if cfg.UsesRepository() {
		c.Image = Image{Repository: cfg.Keycloak.Repository, Tag: cfg.ImageTag()}
	} else {
		c.Image = Image{Registry: cfg.Keycloak.Image}
	}

	c.Environment = keycloakEnvironment(cfg, data, c.Discovery)

	var errs []error
	for name, raw := range cfg.Keycloak.Env {
		if _, reserved := c.Environment[name]; reserved {
			errs = append(errs, declErr(fmt.Sprintf("%s/env/%s", NodeCompute, name), ReasonInvalid, "is set by kcstack and cannot be overridden"))
			continue
		}
		v, err := config.ParseEnvValue(raw)
		if err != nil {
			errs = append(errs, declErr(fmt.Sprintf("%s/env/%s", NodeCompute, name), ReasonInvalid, "%v", err))
			continue
		}
		c.Environment[name] = fromEnvValue(v)
	}
	if len(errs) > 0 {
		return ComputeTaskSpec{}, errors.Join(errs...)
	}
	return c, nil
}

// keycloakEnvironment returns the variables Keycloak is started with.
func keycloakEnvironment(cfg *config.Config, data DataTierCluster, d Discovery) map[string]Value {
	env := map[string]Value{
		"KC_DB_URL":                      DatabaseURL(),
		"KC_DB_VENDOR":                   Literal("mysql"),
		"KC_DB_DATABASE":                 Literal(data.DefaultDatabase),
		"KC_DB_URL_PORT":                 Literal(strconv.Itoa(data.Port)),
		"KC_DB_USERNAME":                 SecretField(SecretDatabase, FieldUsername),
		"KC_DB_PASSWORD":                 SecretField(SecretDatabase, FieldPassword),
		"KEYCLOAK_ADMIN":                 SecretField(SecretAdmin, FieldUsername),
		"KEYCLOAK_ADMIN_PASSWORD":        SecretField(SecretAdmin, FieldPassword),
		"KC_HOSTNAME":                    Literal(cfg.Keycloak.Hostname),
		"KC_ADMIN_HOSTNAME":              Literal(cfg.AdminHost()),
		"KC_PROXY":                       Literal(cfg.Keycloak.Proxy),
		"KC_HOSTNAME_STRICT_BACKCHANNEL": Literal("true"),
		"KC_HOSTNAME_STRICT_HTTPS":       Literal("false"),
		"KC_HTTP_ENABLED":                Literal("true"),
		"KC_HTTP_PORT":                   Literal(strconv.Itoa(AppPort)),
		"KC_HEALTH_ENABLED":              Literal("true"),
		"KC_CACHE":                       Literal("ispn"),
	}

	switch d.Mode {
	case DiscoveryS3:
		env["KC_CACHE_STACK"] = Literal("ec2")
		env["JAVA_OPTS_APPEND"] = Value{
			Kind: ValueDiscoveryBucket,
			Text: fmt.Sprintf("-Djgroups.s3.region_name=%s -Djgroups.s3.bucket_name=", cfg.Region),
		}
	default:
		env["KC_CACHE_STACK"] = Literal("kubernetes")
		env["JAVA_OPTS_APPEND"] = Literal("-Djgroups.dns.query=" + d.DNSQuery())
	}
	return env
}

func fromEnvValue(v config.EnvValue) Value {
	switch v.Kind {
	case config.EnvParameter:
		return Parameter(v.Value)
	case config.EnvSecureParameter:
		return SecureParameter(v.Value)
	case config.EnvSecret:
		return SecretField(v.Value, v.Field)
	default:
		return Literal(v.Value)
	}
}
