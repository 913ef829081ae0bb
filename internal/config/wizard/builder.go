package wizard

import "github.com/imamik/kcstack/internal/config"

// BuildConfig creates a Config from the wizard answers with defaults applied.
func BuildConfig(result *WizardResult) *config.Config {
	cfg := &config.Config{
		Name:        result.Name,
		Environment: result.Environment,
		Region:      result.Region,
		Keycloak: config.KeycloakConfig{
			Hostname:  result.Hostname,
			Discovery: config.DiscoveryMode(result.DiscoveryMode),
		},
		Database: config.DatabaseConfig{
			Instances:    result.DBInstances,
			InstanceType: result.DBClass,
		},
		Scaling: config.ScalingConfig{
			Min: result.DesiredCount,
			Max: result.MaxCount,
		},
		Service: config.ServiceConfig{
			DesiredCount: result.DesiredCount,
		},
	}

	if size, ok := TaskSizes[result.TaskSize]; ok {
		cfg.Service.CPU = size.CPU
		cfg.Service.Memory = size.Memory
	}

	if result.ImageSource == "ecr" {
		cfg.Keycloak.Repository = result.Repository
		cfg.Registry = config.RegistryConfig{
			Create:     result.CreateRepo,
			Name:       result.Repository,
			ScanOnPush: true,
		}
	} else {
		cfg.Keycloak.Image = result.Image
	}

	if result.EnableHTTPS {
		cfg.LoadBalancer.HTTPS = true
		cfg.LoadBalancer.CertificateARN = result.CertificateARN
	}

	cfg.ApplyDefaults()
	return cfg
}
