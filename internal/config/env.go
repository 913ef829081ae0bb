package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every kcstack environment override.
const EnvPrefix = "KCSTACK_"

// overrides are the settings that can be changed without editing the file,
// typically from CI.
type overrides struct {
	Account        string `env:"ACCOUNT"`
	Region         string `env:"REGION"`
	Environment    string `env:"ENVIRONMENT"`
	Image          string `env:"IMAGE"`
	ImageTag       string `env:"IMAGE_TAG"`
	Hostname       string `env:"HOSTNAME"`
	AdminHostname  string `env:"ADMIN_HOSTNAME"`
	CertificateARN string `env:"CERTIFICATE_ARN"`
	DesiredCount   int    `env:"DESIRED_COUNT"`
}

// cdkDefaults are exported by the CDK CLI for the selected profile.
type cdkDefaults struct {
	Account string `env:"CDK_DEFAULT_ACCOUNT"`
	Region  string `env:"CDK_DEFAULT_REGION"`
}

// LoadEnvironment returns the process environment merged over the variables
// in dotenvPath. A missing dotenv file is not an error.
func LoadEnvironment(dotenvPath string) (map[string]string, error) {
	environ := make(map[string]string)

	if dotenvPath != "" {
		vars, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			for k, v := range vars {
				environ[k] = v
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read %s: %w", dotenvPath, err)
		}
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}
	return environ, nil
}

// ApplyEnvironment overlays KCSTACK_* variables and fills account and region
// from the CDK defaults when the file leaves them empty.
func (c *Config) ApplyEnvironment(environ map[string]string) error {
	var o overrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return fmt.Errorf("failed to parse %s environment: %w", EnvPrefix, err)
	}

	var d cdkDefaults
	if err := env.ParseWithOptions(&d, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("failed to parse CDK environment: %w", err)
	}

	setIf(&c.Account, o.Account)
	setIf(&c.Region, o.Region)
	setIf(&c.Environment, o.Environment)
	setIf(&c.Keycloak.Tag, o.ImageTag)
	setIf(&c.Keycloak.Hostname, o.Hostname)
	setIf(&c.Keycloak.AdminHostname, o.AdminHostname)
	setIf(&c.LoadBalancer.CertificateARN, o.CertificateARN)
	if o.Image != "" {
		c.Keycloak.Image = o.Image
		c.Keycloak.Repository = ""
	}
	if o.DesiredCount > 0 {
		c.Service.DesiredCount = o.DesiredCount
	}

	if c.Account == "" {
		c.Account = d.Account
	}
	if c.Region == "" {
		c.Region = d.Region
	}
	return nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
