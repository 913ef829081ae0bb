package wizard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/imamik/kcstack/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfig_Registry(t *testing.T) {
	t.Parallel()
	result := &WizardResult{
		Name:          "auth",
		Environment:   "prod",
		Region:        "eu-west-1",
		Hostname:      "auth.example.com",
		ImageSource:   "registry",
		Image:         "quay.io/keycloak/keycloak:24.0",
		DiscoveryMode: "dns",
		TaskSize:      "large",
		DesiredCount:  3,
		MaxCount:      6,
		DBInstances:   3,
		DBClass:       "r6g.large",
	}

	cfg := BuildConfig(result)

	assert.Equal(t, "auth-prod", cfg.StackName())
	assert.Equal(t, "quay.io/keycloak/keycloak:24.0", cfg.Keycloak.Image)
	assert.Empty(t, cfg.Keycloak.Repository)
	assert.Equal(t, 2048, cfg.Service.CPU)
	assert.Equal(t, 8192, cfg.Service.Memory)
	assert.Equal(t, 3, cfg.Scaling.Min)
	assert.Equal(t, 6, cfg.Scaling.Max)
	assert.Equal(t, 3, cfg.Database.Instances)
	assert.False(t, cfg.LoadBalancer.HTTPS)
	require.NoError(t, cfg.Validate())
}

func TestBuildConfig_ECRWithHTTPS(t *testing.T) {
	t.Parallel()
	result := &WizardResult{
		Name:           "keycloak",
		Hostname:       "id.example.org",
		ImageSource:    "ecr",
		Repository:     "keycloak",
		CreateRepo:     true,
		DiscoveryMode:  "s3",
		TaskSize:       "medium",
		DesiredCount:   2,
		MaxCount:       10,
		DBInstances:    2,
		DBClass:        "t3.medium",
		EnableHTTPS:    true,
		CertificateARN: "arn:aws:acm:us-east-1:123456789012:certificate/abc",
	}

	cfg := BuildConfig(result)

	assert.Equal(t, "keycloak", cfg.Keycloak.Repository)
	assert.True(t, cfg.Registry.Create)
	assert.Equal(t, "keycloak", cfg.Registry.Name)
	assert.Equal(t, config.DiscoveryS3, cfg.Keycloak.Discovery)
	assert.True(t, cfg.LoadBalancer.HTTPS)
	require.NoError(t, cfg.Validate())
}

func TestValidators(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		fn      func(string) error
		input   string
		wantErr error
	}{
		{"empty name", validateName, "", errNameRequired},
		{"upper name", validateName, "Keycloak", errNameInvalid},
		{"good name", validateName, "keycloak-dev", nil},
		{"empty host", validateHostname, "", errHostnameRequired},
		{"bare host", validateHostname, "localhost", errHostnameInvalid},
		{"good host", validateHostname, "auth.example.com", nil},
		{"empty arn", validateCertificateARN, " ", errCertARNRequired},
		{"wrong arn", validateCertificateARN, "arn:aws:iam::1:role/x", errCertARNInvalid},
		{"count one", validateCount, "1", errCountInvalid},
		{"count text", validateCount, "two", errCountInvalid},
		{"count ok", validateCount, "2", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.fn(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Keycloak.Hostname = "auth.example.com"
	path := filepath.Join(t.TempDir(), "kcstack.yaml")

	require.NoError(t, WriteConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# kcstack configuration"))

	loaded, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "auth.example.com", loaded.Keycloak.Hostname)
	assert.Equal(t, cfg.Network.Subnets, loaded.Network.Subnets)
}

func TestWriteConfig_TOML(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Keycloak.Hostname = "auth.example.com"
	path := filepath.Join(t.TempDir(), "kcstack.toml")

	require.NoError(t, WriteConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# kcstack configuration"))
	assert.Contains(t, string(data), "[keycloak]")

	loaded, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "auth.example.com", loaded.Keycloak.Hostname)
	assert.Equal(t, cfg.Scaling, loaded.Scaling)
}
