package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/kcstack/internal/config"
	"github.com/imamik/kcstack/internal/topology"
)

func testTopology(t *testing.T, mutate func(*config.Config)) *topology.Topology {
	t.Helper()
	cfg := config.Default()
	cfg.Environment = "dev"
	cfg.Region = "eu-west-1"
	cfg.Keycloak.Hostname = "auth.example.com"
	if mutate != nil {
		mutate(cfg)
	}
	topo, err := topology.Declare(cfg)
	require.NoError(t, err)
	return topo
}

func TestBuildPlan(t *testing.T) {
	t.Parallel()
	s, err := buildPlan(testTopology(t, nil))
	require.NoError(t, err)

	assert.Equal(t, "keycloak-dev", s.Stack)
	assert.NotEmpty(t, s.Order)
	assert.Len(t, s.Subnets, 8)
	assert.Len(t, s.Policies, 3)
	assert.Equal(t, 2, s.Database.Instances)
	assert.Equal(t, []int{80}, s.Entry.Ports)
	assert.Empty(t, s.Registry)

	vars := make(map[string]PlanVariable)
	for _, v := range s.Environment {
		vars[v.Name] = v
	}
	assert.True(t, vars["KC_DB_PASSWORD"].Secret)
	assert.True(t, vars["KEYCLOAK_ADMIN_PASSWORD"].Secret)
	assert.False(t, vars["KC_DB_URL"].Secret)
	assert.Equal(t, "mysql", vars["KC_DB_VENDOR"].Source)
}

func TestBuildPlan_HTTPSAndRegistry(t *testing.T) {
	t.Parallel()
	s, err := buildPlan(testTopology(t, func(c *config.Config) {
		c.LoadBalancer.HTTPS = true
		c.LoadBalancer.CertificateARN = "arn:aws:acm:eu-west-1:123456789012:certificate/abc"
		c.Registry.Create = true
	}))
	require.NoError(t, err)

	assert.Equal(t, []int{80, 443}, s.Entry.Ports)
	assert.True(t, s.Entry.HTTPS)
	assert.Equal(t, config.DefaultRepositoryName, s.Registry)
}

func TestRenderPlan(t *testing.T) {
	t.Parallel()
	s, err := buildPlan(testTopology(t, nil))
	require.NoError(t, err)

	out := renderPlan(s)
	assert.Contains(t, out, "kcstack plan: keycloak-dev")
	assert.Contains(t, out, "Declaration order")
	assert.Contains(t, out, "Access policies")
	assert.Contains(t, out, "KC_DB_PASSWORD")
	assert.Contains(t, out, "(secret)")
	assert.Contains(t, out, "internet-facing, listeners 80")
	assert.NotContains(t, out, "\x1b[", "plain rendering must not contain escape codes")
}

func TestPlan_JSON(t *testing.T) {
	path := writeTestConfig(t, testConfigYAML)

	output := captureOutput(func() {
		require.NoError(t, Plan(context.Background(), path, true))
	})

	var s PlanSummary
	require.NoError(t, json.Unmarshal([]byte(output), &s))
	assert.Equal(t, "keycloak-dev", s.Stack)
	assert.Equal(t, "123456789012", s.Account)
}

func TestPlan_Plain(t *testing.T) {
	origTTY := isInteractiveTTY
	defer func() { isInteractiveTTY = origTTY }()
	isInteractiveTTY = func() bool { return false }

	path := writeTestConfig(t, testConfigYAML)
	output := captureOutput(func() {
		require.NoError(t, Plan(context.Background(), path, false))
	})
	assert.Contains(t, output, "Subnets")
}
