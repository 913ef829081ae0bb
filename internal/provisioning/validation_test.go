package provisioning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/kcstack/internal/config"
	"github.com/imamik/kcstack/internal/topology"
)

func testTopology(t *testing.T, mutate func(*config.Config)) *topology.Topology {
	t.Helper()
	cfg := config.Default()
	cfg.Account = "123456789012"
	cfg.Region = "eu-west-1"
	cfg.Keycloak.Hostname = "www.mima.com"
	if mutate != nil {
		mutate(cfg)
	}
	topo, err := topology.FromConfig(cfg)
	require.NoError(t, err)
	return topo
}

func TestValidationPhase_Valid(t *testing.T) {
	t.Parallel()
	obs := NewMockObserver()
	ctx := NewContext(context.Background(), nil, testTopology(t, nil), obs, nil)

	phase := NewValidationPhase()
	assert.Equal(t, PhaseValidation, phase.Name())
	assert.Empty(t, phase.DependsOn())
	require.NoError(t, phase.Provision(ctx))

	warnings := obs.eventsOfType(EventValidationWarning)
	fields := make([]string, 0, len(warnings))
	for _, w := range warnings {
		fields = append(fields, w.Fields["field"])
	}
	assert.ElementsMatch(t, []string{
		"database.deletion_protection",
		"load_balancer.https",
		"service.assign_public_ip",
		"keycloak.image",
	}, fields)
}

func TestValidationPhase_Invalid(t *testing.T) {
	t.Parallel()
	obs := NewMockObserver()
	topo := testTopology(t, func(c *config.Config) { c.Database.Instances = 1 })
	ctx := NewContext(context.Background(), nil, topo, obs, nil)

	err := NewValidationPhase().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declaration validation failed")

	var de *topology.DeclarationError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, topology.NodeData, de.Entity)

	failures := obs.eventsOfType(EventValidationError)
	require.Len(t, failures, 1)
	assert.Equal(t, "bounds", failures[0].Fields["reason"])
}

func TestValidationPhase_NoTopology(t *testing.T) {
	t.Parallel()
	ctx := NewContext(context.Background(), nil, nil, NewMockObserver(), nil)
	assert.Error(t, NewValidationPhase().Provision(ctx))
}

func TestValidate_Findings(t *testing.T) {
	t.Parallel()
	hardened := testTopology(t, func(c *config.Config) {
		c.Database.DeletionProtection = true
		c.Keycloak.Image = "quay.io/keycloak/keycloak:24.0.5"
		c.LoadBalancer.HTTPS = true
		c.LoadBalancer.CertificateARN = "arn:aws:acm:eu-west-1:123456789012:certificate/abc"
		off := false
		c.Service.AssignPublicIP = &off
		c.Network.Endpoints = true
	})
	assert.Empty(t, Validate(hardened))

	broken := testTopology(t, func(c *config.Config) {
		c.Database.DeletionProtection = true
		c.Database.RemovalPolicy = config.RemovalDestroy
		c.Scaling.Min = 1
	})
	findings := Validate(broken)

	var errs, warns int
	for _, f := range findings {
		if f.IsError() {
			errs++
		} else {
			warns++
		}
	}
	assert.Positive(t, errs)
	assert.Positive(t, warns)
	assert.Contains(t, findings[0].Error(), "[error] elasticity")
}
