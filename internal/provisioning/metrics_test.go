package provisioning

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()
	m := NewMetrics()

	m.ResourceDeclared("network", "vpc")
	m.ResourceDeclared("network", "endpoint")
	m.ResourceDeclared("network", "endpoint")
	m.ObservePhase("network", 20*time.Millisecond, nil)
	m.ObservePhase("database", time.Millisecond, errors.New("x"))
	m.ObserveDeclaration("keycloak-dev", nil)

	assert.InDelta(t, 1, testutil.ToFloat64(m.resourcesDeclared.WithLabelValues("network", "vpc")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.resourcesDeclared.WithLabelValues("network", "endpoint")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.phaseTotal.WithLabelValues("network", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.phaseTotal.WithLabelValues("database", "error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.declarationsTotal.WithLabelValues("keycloak-dev", "success")), 0)
}

func TestMetrics_IsolatedRegistries(t *testing.T) {
	t.Parallel()
	a, b := NewMetrics(), NewMetrics()
	a.ResourceDeclared("network", "vpc")

	assert.Equal(t, 1, testutil.CollectAndCount(a.resourcesDeclared))
	assert.Equal(t, 0, testutil.CollectAndCount(b.resourcesDeclared))
}

func TestMetrics_WriteFile(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.ResourceDeclared("compute", "service")

	path := filepath.Join(t.TempDir(), "kcstack.prom")
	require.NoError(t, m.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `kcstack_provisioning_resources_declared_total{kind="service",phase="compute"} 1`)
}
