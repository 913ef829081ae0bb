package provisioning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/kcstack/internal/topology"
)

// phaseFunc adapts a function into a Phase for tests.
type phaseFunc struct {
	name string
	deps []string
	fn   func(*Context) error
}

func (p phaseFunc) Name() string                 { return p.name }
func (p phaseFunc) DependsOn() []string          { return p.deps }
func (p phaseFunc) Provision(ctx *Context) error { return p.fn(ctx) }

func recording(executed *[]string, name string, deps ...string) Phase {
	return phaseFunc{name: name, deps: deps, fn: func(_ *Context) error {
		*executed = append(*executed, name)
		return nil
	}}
}

func testContext(obs Observer) *Context {
	return NewContext(context.Background(), nil, nil, obs, nil)
}

func TestRunPhases_DependencyOrder(t *testing.T) {
	t.Parallel()
	var executed []string

	phases := []Phase{
		recording(&executed, "traffic", "compute", "network"),
		recording(&executed, "compute", "database", "network"),
		recording(&executed, "database", "network"),
		recording(&executed, "network"),
	}

	err := RunPhases(testContext(NewMockObserver()), phases)

	require.NoError(t, err)
	assert.Equal(t, []string{"network", "database", "compute", "traffic"}, executed)
}

func TestRunPhases_StopsOnError(t *testing.T) {
	t.Parallel()
	var executed []string
	obs := NewMockObserver()

	phases := []Phase{
		recording(&executed, "network"),
		phaseFunc{name: "database", deps: []string{"network"}, fn: func(_ *Context) error {
			return errors.New("engine version unavailable")
		}},
		recording(&executed, "compute", "database"),
	}

	err := RunPhases(testContext(obs), phases)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database phase failed")
	assert.Contains(t, err.Error(), "engine version unavailable")
	assert.Equal(t, []string{"network"}, executed)

	failed := obs.eventsOfType(EventPhaseFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, "database", failed[0].Phase)
}

func TestRunPhases_WrapsPhaseError(t *testing.T) {
	t.Parallel()
	sentinel := errors.New("sentinel")
	phases := []Phase{phaseFunc{name: "only", fn: func(_ *Context) error { return sentinel }}}

	err := RunPhases(testContext(NewMockObserver()), phases)
	assert.ErrorIs(t, err, sentinel)
}

func TestRunPhases_MissingDependency(t *testing.T) {
	t.Parallel()
	var executed []string
	phases := []Phase{recording(&executed, "compute", "database")}

	err := RunPhases(testContext(NewMockObserver()), phases)

	require.Error(t, err)
	assert.True(t, topology.HasReason(err, topology.ReasonMissingRef))
	assert.Empty(t, executed)
}

func TestRunPhases_Cycle(t *testing.T) {
	t.Parallel()
	var executed []string
	phases := []Phase{
		recording(&executed, "a", "b"),
		recording(&executed, "b", "a"),
	}

	err := RunPhases(testContext(NewMockObserver()), phases)

	require.Error(t, err)
	assert.True(t, topology.HasReason(err, topology.ReasonCycle))
	assert.Empty(t, executed)
}

func TestRunPhases_Duplicate(t *testing.T) {
	t.Parallel()
	var executed []string
	phases := []Phase{recording(&executed, "network"), recording(&executed, "network")}

	err := RunPhases(testContext(NewMockObserver()), phases)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registered twice")
}

func TestRunPhases_Canceled(t *testing.T) {
	t.Parallel()
	var executed []string
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pctx := NewContext(ctx, nil, nil, NewMockObserver(), nil)
	err := RunPhases(pctx, []Phase{recording(&executed, "network")})

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, executed)
}

func TestRunPhases_EmitsEvents(t *testing.T) {
	t.Parallel()
	var executed []string
	obs := NewMockObserver()

	err := RunPhases(testContext(obs), []Phase{recording(&executed, "network"), recording(&executed, "database", "network")})
	require.NoError(t, err)

	assert.Len(t, obs.eventsOfType(EventPhaseStarted), 2)
	assert.Len(t, obs.eventsOfType(EventPhaseCompleted), 2)
	assert.Len(t, obs.eventsOfType(EventProgress), 3)
	assert.NotEmpty(t, obs.messages)
}

func TestRunPhases_RecordsMetrics(t *testing.T) {
	t.Parallel()
	var executed []string
	pctx := testContext(NewMockObserver())

	require.NoError(t, RunPhases(pctx, []Phase{recording(&executed, "network")}))

	families, err := pctx.Metrics.Registry().Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["kcstack_provisioning_phase_duration_seconds"])
	assert.True(t, names["kcstack_provisioning_phase_total"])
}

func TestNewContext_Defaults(t *testing.T) {
	t.Parallel()
	pctx := NewContext(context.Background(), nil, nil, nil, nil)

	require.NotNil(t, pctx.Observer)
	require.NotNil(t, pctx.Metrics)
	require.NotNil(t, pctx.State)
	assert.NotNil(t, pctx.State.SecurityGroups)
	assert.NotNil(t, pctx.State.Secrets)
	assert.NotNil(t, pctx.State.Roles)

	pctx.Declared("network", "vpc", "Vpc")
}
