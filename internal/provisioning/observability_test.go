package provisioning

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-logr/zapr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// MockObserver is a test implementation of Observer that records events.
type MockObserver struct {
	events   []Event
	messages []string
	fields   map[string]string
}

func NewMockObserver() *MockObserver {
	return &MockObserver{
		events:   make([]Event, 0),
		messages: make([]string, 0),
		fields:   make(map[string]string),
	}
}

func (m *MockObserver) Printf(format string, v ...interface{}) {
	m.messages = append(m.messages, fmt.Sprintf(format, v...))
}

func (m *MockObserver) Event(event Event) {
	m.events = append(m.events, event)
}

func (m *MockObserver) Progress(phase string, current, total int) {
	m.Event(Event{
		Type:    EventProgress,
		Phase:   phase,
		Message: "progress",
		Fields: map[string]string{
			"current": fmt.Sprint(current),
			"total":   fmt.Sprint(total),
		},
	})
}

func (m *MockObserver) WithFields(fields map[string]string) Observer {
	newObserver := NewMockObserver()
	for k, v := range m.fields {
		newObserver.fields[k] = v
	}
	for k, v := range fields {
		newObserver.fields[k] = v
	}
	return newObserver
}

func (m *MockObserver) eventsOfType(t EventType) []Event {
	var out []Event
	for _, e := range m.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func observedLogger(level zapcore.Level) (*LogObserver, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewLogObserver(zapr.NewLogger(zap.New(core))), logs
}

func TestLogObserver_Printf(t *testing.T) {
	t.Parallel()
	obs, logs := observedLogger(zapcore.InfoLevel)

	obs.Printf("declaring %s", "keycloak")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "declaring keycloak", logs.All()[0].Message)
}

func TestLogObserver_Event(t *testing.T) {
	t.Parallel()
	obs, logs := observedLogger(zapcore.InfoLevel)

	obs.Event(Event{
		Type:     EventResourceDeclared,
		Phase:    "network",
		Resource: "Vpc",
		Message:  "vpc declared",
		Fields:   map[string]string{"type": "vpc"},
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "vpc declared", entry.Message)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	ctx := entry.ContextMap()
	assert.Equal(t, "resource.declared", ctx["event"])
	assert.Equal(t, "network", ctx["phase"])
	assert.Equal(t, "Vpc", ctx["resource"])
	assert.Equal(t, "vpc", ctx["type"])
}

func TestLogObserver_FailureIsError(t *testing.T) {
	t.Parallel()
	obs, logs := observedLogger(zapcore.InfoLevel)

	LogPhaseFailed(obs, "database", fmt.Errorf("boom"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "phase.failed", entry.Message)
	assert.Equal(t, "failed: boom", entry.ContextMap()["error"])
}

func TestLogObserver_WithFields(t *testing.T) {
	t.Parallel()
	obs, logs := observedLogger(zapcore.InfoLevel)

	scoped := obs.WithFields(map[string]string{"stack": "keycloak-dev", "type": "default"})
	scoped.Event(Event{Type: EventPhaseStarted, Message: "starting", Fields: map[string]string{"type": "override"}})
	obs.Event(Event{Type: EventPhaseStarted, Message: "unscoped"})

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0].ContextMap()
	assert.Equal(t, "keycloak-dev", first["stack"])
	assert.Equal(t, "override", first["type"])

	_, has := logs.All()[1].ContextMap()["stack"]
	assert.False(t, has, "parent observer must not see child fields")
}

func TestLogObserver_Progress(t *testing.T) {
	t.Parallel()
	obs, logs := observedLogger(zapcore.InfoLevel)

	obs.Progress("compute", 3, 4)
	obs.Progress("empty", 0, 0)

	require.Equal(t, 2, logs.Len())
	assert.EqualValues(t, 75, logs.All()[0].ContextMap()["percent"])
	assert.EqualValues(t, 0, logs.All()[1].ContextMap()["percent"])
}

func TestEventHelpers(t *testing.T) {
	t.Parallel()
	obs := NewMockObserver()

	LogPhaseStart(obs, "network")
	LogPhaseComplete(obs, "network", 1500*time.Millisecond)
	LogResourceDeclared(obs, "network", "vpc", "Vpc")
	LogResourceSkipped(obs, "network", "endpoints", "disabled")
	LogValidationWarning(obs, "load_balancer.https", "plain HTTP")

	require.Len(t, obs.events, 5)
	assert.Equal(t, EventPhaseStarted, obs.events[0].Type)
	assert.Equal(t, "completed in 1.5s", obs.events[1].Message)
	assert.Equal(t, "Vpc", obs.events[2].Resource)
	assert.Equal(t, "vpc", obs.events[2].Fields["type"])
	assert.Equal(t, "endpoints skipped: disabled", obs.events[3].Message)
	assert.Equal(t, PhaseValidation, obs.events[4].Phase)
	assert.Equal(t, "load_balancer.https", obs.events[4].Fields["field"])
}

func TestEventType_IsFailure(t *testing.T) {
	t.Parallel()
	assert.True(t, EventPhaseFailed.IsFailure())
	assert.True(t, EventValidationError.IsFailure())
	assert.False(t, EventPhaseCompleted.IsFailure())
	assert.False(t, EventValidationWarning.IsFailure())
}
