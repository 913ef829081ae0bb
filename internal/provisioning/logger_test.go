package provisioning

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := NewLogger(LogOptions{JSON: true, Writer: &buf}, "run-1")

	log.Info("declared", "phase", "network")
	log.V(1).Info("hidden")

	out := buf.String()
	assert.Contains(t, out, `"msg":"declared"`)
	assert.Contains(t, out, `"run_id":"run-1"`)
	assert.Contains(t, out, `"phase":"network"`)
	assert.NotContains(t, out, "hidden")
}

func TestNewLogger_Verbose(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := NewLogger(LogOptions{Verbose: true, Writer: &buf}, "run-2")

	log.V(1).Info("debug detail")

	out := buf.String()
	assert.Contains(t, out, "debug detail")
	assert.Contains(t, out, "DEBUG")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestNewRunID(t *testing.T) {
	t.Parallel()
	a, b := NewRunID(), NewRunID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}
