package handlers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	path := writeTestConfig(t, testConfigYAML)

	output := captureOutput(func() {
		require.NoError(t, Validate(context.Background(), path))
	})
	assert.Contains(t, output, path+" is valid")
}

func TestValidate_ReportsEveryConfigError(t *testing.T) {
	path := writeTestConfig(t, "name: Keycloak\nregion: nowhere\nkeycloak:\n  hostname: auth.example.com\n")

	var err error
	output := captureOutput(func() {
		err = Validate(context.Background(), path)
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error(s)")
	assert.Contains(t, output, `name "Keycloak"`)
	assert.Contains(t, output, `region "nowhere"`)
}

func TestValidate_TopologyErrors(t *testing.T) {
	path := writeTestConfig(t, testConfigYAML+"scaling:\n  min: 5\n  max: 3\n")

	var err error
	output := captureOutput(func() {
		err = Validate(context.Background(), path)
	})

	require.Error(t, err)
	assert.Contains(t, output, "[error]")
}

func TestFlatten(t *testing.T) {
	t.Parallel()
	a, b, c := errors.New("a"), errors.New("b"), errors.New("c")

	assert.Nil(t, flatten(nil))
	assert.Equal(t, []error{a}, flatten(a))
	assert.Equal(t, []error{a, b, c}, flatten(errors.Join(a, errors.Join(b, c))))

	wrapped := fmt.Errorf("wrapped: %w", a)
	assert.Equal(t, []error{wrapped}, flatten(wrapped))
}
