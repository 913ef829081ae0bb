package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTagBuilder(t *testing.T) {
	t.Parallel()
	tags := NewTagBuilder("keycloak-dev").Build()

	assert.Equal(t, map[string]string{
		KeyStack:     "keycloak-dev",
		KeyManagedBy: ManagedByKcstack,
	}, tags)
}

func TestTagBuilder_Chaining(t *testing.T) {
	t.Parallel()
	tags := NewTagBuilder("keycloak-prod").
		WithDeployment("keycloak").
		WithEnvironment("prod").
		WithComponent("database").
		Merge(map[string]string{"team": "identity"}).
		Build()

	assert.Equal(t, "keycloak", tags[KeyDeployment])
	assert.Equal(t, "prod", tags[KeyEnvironment])
	assert.Equal(t, "database", tags[KeyComponent])
	assert.Equal(t, "identity", tags["team"])
	assert.Len(t, tags, 6)
}

func TestTagBuilder_EmptyEnvironment(t *testing.T) {
	t.Parallel()
	tags := NewTagBuilder("keycloak").WithEnvironment("").Build()
	assert.NotContains(t, tags, KeyEnvironment)
}

func TestTagBuilder_MergeIgnoresReserved(t *testing.T) {
	t.Parallel()
	tags := NewTagBuilder("keycloak").Merge(map[string]string{
		KeyManagedBy:             "someone-else",
		"aws:cloudformation:foo": "x",
		"cost-center":            "42",
	}).Build()

	assert.Equal(t, ManagedByKcstack, tags[KeyManagedBy])
	assert.NotContains(t, tags, "aws:cloudformation:foo")
	assert.Equal(t, "42", tags["cost-center"])
}

func TestTagBuilder_BuildReturnsCopy(t *testing.T) {
	t.Parallel()
	tb := NewTagBuilder("keycloak")
	first := tb.Build()
	first["mutated"] = "yes"

	assert.NotContains(t, tb.Build(), "mutated")
}

func TestTagBuilder_Keys(t *testing.T) {
	t.Parallel()
	keys := NewTagBuilder("keycloak").Merge(map[string]string{"app": "kc"}).Keys()
	assert.Equal(t, []string{"app", KeyManagedBy, KeyStack}, keys)
}

func TestIsReserved(t *testing.T) {
	t.Parallel()
	tests := []struct {
		key  string
		want bool
	}{
		{"kcstack.io/stack", true},
		{"aws:createdBy", true},
		{"team", false},
		{"kcstack", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsReserved(tt.key))
		})
	}
}
