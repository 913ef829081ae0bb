package tags

import (
	"maps"
	"slices"
	"strings"
)

// Standard tag keys.
const (
	// KeyStack identifies the CloudFormation stack a resource belongs to
	KeyStack = "kcstack.io/stack"

	// KeyDeployment is the deployment name shared by all stages
	KeyDeployment = "kcstack.io/deployment"

	// KeyEnvironment is the stage label
	KeyEnvironment = "kcstack.io/environment"

	// KeyComponent identifies the tier (network, database, compute, ...)
	KeyComponent = "kcstack.io/component"

	// KeyManagedBy identifies the management system
	KeyManagedBy = "kcstack.io/managed-by"
)

// ManagedByKcstack is the KeyManagedBy value of every resource.
const ManagedByKcstack = "kcstack"

// reservedPrefixes mark keys users cannot set.
var reservedPrefixes = []string{"kcstack.io/", "aws:"}

// TagBuilder provides a fluent interface for building resource tags.
type TagBuilder struct {
	tags map[string]string
}

// NewTagBuilder creates a builder with the stack and managed-by tags set.
func NewTagBuilder(stack string) *TagBuilder {
	return &TagBuilder{
		tags: map[string]string{
			KeyStack:     stack,
			KeyManagedBy: ManagedByKcstack,
		},
	}
}

// WithDeployment sets the deployment name.
func (tb *TagBuilder) WithDeployment(name string) *TagBuilder {
	tb.tags[KeyDeployment] = name
	return tb
}

// WithEnvironment sets the environment tag if env is non-empty.
func (tb *TagBuilder) WithEnvironment(env string) *TagBuilder {
	if env != "" {
		tb.tags[KeyEnvironment] = env
	}
	return tb
}

// WithComponent sets the component tag.
func (tb *TagBuilder) WithComponent(component string) *TagBuilder {
	tb.tags[KeyComponent] = component
	return tb
}

// Merge adds user tags. Keys with a reserved prefix are ignored.
func (tb *TagBuilder) Merge(extra map[string]string) *TagBuilder {
	for k, v := range extra {
		if IsReserved(k) {
			continue
		}
		tb.tags[k] = v
	}
	return tb
}

// Build returns a copy of the tags.
func (tb *TagBuilder) Build() map[string]string {
	return maps.Clone(tb.tags)
}

// Keys returns the tag keys in sorted order.
func (tb *TagBuilder) Keys() []string {
	return slices.Sorted(maps.Keys(tb.tags))
}

// IsReserved reports whether key is owned by kcstack or AWS.
func IsReserved(key string) bool {
	for _, p := range reservedPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}
