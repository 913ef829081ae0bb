package provisioning

import (
	"context"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/go-logr/logr"

	"github.com/imamik/kcstack/internal/topology"
	"github.com/imamik/kcstack/internal/util/tags"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Stack    awscdk.Stack
	Topology *topology.Topology
	State    *State
	Observer Observer
	Metrics  *Metrics
}

// NewContext creates a new provisioning context. A nil observer discards
// output and nil metrics get a fresh registry.
func NewContext(
	ctx context.Context,
	stack awscdk.Stack,
	topo *topology.Topology,
	observer Observer,
	metrics *Metrics,
) *Context {
	if observer == nil {
		observer = NewLogObserver(logr.Discard())
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Context{
		Context:  ctx,
		Stack:    stack,
		Topology: topo,
		State:    NewState(),
		Observer: observer,
		Metrics:  metrics,
	}
}

// Declared records a construct declared by a phase.
func (c *Context) Declared(phase, kind, name string) {
	LogResourceDeclared(c.Observer, phase, kind, name)
	if c.Metrics != nil {
		c.Metrics.ResourceDeclared(phase, kind)
	}
}

// Tag marks every construct below scope with the component it belongs to.
func (c *Context) Tag(scope constructs.IConstruct, component string) {
	awscdk.Tags_Of(scope).Add(jsii.String(tags.KeyComponent), jsii.String(component), nil)
}
