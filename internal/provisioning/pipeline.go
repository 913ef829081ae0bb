package provisioning

import (
	"fmt"
	"time"

	"github.com/imamik/kcstack/internal/topology"
)

// Names of the declaration phases. PhaseValidation is defined with the
// validation phase itself.
const (
	PhaseNetwork    = "network"
	PhaseSecurity   = "security"
	PhaseDatabase   = "database"
	PhaseCompute    = "compute"
	PhaseTraffic    = "traffic"
	PhaseElasticity = "elasticity"
)

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the name of this phase, used as its graph node.
	Name() string

	// DependsOn returns the names of the phases that must run first.
	DependsOn() []string

	// Provision declares the constructs of this phase.
	Provision(ctx *Context) error
}

// OrderPhases sorts phases so each runs after its dependencies.
func OrderPhases(phases []Phase) ([]Phase, error) {
	g := topology.NewGraph()
	byName := make(map[string]Phase, len(phases))
	for _, p := range phases {
		if _, dup := byName[p.Name()]; dup {
			return nil, fmt.Errorf("phase %q registered twice", p.Name())
		}
		byName[p.Name()] = p
		g.Add(p.Name(), p.DependsOn()...)
	}

	order, err := g.Resolve()
	if err != nil {
		return nil, fmt.Errorf("failed to order phases: %w", err)
	}

	out := make([]Phase, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	return out, nil
}

// RunPhases executes all provisioning phases in dependency order.
func RunPhases(ctx *Context, phases []Phase) error {
	ordered, err := OrderPhases(phases)
	if err != nil {
		return err
	}

	start := time.Now()
	ctx.Observer.Printf("Declaring %s with %d phases", ctx.stackName(), len(ordered))

	for i, phase := range ordered {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("declaration canceled before %s: %w", phase.Name(), err)
		}

		ctx.Observer.Progress(phase.Name(), i, len(ordered))
		LogPhaseStart(ctx.Observer, phase.Name())
		phaseStart := time.Now()

		err := phase.Provision(ctx)
		ctx.Metrics.ObservePhase(phase.Name(), time.Since(phaseStart), err)
		if err != nil {
			LogPhaseFailed(ctx.Observer, phase.Name(), err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		LogPhaseComplete(ctx.Observer, phase.Name(), time.Since(phaseStart))
	}

	ctx.Observer.Progress("done", len(ordered), len(ordered))
	ctx.Observer.Printf("Declaration completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

func (c *Context) stackName() string {
	if c.Topology == nil {
		return "stack"
	}
	return c.Topology.StackName()
}
