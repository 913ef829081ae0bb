package stack

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/kcstack/internal/topology"
)

// SynthResult describes a synthesized cloud assembly.
type SynthResult struct {
	Directory string
	Stacks    []string
}

// Synthesize declares every topology in one app and writes the cloud
// assembly to outdir. An empty outdir leaves the choice to the CDK CLI
// (CDK_OUTDIR) or its default.
func Synthesize(ctx context.Context, topologies []*topology.Topology, outdir string, opts Options) (res *SynthResult, err error) {
	// jsii reports JavaScript exceptions as panics.
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("synthesis failed: %v", r)
		}
	}()

	props := &awscdk.AppProps{}
	if outdir != "" {
		props.Outdir = jsii.String(outdir)
	}
	app := awscdk.NewApp(props)

	res = &SynthResult{}
	var errs []error
	for _, topo := range topologies {
		registry := NewRegistryStack(app, topo, opts)
		if registry != nil {
			res.Stacks = append(res.Stacks, *registry.StackName())
		}

		kc, err := NewKeycloakStack(ctx, app, topo, opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if registry != nil {
			kc.Stack.AddDependency(registry, jsii.String("image repository"))
		}
		res.Stacks = append(res.Stacks, *kc.Stack.StackName())
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	assembly := app.Synth(nil)
	res.Directory = *assembly.Directory()
	return res, nil
}
