package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/stack"
)

// synthesize builds the cloud assembly - can be replaced in tests.
var synthesize = stack.Synthesize

// Synth declares every configured deployment and writes the assembly.
func Synth(ctx context.Context, configPaths []string, outdir, metricsFile string) error {
	res, err := synthesizeAll(ctx, configPaths, outdir, metricsFile)
	if err != nil {
		return err
	}
	fmt.Printf("Synthesized %d stack(s) to %s\n", len(res.Stacks), res.Directory)
	return nil
}

func synthesizeAll(ctx context.Context, configPaths []string, outdir, metricsFile string) (*stack.SynthResult, error) {
	topologies, err := loadTopologies(configPaths)
	if err != nil {
		return nil, err
	}

	observer := newObserver()
	metrics := provisioning.NewMetrics()

	res, synthErr := synthesize(ctx, topologies, outdir, stack.Options{Observer: observer, Metrics: metrics})

	// Metrics are written for failed runs too.
	if metricsFile != "" {
		if err := metrics.WriteFile(metricsFile); err != nil {
			return nil, fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	if synthErr != nil {
		return nil, synthErr
	}

	for _, name := range res.Stacks {
		observer.Printf("stack %s synthesized", name)
	}
	return res, nil
}
