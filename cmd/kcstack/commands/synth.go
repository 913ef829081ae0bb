package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kcstack/cmd/kcstack/handlers"
)

// Synth returns the command that declares and synthesizes the stacks.
//
// Optional flags:
//
//	--config, -c: Configuration file, repeatable (default: auto-detect kcstack.yaml)
//	--output, -o: Cloud assembly directory (default: CDK_OUTDIR or cdk.out)
//	--metrics-file: Write declaration metrics in textfile-collector format
func Synth() *cobra.Command {
	var (
		configPaths []string
		outdir      string
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize the CloudFormation templates",
		Long: `Declare every configured deployment and synthesize the cloud assembly.

This is the command cdk.json runs, so 'cdk synth', 'cdk diff' and
'cdk deploy' all go through it. Each -c adds one deployment; without
-c, kcstack.yaml is looked up from the current directory upwards.

Examples:
  # Synthesize kcstack.yaml into cdk.out
  kcstack synth

  # Synthesize two stages into one assembly
  kcstack synth -c dev.yaml -c prod.yaml -o build/cdk.out

  # Deploy through the CDK CLI
  cdk deploy --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Synth(cmd.Context(), configPaths, outdir, metricsFile)
		},
	}

	cmd.Flags().StringArrayVarP(&configPaths, "config", "c", nil, "Path to configuration file (repeatable, default: kcstack.yaml)")
	cmd.Flags().StringVarP(&outdir, "output", "o", "", "Cloud assembly directory (default: CDK_OUTDIR or cdk.out)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write declaration metrics to this file")

	return cmd
}
