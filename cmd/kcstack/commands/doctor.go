package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kcstack/cmd/kcstack/handlers"
)

// Doctor returns the command for diagnosing the local setup.
//
// Optional flags:
//
//	--config, -c: Path to configuration file (default: auto-detect kcstack.yaml)
//	--json: Output in JSON format
func Doctor() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose tools, configuration and AWS credentials",
		Long: `Diagnose whether this machine can synthesize and deploy.

Checks:
  - Node.js is installed (the CDK runs on it), plus the optional cdk and aws CLIs
  - The configuration file loads and validates
  - AWS credentials resolve, and belong to the configured account

Examples:
  kcstack doctor
  kcstack doctor --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: kcstack.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
