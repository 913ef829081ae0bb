package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kcstack/cmd/kcstack/handlers"
)

// Plan returns the command that prints what a configuration declares.
//
// Optional flags:
//
//	--config, -c: Path to configuration file (default: auto-detect kcstack.yaml)
//	--json: Output in JSON format
func Plan() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the declared topology",
		Long: `Show what a configuration declares without synthesizing it.

Prints the declaration order, the subnet layout per availability zone,
the access policies, and where every container environment variable
comes from.

Examples:
  kcstack plan
  kcstack plan -c prod.yaml --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: kcstack.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
