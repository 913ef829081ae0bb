package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kcstack/cmd/kcstack/handlers"
)

// Validate returns the command that checks a configuration without
// synthesizing it.
func Validate() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and topology",
		Long: `Validate a configuration file and the topology declared from it.

Every problem is reported at once. Warnings are printed but do not fail
the command. Node.js is not needed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Validate(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: kcstack.yaml)")

	return cmd
}
