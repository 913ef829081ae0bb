// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kcstack/cmd/kcstack/handlers"
)

// Root returns the root command for the kcstack CLI.
func Root() *cobra.Command {
	var (
		verbose bool
		logJSON bool
	)

	cmd := &cobra.Command{
		Use:           "kcstack",
		Short:         "Declare Keycloak on AWS with the CDK",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			handlers.SetLogOptions(verbose, logJSON)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every declared construct")
	cmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON lines")

	// Core commands
	cmd.AddCommand(Synth())
	cmd.AddCommand(Validate())
	cmd.AddCommand(Plan())
	cmd.AddCommand(Init())
	cmd.AddCommand(Publish())

	// Utility commands
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
