package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kcstack/cmd/kcstack/handlers"
	"github.com/imamik/kcstack/internal/config"
)

// Init returns the command for interactively creating a configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "kcstack.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a configuration",
		Long: `Interactively create a kcstack configuration file.

The wizard asks for:

  - Deployment name, environment and region
  - Keycloak hostname and image source
  - Task size, replica counts and database instances
  - HTTPS on the load balancer

Everything else keeps its default and can be edited afterwards.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Output file path")

	return cmd
}
