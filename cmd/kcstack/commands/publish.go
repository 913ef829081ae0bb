package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imamik/kcstack/cmd/kcstack/handlers"
)

// Publish returns the command that uploads a synthesized assembly to S3.
//
// Required flags:
//
//	--bucket: Destination bucket
//
// Optional flags:
//
//	--config, -c: Configuration file, repeatable (default: auto-detect kcstack.yaml)
//	--prefix: Key prefix inside the bucket
//	--create-bucket: Create the bucket when missing
//	--prune: Delete objects under the prefix that are not in the assembly (needs --prefix)
func Publish() *cobra.Command {
	var opts handlers.PublishOptions

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Synthesize and upload the cloud assembly to S3",
		Long: `Synthesize the configured deployments and upload the cloud assembly
to an S3 bucket, for pipelines that deploy from a stored assembly.

Credentials come from the default AWS chain (environment, profile, SSO,
instance role).

Examples:
  kcstack publish --bucket my-assemblies --prefix keycloak/dev
  kcstack publish -c prod.yaml --bucket my-assemblies --prefix keycloak/prod --prune`,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if opts.Prune && strings.Trim(opts.Prefix, "/") == "" {
				return errors.New("--prune requires --prefix")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Publish(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.ConfigPaths, "config", "c", nil, "Path to configuration file (repeatable, default: kcstack.yaml)")
	cmd.Flags().StringVar(&opts.Bucket, "bucket", "", "Destination bucket")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "Key prefix inside the bucket")
	cmd.Flags().StringVar(&opts.Region, "region", "", "Bucket region (default: from the AWS config)")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "AWS shared config profile")
	cmd.Flags().BoolVar(&opts.CreateBucket, "create-bucket", false, "Create the bucket when missing")
	cmd.Flags().BoolVar(&opts.Prune, "prune", false, "Delete stale objects under the prefix")
	_ = cmd.MarkFlagRequired("bucket")

	return cmd
}
