package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/kcstack/internal/platform/s3"
)

// PublishOptions are the flags of the publish command.
type PublishOptions struct {
	ConfigPaths  []string
	Bucket       string
	Prefix       string
	Region       string
	Profile      string
	CreateBucket bool
	Prune        bool
}

// Factory function variables for publish - can be replaced in tests.
var (
	// newObjectStore creates the S3 client uploads go through.
	newObjectStore = func(ctx context.Context, opts s3.Options) (s3.ObjectStore, error) {
		return s3.NewClient(ctx, opts)
	}

	// publishAssembly uploads an assembly directory.
	publishAssembly = s3.Publish
)

// Publish synthesizes into a temporary directory and uploads the result.
func Publish(ctx context.Context, opts PublishOptions) error {
	outdir, err := os.MkdirTemp("", "kcstack-assembly-")
	if err != nil {
		return fmt.Errorf("failed to create assembly directory: %w", err)
	}
	defer os.RemoveAll(outdir)

	res, err := synthesizeAll(ctx, opts.ConfigPaths, outdir, "")
	if err != nil {
		return err
	}

	store, err := newObjectStore(ctx, s3.Options{Region: opts.Region, Profile: opts.Profile})
	if err != nil {
		return err
	}

	published, err := publishAssembly(ctx, store, res.Directory, s3.PublishOptions{
		Bucket: opts.Bucket,
		Prefix: opts.Prefix,
		Create: opts.CreateBucket,
		Prune:  opts.Prune,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Published %d file(s) of %d stack(s) to s3://%s/%s\n",
		len(published.Uploaded), len(res.Stacks), opts.Bucket, s3.ObjectKey(opts.Prefix, ""))
	if len(published.Pruned) > 0 {
		fmt.Printf("Pruned %d stale object(s)\n", len(published.Pruned))
	}
	return nil
}
