package s3

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/imamik/kcstack/internal/util/async"
)

// DefaultConcurrency is the number of uploads Publish runs at once.
const DefaultConcurrency = 8

// ObjectStore is the subset of Client used by Publish.
type ObjectStore interface {
	EnsureBucket(ctx context.Context, bucket string) error
	ListObjects(ctx context.Context, bucket, prefix string) ([]string, error)
	PutObject(ctx context.Context, bucket, key, contentType string, data []byte) error
	DeleteObject(ctx context.Context, bucket, key string) error
}

// PublishOptions control where an assembly is published.
type PublishOptions struct {
	Bucket string
	Prefix string

	// Create makes the bucket when it does not exist yet.
	Create bool

	// Prune deletes objects under Prefix that are not part of the assembly.
	Prune bool

	Concurrency int
}

// PublishResult lists the keys written and removed.
type PublishResult struct {
	Uploaded []string
	Pruned   []string
}

// Publish uploads every regular file below dir to the bucket. Keys are the
// slash-separated paths relative to dir, below the prefix.
func Publish(ctx context.Context, store ObjectStore, dir string, opts PublishOptions) (*PublishResult, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}
	if opts.Prune && strings.Trim(opts.Prefix, "/") == "" {
		return nil, fmt.Errorf("prune requires a prefix")
	}

	files, err := assemblyFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to publish in %s", dir)
	}

	if opts.Create {
		if err := store.EnsureBucket(ctx, opts.Bucket); err != nil {
			return nil, err
		}
	}

	concurrency := opts.Concurrency
	if concurrency == 0 {
		concurrency = DefaultConcurrency
	}

	res := &PublishResult{}
	tasks := make([]async.Task, 0, len(files))
	for _, rel := range files {
		key := ObjectKey(opts.Prefix, rel)
		res.Uploaded = append(res.Uploaded, key)
		tasks = append(tasks, async.Task{
			Name: key,
			Func: func(ctx context.Context) error {
				// #nosec G304
				data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
				if err != nil {
					return err
				}
				return store.PutObject(ctx, opts.Bucket, key, ContentType(rel), data)
			},
		})
	}
	if err := async.RunParallel(ctx, concurrency, tasks); err != nil {
		return nil, fmt.Errorf("failed to publish assembly: %w", err)
	}

	if opts.Prune {
		pruned, err := prune(ctx, store, opts, res.Uploaded)
		if err != nil {
			return nil, err
		}
		res.Pruned = pruned
	}
	return res, nil
}

func prune(ctx context.Context, store ObjectStore, opts PublishOptions, keep []string) ([]string, error) {
	prefix := strings.Trim(opts.Prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	existing, err := store.ListObjects(ctx, opts.Bucket, prefix)
	if err != nil {
		return nil, err
	}

	var pruned []string
	for _, key := range existing {
		if slices.Contains(keep, key) {
			continue
		}
		if err := store.DeleteObject(ctx, opts.Bucket, key); err != nil {
			return nil, err
		}
		pruned = append(pruned, key)
	}
	return pruned, nil
}

// assemblyFiles returns the slash-separated paths of every regular file
// below dir in lexical order.
func assemblyFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read assembly %s: %w", dir, err)
	}
	return files, nil
}

// ObjectKey joins prefix and a relative path into an object key.
func ObjectKey(prefix, rel string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return rel
	}
	return path.Join(prefix, rel)
}

// ContentType guesses the media type of an assembly file.
func ContentType(name string) string {
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
