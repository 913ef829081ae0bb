// Package s3 publishes synthesized cloud assemblies to an S3 bucket.
//
// The client wraps the few bucket and object calls the publisher needs.
// Publish uploads every file of an assembly directory concurrently and can
// prune objects left over from earlier assemblies under the same prefix.
package s3
