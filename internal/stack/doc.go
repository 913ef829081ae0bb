// Package stack assembles CDK stacks from validated topologies.
//
// NewKeycloakStack runs the declaration phases for one deployment and adds
// its outputs. NewRegistryStack declares the optional ECR repository in a
// stack of its own so images can be pushed before the service exists.
// Synthesize builds an app from any number of topologies and writes the
// cloud assembly.
package stack
