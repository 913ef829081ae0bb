// Package compute declares the Keycloak compute tier on ECS Fargate.
//
// The compute phase declares the cluster, log group, task identities,
// member discovery (a Cloud Map namespace or an S3 bucket), the task
// definition with its container, and the Fargate service. Container
// environment values are resolved here: literals and SSM String parameters
// become plain environment, secret fields and SecureString parameters are
// injected through the ECS secrets mechanism. The elasticity phase attaches
// target tracking on CPU and memory to the service.
package compute
