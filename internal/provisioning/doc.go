// Package provisioning provides shared types, interfaces, and orchestration
// for declaring a Keycloak deployment as CDK constructs.
//
// # Subpackages
//
//   - infrastructure/: VPC and endpoints, security groups, the load balancer
//   - database/: generated credentials and the Aurora MySQL cluster
//   - compute/: ECS cluster, identities, task definition, service and scaling
//
// # Core Types
//
// Context carries the stack scope, the validated topology, construct state,
// the observer, and run metrics. Phase defines a declaration step with
// Name(), DependsOn() and Provision(). RunPhases orders phases by their
// dependencies and stops at the first failure.
package provisioning
