// Package topology models the provisioning intent for a Keycloak deployment
// as plain records with explicit references between them.
//
// A [Topology] is built once from configuration by [FromConfig] and never
// mutated. It holds one record per entity:
//
//   - [NetworkTopology]: address space and tiered subnet groups
//   - [AccessPolicy]: ingress rules scoped to other policy groups, never CIDRs
//   - [CredentialSecret]: generated credentials, referenced by name only
//   - [DataTierCluster]: the Aurora MySQL cluster
//   - [ComputeTaskSpec]: the Keycloak task and its service
//   - [TrafficDistribution]: the load balancer entry point
//   - [ElasticityPolicy]: replica bounds and scaling targets
//
// [Topology.Graph] exposes the references as a dependency graph and
// [Topology.Validate] checks the structural rules. Nothing here depends on
// the CDK, so the whole model is testable without node or jsii.
package topology
