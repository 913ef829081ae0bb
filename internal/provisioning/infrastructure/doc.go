// Package infrastructure declares the network layer of a Keycloak stack:
// the VPC with its subnet groups and endpoints, one security group per
// access policy, and the application load balancer in front of the service.
//
// It contributes three phases. NetworkPhase runs first, SecurityPhase wires
// the declared ingress rules once the VPC exists, and TrafficPhase attaches
// the load balancer after the compute tier has declared its service.
package infrastructure
