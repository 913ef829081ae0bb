// Package naming provides consistent names for the constructs and AWS
// resources of a Keycloak stack.
//
// Construct ids are UpperCamelCase and scoped to the stack ({Kind} or
// {Name}{Kind}). Physical names follow {deployment}-{kind} so resources of
// different deployments in one account never collide.
package naming
