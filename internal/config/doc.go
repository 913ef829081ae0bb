// Package config defines the user-facing configuration for a Keycloak
// deployment and the rules it must satisfy before a topology is declared.
//
// A [Config] is read from kcstack.yaml (or a .toml file), completed with
// defaults, overlaid with environment variables and validated. The
// resulting value is the only input to topology.FromConfig.
package config
