// Package tags builds the AWS resource tags applied to every construct of a
// Keycloak stack.
//
// Standard keys use the kcstack.io prefix. User tags are merged last and may
// not override them.
package tags
