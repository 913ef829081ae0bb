// Package database declares the data tier: the generated credential
// secrets and the Aurora MySQL cluster Keycloak stores its realms in.
package database
