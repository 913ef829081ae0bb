package config

import (
	"fmt"
	"strings"
)

// EnvValueKind tells where a container variable gets its value.
type EnvValueKind string

const (
	EnvLiteral         EnvValueKind = "literal"
	EnvParameter       EnvValueKind = "ssm"
	EnvSecureParameter EnvValueKind = "ssm-secure"
	EnvSecret          EnvValueKind = "secret"
)

// EnvValue is a parsed keycloak.env entry.
type EnvValue struct {
	Kind  EnvValueKind
	Value string // literal text or parameter name
	Field string // JSON key, for EnvSecret
}

// ParseEnvValue parses the reference syntax accepted in keycloak.env:
//
//	ssm:/path/to/param
//	ssm-secure:/path/to/param
//	secret:<secret-name>:<json-field>
//
// Anything else is a literal.
func ParseEnvValue(raw string) (EnvValue, error) {
	switch {
	case strings.HasPrefix(raw, "ssm-secure:"):
		name := strings.TrimPrefix(raw, "ssm-secure:")
		if name == "" {
			return EnvValue{}, fmt.Errorf("empty parameter name in %q", raw)
		}
		return EnvValue{Kind: EnvSecureParameter, Value: name}, nil
	case strings.HasPrefix(raw, "ssm:"):
		name := strings.TrimPrefix(raw, "ssm:")
		if name == "" {
			return EnvValue{}, fmt.Errorf("empty parameter name in %q", raw)
		}
		return EnvValue{Kind: EnvParameter, Value: name}, nil
	case strings.HasPrefix(raw, "secret:"):
		name, field, ok := strings.Cut(strings.TrimPrefix(raw, "secret:"), ":")
		if !ok || name == "" || field == "" {
			return EnvValue{}, fmt.Errorf("secret reference %q must be secret:<name>:<field>", raw)
		}
		return EnvValue{Kind: EnvSecret, Value: name, Field: field}, nil
	default:
		return EnvValue{Kind: EnvLiteral, Value: raw}, nil
	}
}
