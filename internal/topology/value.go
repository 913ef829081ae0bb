package topology

import (
	"fmt"
	"strings"
)

// ValueKind tells how a container variable is resolved at deploy time.
type ValueKind string

const (
	ValueLiteral         ValueKind = "literal"
	ValueParameter       ValueKind = "parameter"
	ValueSecureParameter ValueKind = "secure-parameter"
	ValueSecretField     ValueKind = "secret"
	ValueDatabaseURL     ValueKind = "database-url"

	// ValueDiscoveryBucket carries JAVA_OPTS_APPEND for S3_PING. Text holds
	// the options up to the bucket name, appended once the bucket exists.
	ValueDiscoveryBucket ValueKind = "discovery-bucket"
)

// Value is a container environment value. Only literals carry their text;
// everything else is a reference resolved by the provisioning engine.
type Value struct {
	Kind   ValueKind
	Text   string // literal text or parameter name
	Secret string
	Field  string
}

// Literal is a plain value.
func Literal(s string) Value { return Value{Kind: ValueLiteral, Text: s} }

// Parameter reads an SSM String parameter.
func Parameter(name string) Value { return Value{Kind: ValueParameter, Text: name} }

// SecureParameter reads an SSM SecureString parameter, injected as a secret.
func SecureParameter(name string) Value { return Value{Kind: ValueSecureParameter, Text: name} }

// SecretField reads one JSON field of a declared credential secret.
func SecretField(secret, field string) Value {
	return Value{Kind: ValueSecretField, Secret: secret, Field: field}
}

// DatabaseURL is the JDBC URL of the data tier writer endpoint.
func DatabaseURL() Value { return Value{Kind: ValueDatabaseURL} }

// IsSecret reports whether the value is injected through the ECS secrets
// mechanism instead of plain environment.
func (v Value) IsSecret() bool {
	return v.Kind == ValueSecretField || v.Kind == ValueSecureParameter
}

// String renders the value source for plans. Literals are shown verbatim.
func (v Value) String() string {
	switch v.Kind {
	case ValueLiteral:
		return v.Text
	case ValueParameter:
		return "ssm:" + v.Text
	case ValueSecureParameter:
		return "ssm-secure:" + v.Text
	case ValueSecretField:
		return fmt.Sprintf("secret:%s:%s", v.Secret, v.Field)
	case ValueDatabaseURL:
		return "jdbc:mysql://<writer-endpoint>"
	case ValueDiscoveryBucket:
		return v.Text + "<discovery-bucket>"
	default:
		return string(v.Kind)
	}
}

// credentialEnv are the variables that carry credentials and must be
// resolved through a secret.
var credentialEnv = map[string]bool{
	"KEYCLOAK_ADMIN":          true,
	"KEYCLOAK_ADMIN_PASSWORD": true,
	"KC_DB_USERNAME":          true,
	"KC_DB_PASSWORD":          true,
}

// IsCredentialName reports whether an environment variable name holds a
// credential, either a known one or one whose name says so.
func IsCredentialName(name string) bool {
	if credentialEnv[name] {
		return true
	}
	upper := strings.ToUpper(name)
	for _, marker := range []string{"PASSWORD", "SECRET", "TOKEN"} {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}
