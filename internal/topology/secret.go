package topology

import "encoding/json"

// Credential secret names.
const (
	SecretDatabase = "database"
	SecretAdmin    = "admin"
)

// Well-known fields of a generated credential secret.
const (
	FieldUsername = "username"
	FieldPassword = "password"
)

// CredentialSecret is a username/password pair generated at deploy time.
// Its value never appears in the declaration; consumers reference a field.
type CredentialSecret struct {
	Name               string
	Description        string
	Username           string
	PasswordKey        string
	Length             int
	ExcludePunctuation bool
}

// NodeID returns the graph node of the secret.
func (s CredentialSecret) NodeID() string { return SecretNode(s.Name) }

// SecretNode returns the graph node id for a secret name.
func SecretNode(name string) string { return "secret/" + name }

// Template returns the JSON document the password is generated into.
func (s CredentialSecret) Template() string {
	b, _ := json.Marshal(map[string]string{FieldUsername: s.Username})
	return string(b)
}

// HasField reports whether field exists in the generated document.
func (s CredentialSecret) HasField(field string) bool {
	return field == FieldUsername || field == s.PasswordKey
}

func generatedSecret(name, description, username string) CredentialSecret {
	return CredentialSecret{
		Name:               name,
		Description:        description,
		Username:           username,
		PasswordKey:        FieldPassword,
		Length:             32,
		ExcludePunctuation: true,
	}
}
