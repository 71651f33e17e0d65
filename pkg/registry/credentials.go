package registry

import (
	"encoding/base64"
	"fmt"
)

// Credentials carries a precomputed HTTP Basic Authorization header.
// The zero value means no credentials.
type Credentials struct {
	user   string
	header string
}

// NewCredentials builds credentials from a user and password. Both must be
// non-empty; otherwise the zero Credentials and false are returned.
func NewCredentials(user, password string) (Credentials, bool) {
	if user == "" || password == "" {
		return Credentials{}, false
	}
	token := base64.StdEncoding.EncodeToString([]byte(user + ":" + password))
	return Credentials{user: user, header: "Basic " + token}, true
}

// Valid reports whether c holds credentials.
func (c Credentials) Valid() bool { return c.header != "" }

// User returns the user name.
func (c Credentials) User() string { return c.user }

// Header returns the Authorization header value, or "".
func (c Credentials) Header() string { return c.header }

// String never includes the secret.
func (c Credentials) String() string {
	if !c.Valid() {
		return "Credentials{}"
	}
	return fmt.Sprintf("Credentials{user: %s}", c.user)
}
