package users

import (
	"time"
)

// Credential is the stored authentication record for a single identity.
// SecretHash is opaque to callers: it embeds the salt and derived key in
// one string so verification needs no external salt storage. The plaintext
// secret is never retained.
type Credential struct {
	Identity   string    `json:"identity,omitempty"`   // Unique identity (email or username)
	SecretHash string    `json:"-"`                    // Salted hash of the secret - never serialize
	CreatedAt  time.Time `json:"created_at,omitempty"` // When the credential was first stored
}
