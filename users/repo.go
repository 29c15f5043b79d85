package users

import (
	"context"

	"github.com/pkg/errors"
)

// CredentialNotFoundErr is returned by Find when no credential exists for
// an identity. Callers must not forward it to end users; the Guard maps it
// to the same generic failure as a wrong secret.
var CredentialNotFoundErr = errors.New("credential not found")

// CredentialRepo is the injected collaborator that owns credential storage.
// Implementations may block on I/O; the Guard wraps calls with a timeout.
type CredentialRepo interface {
	Find(ctx context.Context, identity string) (*Credential, error)
	Upsert(ctx context.Context, credential *Credential) error
	Delete(ctx context.Context, identity string) error
}
