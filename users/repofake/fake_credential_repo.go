package fakecredentialrepo

import (
	"context"
	"strings"
	"sync"

	"github.com/jrsteele09/go-credential-guard/users"
)

var _ users.CredentialRepo = (*FakeCredentialRepo)(nil)

// FakeCredentialRepo is an in-memory credential store for tests and local
// wiring. Identities are matched case-insensitively.
type FakeCredentialRepo struct {
	credentials map[string]*users.Credential
	lock        sync.RWMutex
}

func NewFakeCredentialRepo() *FakeCredentialRepo {
	return &FakeCredentialRepo{
		credentials: make(map[string]*users.Credential),
	}
}

func (cr *FakeCredentialRepo) Find(_ context.Context, identity string) (*users.Credential, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	credential, ok := cr.credentials[normalizeIdentity(identity)]
	if !ok {
		return nil, users.CredentialNotFoundErr
	}
	copied := *credential
	return &copied, nil
}

func (cr *FakeCredentialRepo) Upsert(_ context.Context, credential *users.Credential) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	copied := *credential
	cr.credentials[normalizeIdentity(credential.Identity)] = &copied
	return nil
}

func (cr *FakeCredentialRepo) Delete(_ context.Context, identity string) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	key := normalizeIdentity(identity)
	if _, ok := cr.credentials[key]; !ok {
		return users.CredentialNotFoundErr
	}
	delete(cr.credentials, key)
	return nil
}

func normalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}
