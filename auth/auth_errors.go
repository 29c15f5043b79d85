package auth

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// RateLimitedErr means too many recent failures for the identity or
	// origin; temporary, retry after the window.
	RateLimitedErr = errors.New("too many authentication attempts")

	// InvalidCredentialsErr is deliberately generic: it never distinguishes
	// an unknown identity from a wrong secret.
	InvalidCredentialsErr = errors.New("invalid credentials")

	// ServiceUnavailableErr covers collaborator and internal failures.
	// Detail is routed to logs under a correlation id, never to callers.
	ServiceUnavailableErr = errors.New("authentication unavailable")

	// IdentityExistsErr is returned by Register for a duplicate identity.
	IdentityExistsErr = errors.New("identity already registered")

	// SessionNotFoundErr is returned by Logout for an unknown session.
	SessionNotFoundErr = errors.New("session not found")
)

// ValidationError reports every password-policy violation for a rejected
// secret. It is caller-correctable and safe to show to end users.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "password validation failed: " + strings.Join(e.Violations, "; ")
}
