package sessions

import (
	"time"
)

// Session is a server-side record of a successful authentication. It lives
// only in memory for the process lifetime; there is no persistence across
// restarts. The session never holds the plaintext secret or any signing
// key material.
type Session struct {
	ID             string    // Unique session identifier (UUID)
	Identity       string    // Authenticated identity this session belongs to
	CreatedAt      time.Time // When the session was created
	LastAccessedAt time.Time // Updated on every successful validation
	ExpiresAt      time.Time // CreatedAt + configured session timeout
}

// Expired reports whether the session has passed its expiry at the given
// instant.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
