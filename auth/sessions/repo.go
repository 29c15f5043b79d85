package sessions

import "time"

// Repo defines the interface for session storage operations. Sessions are
// process-local state and should be cleaned up regularly.
type Repo interface {
	// Upsert creates or updates a session
	Upsert(sessionID string, session *Session) error

	// Delete removes a session by ID
	Delete(sessionID string) error

	// Get retrieves a session by ID
	Get(sessionID string) (*Session, error)

	// Touch updates the session's last-accessed time
	Touch(sessionID string, accessedAt time.Time) error

	// DeleteExpired removes sessions whose expiry is before the given time
	DeleteExpired(before time.Time) error
}
