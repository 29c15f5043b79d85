package fakesessionrepo

import (
	"errors"
	"sync"
	"time"

	"github.com/jrsteele09/go-credential-guard/auth/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

// FakeSessionRepo is an in-memory session table guarded by a single
// RWMutex. One shared table per Guard instance; no hidden globals.
type FakeSessionRepo struct {
	sessions map[string]*sessions.Session
	lock     sync.RWMutex
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		sessions: make(map[string]*sessions.Session),
	}
}

func (sr *FakeSessionRepo) Upsert(sessionID string, session *sessions.Session) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	copied := *session
	copied.ID = sessionID
	sr.sessions[sessionID] = &copied
	return nil
}

func (sr *FakeSessionRepo) Delete(sessionID string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if _, ok := sr.sessions[sessionID]; !ok {
		return errors.New("not found")
	}
	delete(sr.sessions, sessionID)
	return nil
}

func (sr *FakeSessionRepo) Get(sessionID string) (*sessions.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	session, ok := sr.sessions[sessionID]
	if !ok {
		return nil, errors.New("not found")
	}
	copied := *session
	return &copied, nil
}

func (sr *FakeSessionRepo) Touch(sessionID string, accessedAt time.Time) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	session, ok := sr.sessions[sessionID]
	if !ok {
		return errors.New("not found")
	}
	session.LastAccessedAt = accessedAt
	return nil
}

func (sr *FakeSessionRepo) DeleteExpired(before time.Time) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	for sessionID, session := range sr.sessions {
		if session.ExpiresAt.Before(before) {
			delete(sr.sessions, sessionID)
		}
	}
	return nil
}
