package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	email   string
	expires time.Time
}

// SessionStore holds logged-in sessions in memory. Sessions die with the
// process; the dashboard carries no persistent state anywhere.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]session
	now      func() time.Time
}

// NewSessionStore creates a store whose sessions expire after ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]session),
		now:      time.Now,
	}
}

// Create registers a session for email and returns its opaque token.
func (s *SessionStore) Create(email string) string {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = session{email: email, expires: s.now().Add(s.ttl)}
	return token
}

// Email resolves a token to its email. Expired sessions are removed on
// lookup.
func (s *SessionStore) Email(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return "", false
	}
	if s.now().After(sess.expires) {
		delete(s.sessions, token)
		return "", false
	}
	return sess.email, true
}

// Delete removes a session if it exists.
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
