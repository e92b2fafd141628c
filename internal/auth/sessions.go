package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the browser cookie carrying the admin session token.
const CookieName = "ssmv_session"

// Sessions is an in-memory store of admin session tokens. Tokens expire
// after the configured TTL; expired entries are dropped lazily on lookup.
type Sessions struct {
	mu     sync.Mutex
	ttl    time.Duration
	tokens map[string]time.Time
	now    func() time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl:    ttl,
		tokens: make(map[string]time.Time),
		now:    time.Now,
	}
}

// Create issues a new session token.
func (s *Sessions) Create() string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = s.now().Add(s.ttl)
	return token
}

// Valid reports whether token belongs to a live session.
func (s *Sessions) Valid(token string) bool {
	if token == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.tokens[token]
	if !ok {
		return false
	}
	if s.now().After(expiry) {
		delete(s.tokens, token)
		return false
	}
	return true
}

// Revoke ends the session for token. Unknown tokens are a no-op.
func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}
