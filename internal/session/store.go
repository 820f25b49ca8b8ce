package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps session tokens in memory. Tokens expire after the configured
// TTL; a restart logs everyone out, which the clients handle by redirecting
// to login.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]entry
}

type entry struct {
	userId    int64
	expiresAt time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]entry),
	}
}

// Create issues a fresh opaque token bound to userId.
func (s *Store) Create(userId int64) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = entry{userId: userId, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token
}

// Get resolves a token to its user id. Expired tokens read as absent.
func (s *Store) Get(token string) (int64, bool) {
	s.mu.RLock()
	e, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		return 0, false
	}
	return e.userId, true
}

func (s *Store) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Sweep drops expired sessions and reports how many were removed.
func (s *Store) Sweep() int {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for token, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// TTL is exposed so the HTTP layer can set a matching cookie max-age.
func (s *Store) TTL() time.Duration {
	return s.ttl
}
