package onboarding

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore keeps sessions in process memory. Entries idle for longer than
// the TTL are evicted; a zero TTL keeps them until Delete.
type MemoryStore struct {
	cache *expirable.LRU[string, *Session]
}

func NewMemoryStore(idleTTL time.Duration) *MemoryStore {
	if idleTTL < 0 {
		idleTTL = 0
	}
	return &MemoryStore{
		cache: expirable.NewLRU[string, *Session](0, nil, idleTTL),
	}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (*Session, error) {
	session, ok := s.cache.Get(userID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, userID string, session *Session) error {
	s.cache.Add(userID, session.Clone())
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.cache.Remove(userID)
	return nil
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	return s.cache.Len()
}
