package marketing

import (
	"sync"

	"github.com/jhoicas/seller-analytics/internal/application/ports"
)

var _ ports.SessionStore = (*MemorySessionStore)(nil)

// MemorySessionStore tokens de marketing por tienda en memoria del proceso.
type MemorySessionStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{tokens: make(map[string]string)}
}

func (s *MemorySessionStore) Get(storeID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tokens[storeID]
	return t, ok
}

func (s *MemorySessionStore) Set(storeID, token string) {
	s.mu.Lock()
	s.tokens[storeID] = token
	s.mu.Unlock()
}

func (s *MemorySessionStore) Delete(storeID string) {
	s.mu.Lock()
	delete(s.tokens, storeID)
	s.mu.Unlock()
}
