package session

import (
	"context"
	"sync"
)

// MemoryStore keeps session state in process memory. Entries live until
// cleared or the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]string
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: make(map[string]string),
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[sessionID], nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[sessionID] = state
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sessionID)
	return nil
}
