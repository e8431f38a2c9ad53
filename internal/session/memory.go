package session

import (
	"context"
	"sync"

	"github.com/GregMSThompson/bank-portal/internal/errs"
)

type memoryStore struct {
	mu   sync.RWMutex
	data map[string]Identity
}

// NewMemoryStore keeps identities in process memory. Sessions do not
// survive a restart.
func NewMemoryStore() *memoryStore {
	return &memoryStore{data: map[string]Identity{}}
}

func (s *memoryStore) Get(_ context.Context, sessionID string) (Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.data[sessionID]
	if !ok {
		return Identity{}, errs.NewNotFoundError("session not found")
	}
	return id, nil
}

func (s *memoryStore) Put(_ context.Context, sessionID string, id Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = id
	return nil
}

func (s *memoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}
