package storage

import (
	"context"
	"sync"
)

// MemoryStorage is an in-memory stand-in for the durable key/value store,
// used by the test harness and the memory storage driver.
type MemoryStorage struct {
	mu  sync.RWMutex
	raw []byte
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.raw == nil {
		return nil, nil
	}
	out := make([]byte, len(s.raw))
	copy(out, s.raw)
	return out, nil
}

func (s *MemoryStorage) Save(_ context.Context, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raw = make([]byte, len(raw))
	copy(s.raw, raw)
	return nil
}

func (s *MemoryStorage) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raw = nil
	return nil
}
