package kvstore

import (
	"context"
	"sync"

	"people-directory/domain/repositories"
)

// MemoryStore keeps values in process memory. Used by the "memory" driver and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

var _ repositories.KeyValueStore = (*MemoryStore)(nil)

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
