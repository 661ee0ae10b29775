package repository

import (
	"context"
	"sync"
)

// MemoryLevelStore keeps levels in process memory; values are lost on exit
type MemoryLevelStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryLevelStore creates an empty store
func NewMemoryLevelStore() *MemoryLevelStore {
	return &MemoryLevelStore{values: make(map[string]string)}
}

// Read returns the value stored under key
func (s *MemoryLevelStore) Read(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

// Write stores value under key
func (s *MemoryLevelStore) Write(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
