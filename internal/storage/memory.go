package storage

import (
	"context"
	"sync"
)

// Compile-time check that MemoryStorage implements Backend.
var _ Backend = (*MemoryStorage)(nil)

// MemoryStorage is an in-memory implementation of Backend.
// It uses a map with RWMutex for thread-safe access.
// Values do not survive a restart; use it for tests and throwaway runs.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStorage creates a new empty in-memory backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		values: make(map[string][]byte),
	}
}

// Read returns a copy of the value under key.
func (s *MemoryStorage) Read(ctx context.Context, key string) ([]byte, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Write stores a copy of data so later caller mutations don't leak in.
func (s *MemoryStorage) Write(ctx context.Context, key string, data []byte) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), data...)
	return nil
}

// Remove deletes key if present.
func (s *MemoryStorage) Remove(ctx context.Context, key string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
