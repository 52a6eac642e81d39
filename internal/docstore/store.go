// Package docstore persists JSON documents and ordered collections of records
// on top of a storage.Backend.
//
// Absence is not an error: Get reports found == false for keys that were
// never written or have been deleted. Failures surface as *StorageWriteError
// or *StorageReadError and are never retried.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/maauso/jobfinder-api/internal/storage"
)

// Store is a JSON document facade over a key-value backend.
type Store struct {
	backend storage.Backend

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Store writing through backend.
func New(backend storage.Backend) *Store {
	return &Store{
		backend: backend,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Put serializes value as JSON and writes it under key, replacing any
// previous value.
func (s *Store) Put(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	if err := s.backend.Write(ctx, key, data); err != nil {
		return &StorageWriteError{Key: key, Err: err}
	}
	return nil
}

// Get reads the value under key and decodes it into dst, which must be a
// non-nil pointer. It returns found == false with a nil error when the key
// is absent; dst is left untouched in that case.
func (s *Store) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.backend.Read(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return false, nil
		}
		return false, &StorageReadError{Key: key, Err: err}
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, &StorageReadError{Key: key, Err: err}
	}
	return true, nil
}

// Delete removes key. Deleting an absent key succeeds.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.backend.Remove(ctx, key); err != nil {
		return &StorageWriteError{Key: key, Err: err}
	}
	return nil
}

// lock serializes collection mutations on key within this process and
// returns the matching unlock function.
func (s *Store) lock(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}
