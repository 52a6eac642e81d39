// Package storage provides the key-value backends used by the document store.
// It defines the Backend interface (port) and implementations for local disk,
// S3, Redis and process memory.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// Static errors shared by all backends.
var (
	// ErrKeyNotFound is returned by Read when nothing is stored under the key.
	ErrKeyNotFound = errors.New("storage: key not found")
	// ErrInvalidKey is returned when a key is empty or contains characters
	// the backend cannot address safely.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// Backend defines the interface for a string-keyed byte store.
// Distinct keys never interfere with each other.
type Backend interface {
	// Read returns the bytes stored under key.
	// Returns ErrKeyNotFound if the key has never been written or was removed.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write stores data under key, replacing any previous value.
	Write(ctx context.Context, key string, data []byte) error

	// Remove deletes the value under key.
	// Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateKey reports whether key can be used with every backend.
// Keys map directly onto file names and object names, so path separators
// and relative components are rejected.
func ValidateKey(key string) error {
	if key == "" || key == "." || key == ".." || !validKey.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// checkContext returns a wrapped context error if ctx is already done.
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
		return nil
	}
}
