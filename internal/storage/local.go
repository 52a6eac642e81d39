package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Compile-time check that LocalStorage implements Backend.
var _ Backend = (*LocalStorage)(nil)

// LocalStorage implements Backend using local disk.
// Each key is stored as one file inside a configurable directory.
type LocalStorage struct {
	dataDir string
}

// NewLocalStorage creates a new LocalStorage instance.
// If dataDir is empty, a "jobfinder" directory under os.TempDir() is used.
// The directory is created if it doesn't exist.
func NewLocalStorage(dataDir string) (*LocalStorage, error) {
	if dataDir == "" {
		dataDir = filepath.Join(os.TempDir(), "jobfinder")
	}

	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	return &LocalStorage{dataDir: dataDir}, nil
}

// DataDir returns the directory holding the stored values.
func (s *LocalStorage) DataDir() string {
	return s.dataDir
}

// Read returns the contents of the file backing key.
func (s *LocalStorage) Read(ctx context.Context, key string) ([]byte, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Write replaces the file backing key.
// Data goes to a temporary file in the same directory first and is renamed
// into place, so readers never observe a partially written value.
func (s *LocalStorage) Write(ctx context.Context, key string, data []byte) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if err := ValidateKey(key); err != nil {
		return err
	}

	f, err := os.CreateTemp(s.dataDir, "."+key+"_*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpName := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename into %s: %w", key, err)
	}

	return nil
}

// Remove deletes the file backing key. A missing file is not an error.
func (s *LocalStorage) Remove(ctx context.Context, key string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if err := ValidateKey(key); err != nil {
		return err
	}

	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (s *LocalStorage) path(key string) string {
	return filepath.Join(s.dataDir, key+".json")
}
