package docstore

import (
	"errors"
	"fmt"
)

// ErrEncode is returned by Put when the value cannot be represented as JSON.
var ErrEncode = errors.New("docstore: value is not JSON-serializable")

// StorageWriteError reports that the backend rejected a write or delete.
type StorageWriteError struct {
	Key string
	Err error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("docstore: write %q: %v", e.Key, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}

// StorageReadError reports that a stored value exists but could not be
// loaded, either because the backend failed or the text is not valid JSON.
type StorageReadError struct {
	Key string
	Err error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("docstore: read %q: %v", e.Key, e.Err)
}

func (e *StorageReadError) Unwrap() error {
	return e.Err
}

// IsWriteError reports whether err is or wraps a *StorageWriteError.
func IsWriteError(err error) bool {
	var we *StorageWriteError
	return errors.As(err, &we)
}

// IsReadError reports whether err is or wraps a *StorageReadError.
func IsReadError(err error) bool {
	var re *StorageReadError
	return errors.As(err, &re)
}
