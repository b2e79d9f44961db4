package store

import (
	"errors"
	"fmt"
)

// ErrUnavailable matches every StorageError via errors.Is.
var ErrUnavailable = errors.New("storage unavailable")

// StorageError wraps a failure of the underlying database.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is reports ErrUnavailable so callers need not know the concrete type.
func (e *StorageError) Is(target error) bool {
	return target == ErrUnavailable
}
