package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound    = errors.New("player not found")
	ErrDuplicateNickname = errors.New("nickname is already in use")

	// Validation errors
	ErrInvalidArgument = errors.New("invalid argument")

	// Storage errors
	ErrStorage = errors.New("storage error")
)

// StorageError reports a failed load or save against a persistence provider.
// It matches ErrStorage under errors.Is and unwraps to the provider's error.
type StorageError struct {
	Op  string // "load" or "save"
	Err error
}

// NewStorageError wraps err as a StorageError for the given operation
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStorage) match any StorageError
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
