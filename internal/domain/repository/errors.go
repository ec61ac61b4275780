package repository

import "errors"

// Storage-level failures returned by repository implementations
var (
	// ErrNotFound means the record does not exist or is not owned by the caller
	ErrNotFound = errors.New("record not found")
	// ErrImmutable means the record is finalized and can no longer change
	ErrImmutable = errors.New("record is finalized")
	// ErrDuplicateKey means a unique constraint was violated
	ErrDuplicateKey = errors.New("duplicate key")
)
