package storage

import "errors"

// Common client storage errors
var (
	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")

	// ErrNotCached indicates that no snapshot exists for the collection
	ErrNotCached = errors.New("collection not cached")

	// ErrRecordNotFound indicates that a cached record was not found
	ErrRecordNotFound = errors.New("cached record not found")

	// ErrOperationNotFound indicates that a pending operation was not found
	ErrOperationNotFound = errors.New("pending operation not found")

	// ErrSettingNotFound indicates that a settings key has no value
	ErrSettingNotFound = errors.New("setting not found")
)
