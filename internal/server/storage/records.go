package storage

import (
	"context"
	"encoding/json"
)

// RecordStorage defines the interface for entity record persistence.
// Records are stored as raw JSON keyed by (kind, id); the handlers own
// the schema of each kind.
type RecordStorage interface {
	// SaveRecord inserts or replaces a record.
	SaveRecord(ctx context.Context, kind, id string, data json.RawMessage) error

	// GetRecord retrieves a single record.
	// Returns ErrRecordNotFound if it doesn't exist.
	GetRecord(ctx context.Context, kind, id string) (json.RawMessage, error)

	// ListRecords retrieves all records of a kind in insertion order.
	// Returns an empty slice if none exist.
	ListRecords(ctx context.Context, kind string) ([]json.RawMessage, error)

	// DeleteRecord removes a record.
	// Returns ErrRecordNotFound if it doesn't exist.
	DeleteRecord(ctx context.Context, kind, id string) error
}
