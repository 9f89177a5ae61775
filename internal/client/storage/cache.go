package storage

import (
	"context"
	"encoding/json"
	"time"
)

// CacheStorage defines the durable read-cache: one snapshot per entity
// kind, replaced wholesale on every successful collection fetch. A reader
// always observes either the old snapshot in full or the new one in full.
type CacheStorage interface {
	// ReplaceCollection atomically discards the current snapshot for kind
	// and stores items in their given order, stamping the fetch time.
	ReplaceCollection(ctx context.Context, kind EntityKind, items []json.RawMessage) error

	// Collection returns the cached snapshot in its stored order.
	// Returns ErrNotCached if no snapshot has ever been stored.
	Collection(ctx context.Context, kind EntityKind) ([]json.RawMessage, error)

	// FetchedAt returns the time the current snapshot was stored.
	// Returns ErrNotCached if no snapshot exists.
	FetchedAt(ctx context.Context, kind EntityKind) (time.Time, error)

	// GetRecord returns the cached record with the given id.
	// Returns ErrRecordNotFound if the snapshot has no such record.
	GetRecord(ctx context.Context, kind EntityKind, id string) (json.RawMessage, error)

	// InsertRecord appends a record to the snapshot (optimistic local
	// create while offline).
	InsertRecord(ctx context.Context, kind EntityKind, item json.RawMessage) error

	// UpdateRecord replaces the record currently stored under id. The new
	// item may carry a different id; reconciliation uses this to swap a
	// temporary id for the server-assigned one.
	UpdateRecord(ctx context.Context, kind EntityKind, id string, item json.RawMessage) error

	// DeleteRecord removes a record from the snapshot.
	DeleteRecord(ctx context.Context, kind EntityKind, id string) error
}
