package storage

import (
	"context"
	"encoding/json"
	"time"
)

// OperationKind names the mutation a pending operation will replay.
type OperationKind string

const (
	OpCreate OperationKind = "CREATE"
	OpUpdate OperationKind = "UPDATE"
	OpDelete OperationKind = "DELETE"
)

// DefaultMaxRetries bounds automatic replay attempts per operation.
const DefaultMaxRetries = 3

// PendingOperation is one durably queued mutating request awaiting
// confirmation from the server. Created atomically with the optimistic
// local mutation; mutated only by the sync processor.
type PendingOperation struct {
	CreatedAt     time.Time       `json:"created_at"`
	CorrelationID string          `json:"correlation_id"`
	Kind          OperationKind   `json:"kind"`
	Entity        EntityKind      `json:"entity"`
	TargetID      string          `json:"target_id"`
	Payload       json.RawMessage `json:"payload,omitempty"`
	Seq           uint64          `json:"seq"`
	Retries       int             `json:"retries"`
	MaxRetries    int             `json:"max_retries"`
}

// Exhausted reports whether the operation has used up its automatic
// replay attempts. Exhausted operations stay queued until purged.
func (op *PendingOperation) Exhausted() bool {
	return op.Retries >= op.MaxRetries
}

// QueueStorage defines the durable FIFO queue of pending operations.
// Append assigns a monotonic sequence number; listing returns creation
// order.
type QueueStorage interface {
	// AppendOperation persists op before returning and fills op.Seq.
	AppendOperation(ctx context.Context, op *PendingOperation) error

	// ListOperations returns all pending operations, oldest first.
	ListOperations(ctx context.Context) ([]*PendingOperation, error)

	// UpdateOperation rewrites an operation in place (retry counts,
	// reconciled target ids). Returns ErrOperationNotFound if op.Seq is
	// not queued.
	UpdateOperation(ctx context.Context, op *PendingOperation) error

	// RemoveOperation deletes the operation with the given sequence
	// number. Returns ErrOperationNotFound if absent.
	RemoveOperation(ctx context.Context, seq uint64) error

	// CountOperations returns the number of queued operations.
	CountOperations(ctx context.Context) (int, error)
}
