// Package queue implements the write-intent queue: a durable FIFO of
// mutating operations captured while the network was down, drained in
// creation order once connectivity returns.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fourone/pos/internal/client/storage"
	"github.com/fourone/pos/internal/models"
)

// Applier delivers one pending operation to the server and returns the
// response payload on success.
type Applier func(ctx context.Context, op *storage.PendingOperation) (json.RawMessage, error)

// SuccessFunc is invoked right after a confirmed delivery, once the
// operation is already removed from the queue. It returns the
// server-assigned id when a CREATE's temporary target id was
// reconciled, or "" when nothing changed.
type SuccessFunc func(ctx context.Context, op *storage.PendingOperation, resp json.RawMessage) (newTargetID string)

// OutcomeStatus classifies what happened to one operation in a drain.
type OutcomeStatus string

const (
	// OutcomeSynced means the server confirmed the operation.
	OutcomeSynced OutcomeStatus = "synced"
	// OutcomeRetried means delivery failed and the retry count grew.
	OutcomeRetried OutcomeStatus = "retried"
	// OutcomeExhausted means the operation is out of automatic attempts
	// and stays queued awaiting operator attention.
	OutcomeExhausted OutcomeStatus = "exhausted"
	// OutcomeBlocked means an earlier operation for the same entity
	// failed in this drain, so this one was not attempted at all.
	OutcomeBlocked OutcomeStatus = "blocked"
)

// OperationOutcome is the per-operation result of one drain cycle.
type OperationOutcome struct {
	Op       *storage.PendingOperation
	Response json.RawMessage
	Err      error
	Status   OutcomeStatus
}

// DrainResult summarizes one drain cycle.
type DrainResult struct {
	Outcomes  []OperationOutcome
	Succeeded int
	Retried   int
	Exhausted int
	Blocked   int
}

// Service is the write-intent queue.
type Service struct {
	store  storage.QueueStorage
	logger *slog.Logger
}

// NewService creates a new queue service.
func NewService(store storage.QueueStorage, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Enqueue durably records a mutating operation and returns its
// correlation id. The operation is persisted before Enqueue returns;
// the optimistic response handed to the UI depends on that.
func (s *Service) Enqueue(ctx context.Context, kind storage.OperationKind, entity storage.EntityKind, targetID string, payload json.RawMessage) (string, error) {
	op := &storage.PendingOperation{
		CreatedAt:     time.Now().UTC(),
		CorrelationID: uuid.New().String(),
		Kind:          kind,
		Entity:        entity,
		TargetID:      targetID,
		Payload:       payload,
		MaxRetries:    storage.DefaultMaxRetries,
	}

	if err := s.store.AppendOperation(ctx, op); err != nil {
		return "", fmt.Errorf("failed to enqueue operation: %w", err)
	}

	s.logger.Info("queued operation",
		"correlation_id", op.CorrelationID,
		"kind", op.Kind,
		"entity", op.Entity,
		"target_id", op.TargetID)

	return op.CorrelationID, nil
}

// Drain attempts every pending operation once, oldest first.
//
// A confirmed delivery removes the operation before anything else
// happens, so a crash right after cannot cause a duplicate replay. A
// failure increments the retry count and blocks every later operation
// targeting the same entity instance for the rest of this drain, which
// keeps CREATE-before-UPDATE order per entity. Operations out of
// attempts are reported, never attempted, never dropped — and they
// block their target the same way a failure does, so their successors
// stay unsent until the stuck operation is purged.
func (s *Service) Drain(ctx context.Context, apply Applier, onSuccess SuccessFunc) (DrainResult, error) {
	var result DrainResult

	ops, err := s.store.ListOperations(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list pending operations: %w", err)
	}

	blocked := make(map[string]bool)

	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if op.Exhausted() {
			result.Exhausted++
			result.Outcomes = append(result.Outcomes, OperationOutcome{Op: op, Status: OutcomeExhausted})
			// An unconfirmed operation blocks its successors the same
			// way a failed one does: a CREATE stuck out of attempts
			// must not let the UPDATE behind it reach the server first.
			if op.TargetID != "" {
				blocked[op.TargetID] = true
			}
			continue
		}

		if op.TargetID != "" && blocked[op.TargetID] {
			result.Blocked++
			result.Outcomes = append(result.Outcomes, OperationOutcome{Op: op, Status: OutcomeBlocked})
			continue
		}

		resp, applyErr := apply(ctx, op)
		if applyErr != nil {
			op.Retries++
			if err := s.store.UpdateOperation(ctx, op); err != nil {
				return result, fmt.Errorf("failed to record retry: %w", err)
			}

			if op.TargetID != "" {
				blocked[op.TargetID] = true
			}

			status := OutcomeRetried
			result.Retried++
			if op.Exhausted() {
				status = OutcomeExhausted
				result.Retried--
				result.Exhausted++
				s.logger.Warn("operation exhausted its retries",
					"correlation_id", op.CorrelationID,
					"entity", op.Entity,
					"retries", op.Retries)
			}
			result.Outcomes = append(result.Outcomes, OperationOutcome{Op: op, Err: applyErr, Status: status})
			continue
		}

		// Confirmed by the server: remove before doing anything else.
		if err := s.store.RemoveOperation(ctx, op.Seq); err != nil {
			return result, fmt.Errorf("failed to remove confirmed operation: %w", err)
		}

		result.Succeeded++
		result.Outcomes = append(result.Outcomes, OperationOutcome{Op: op, Response: resp, Status: OutcomeSynced})

		if onSuccess == nil {
			continue
		}

		if newID := onSuccess(ctx, op, resp); newID != "" && newID != op.TargetID {
			if err := s.remapTarget(ctx, ops[i+1:], op.TargetID, newID); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

// remapTarget rewrites the remaining queued operations that still
// reference a reconciled temporary id, both in the store and in the
// in-memory slice the current drain is iterating.
func (s *Service) remapTarget(ctx context.Context, rest []*storage.PendingOperation, oldID, newID string) error {
	for _, op := range rest {
		if op.TargetID != oldID {
			continue
		}

		op.TargetID = newID

		if op.Payload != nil {
			payloadID, err := models.RecordID(op.Payload)
			if err == nil && payloadID == oldID {
				rewritten, err := models.WithID(op.Payload, newID)
				if err != nil {
					return fmt.Errorf("failed to rewrite payload id: %w", err)
				}
				op.Payload = rewritten
			}
		}

		if err := s.store.UpdateOperation(ctx, op); err != nil {
			return fmt.Errorf("failed to remap queued operation: %w", err)
		}

		s.logger.Debug("remapped queued operation",
			"correlation_id", op.CorrelationID,
			"old_target", oldID,
			"new_target", newID)
	}

	return nil
}

// PeekAll returns the pending operations in creation order without
// touching them.
func (s *Service) PeekAll(ctx context.Context) ([]*storage.PendingOperation, error) {
	return s.store.ListOperations(ctx)
}

// Count returns the number of pending operations.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.CountOperations(ctx)
}

// Purge removes one operation by correlation id. This is the explicit
// administrative escape hatch for exhausted operations; the drain never
// discards anything on its own.
func (s *Service) Purge(ctx context.Context, correlationID string) error {
	ops, err := s.store.ListOperations(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending operations: %w", err)
	}

	for _, op := range ops {
		if op.CorrelationID == correlationID {
			if err := s.store.RemoveOperation(ctx, op.Seq); err != nil {
				return fmt.Errorf("failed to purge operation: %w", err)
			}
			s.logger.Info("purged operation", "correlation_id", correlationID)
			return nil
		}
	}

	return storage.ErrOperationNotFound
}
