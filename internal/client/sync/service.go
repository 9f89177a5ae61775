// Package sync replays the durable write-intent queue against the
// server once connectivity returns, reconciles optimistic records with
// server-assigned ids and surfaces lifecycle events to observers.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fourone/pos/internal/client/cache"
	"github.com/fourone/pos/internal/client/queue"
	"github.com/fourone/pos/internal/client/storage"
	"github.com/fourone/pos/internal/models"
)

//go:generate moq -out transport_mock.go . Transport

// Transport is the slice of the API client the sync engine replays
// operations through.
type Transport interface {
	Post(ctx context.Context, endpoint string, body json.RawMessage) (json.RawMessage, error)
	Put(ctx context.Context, endpoint string, body json.RawMessage) (json.RawMessage, error)
	Delete(ctx context.Context, endpoint string) error
}

// Drainer is the write-intent queue as the sync engine sees it.
type Drainer interface {
	Drain(ctx context.Context, apply queue.Applier, onSuccess queue.SuccessFunc) (queue.DrainResult, error)
	Count(ctx context.Context) (int, error)
}

// Reconciler swaps optimistic cache records for their server-confirmed
// counterparts.
type Reconciler interface {
	ReconcileCreate(ctx context.Context, kind storage.EntityKind, tempID string, serverRecord json.RawMessage) error
	UpdateLocalRecord(ctx context.Context, kind storage.EntityKind, id string, record json.RawMessage) error
}

// DefaultSyncInterval is how often Run drains the queue while online.
const DefaultSyncInterval = 60 * time.Second

// Option configures the sync service.
type Option func(*Service)

// WithSyncInterval overrides the periodic drain interval used by Run.
func WithSyncInterval(interval time.Duration) Option {
	return func(s *Service) {
		s.interval = interval
	}
}

// Service is the sync engine. One drain runs at a time: a trigger that
// arrives while a drain is in flight is dropped, not queued, because the
// running drain already covers every operation the trigger was for.
type Service struct {
	transport Transport
	queue     Drainer
	cache     Reconciler
	notifier  *Notifier
	online    func() bool
	logger    *slog.Logger
	interval  time.Duration
	draining  atomic.Bool
}

// NewService creates a sync engine. online reports current connectivity
// and gates the periodic drain.
func NewService(
	transport Transport,
	drainer Drainer,
	reconciler Reconciler,
	notifier *Notifier,
	online func() bool,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		transport: transport,
		queue:     drainer,
		cache:     reconciler,
		notifier:  notifier,
		online:    online,
		logger:    logger,
		interval:  DefaultSyncInterval,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ProcessPendingOperations drains the queue once, oldest first. Calling
// it while a drain is already running is a no-op returning a nil result.
func (s *Service) ProcessPendingOperations(ctx context.Context) (*queue.DrainResult, error) {
	if !s.draining.CompareAndSwap(false, true) {
		s.logger.Debug("sync already in progress, skipping trigger")
		return nil, nil
	}
	defer s.draining.Store(false)

	result, err := s.queue.Drain(ctx, s.apply, s.confirm)
	for _, outcome := range result.Outcomes {
		s.publishOutcome(outcome)
	}
	if err != nil {
		return &result, fmt.Errorf("failed to drain pending operations: %w", err)
	}

	if len(result.Outcomes) > 0 {
		s.logger.Info("sync cycle finished",
			"synced", result.Succeeded,
			"retried", result.Retried,
			"exhausted", result.Exhausted,
			"blocked", result.Blocked,
		)
	}

	return &result, nil
}

// PendingCount returns how many operations await replay.
func (s *Service) PendingCount(ctx context.Context) (int, error) {
	return s.queue.Count(ctx)
}

// Notifier exposes the event registry so callers can observe sync
// lifecycle events.
func (s *Service) Notifier() *Notifier {
	return s.notifier
}

// Run drains the queue on a fixed interval while online until ctx is
// cancelled. Connectivity-triggered drains go through
// ProcessPendingOperations directly.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.online() {
				continue
			}
			if _, err := s.ProcessPendingOperations(ctx); err != nil {
				s.logger.Error("periodic sync failed", "error", err)
			}
		}
	}
}

// apply replays one queued operation against the server.
func (s *Service) apply(ctx context.Context, op *storage.PendingOperation) (json.RawMessage, error) {
	endpoint, ok := cache.EndpointForKind(op.Entity)
	if !ok {
		return nil, fmt.Errorf("no endpoint for entity kind %q", op.Entity)
	}

	switch op.Kind {
	case storage.OpCreate:
		payload, err := models.ClearPending(op.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare create payload: %w", err)
		}
		return s.transport.Post(ctx, endpoint, payload)
	case storage.OpUpdate:
		payload, err := models.ClearPending(op.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare update payload: %w", err)
		}
		return s.transport.Put(ctx, endpoint+"/"+op.TargetID, payload)
	case storage.OpDelete:
		return nil, s.transport.Delete(ctx, endpoint+"/"+op.TargetID)
	default:
		return nil, fmt.Errorf("unknown operation kind %q", op.Kind)
	}
}

// confirm runs after the queue has dropped a confirmed operation. For a
// replayed CREATE it swaps the optimistic cache record for the server
// one and hands the server-assigned id back so the queue can rewrite
// later operations against the same entity.
func (s *Service) confirm(ctx context.Context, op *storage.PendingOperation, resp json.RawMessage) string {
	switch op.Kind {
	case storage.OpCreate:
		if !models.IsOfflineID(op.TargetID) || resp == nil {
			return ""
		}

		serverID, err := models.RecordID(resp)
		if err != nil || serverID == "" {
			s.logger.Warn("create confirmed but response carries no id",
				"entity", op.Entity, "temp_id", op.TargetID)
			return ""
		}

		if err := s.cache.ReconcileCreate(ctx, op.Entity, op.TargetID, resp); err != nil {
			s.logger.Warn("failed to reconcile confirmed create",
				"entity", op.Entity, "temp_id", op.TargetID, "error", err)
		}

		return serverID
	case storage.OpUpdate:
		if resp == nil {
			return ""
		}
		if err := s.cache.UpdateLocalRecord(ctx, op.Entity, op.TargetID, resp); err != nil {
			s.logger.Warn("failed to refresh cache after confirmed update",
				"entity", op.Entity, "id", op.TargetID, "error", err)
		}
		return ""
	default:
		return ""
	}
}

func (s *Service) publishOutcome(outcome queue.OperationOutcome) {
	event := Event{
		CorrelationID: outcome.Op.CorrelationID,
		Entity:        outcome.Op.Entity,
		Kind:          outcome.Op.Kind,
		Err:           outcome.Err,
	}

	switch outcome.Status {
	case queue.OutcomeSynced:
		event.Type = EventSynced
	case queue.OutcomeRetried:
		event.Type = EventRetried
	case queue.OutcomeExhausted:
		// An already-exhausted operation is re-reported in every drain
		// result, but the event fires once: on the attempt that used up
		// the last retry. Steady-state exhausted operations are visible
		// through PendingCount and the drain result instead.
		if outcome.Err == nil {
			return
		}
		event.Type = EventExhausted
	default:
		// Blocked operations were never attempted; nothing to report.
		return
	}

	s.notifier.Publish(event)
}
