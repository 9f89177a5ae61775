// Package gateway is the interception layer every data request goes
// through. Reads try the network and fall back to the cached snapshot;
// mutations that cannot reach the server are captured into the durable
// queue and answered with an optimistic record, so the caller never
// sees a transport failure for a capturable write.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	clientapi "github.com/fourone/pos/internal/client/api"
	"github.com/fourone/pos/internal/client/cache"
	"github.com/fourone/pos/internal/client/storage"
	"github.com/fourone/pos/internal/client/sync"
	"github.com/fourone/pos/internal/models"
)

// Source tells the caller where a result came from.
type Source string

const (
	// SourceServer means the server handled the request.
	SourceServer Source = "server"
	// SourceCache means the network was unavailable and the cached
	// snapshot answered the read.
	SourceCache Source = "cache"
	// SourceQueue means the mutation was captured for later replay and
	// the payload is the optimistic local record.
	SourceQueue Source = "queue"
)

// Result is a served request outcome. CorrelationID is set only for
// queued mutations and identifies the captured operation.
type Result struct {
	Source        Source
	Payload       json.RawMessage
	CorrelationID string

	// SnapshotSkipped reports that a queued mutation could not be
	// mirrored into the local snapshot. The write intent is durable
	// and will replay, but local reads will not show it until sync
	// confirms it.
	SnapshotSkipped bool
}

// Requester is the slice of the API client the gateway forwards
// requests through.
type Requester interface {
	Get(ctx context.Context, endpoint string) (json.RawMessage, error)
	Post(ctx context.Context, endpoint string, body json.RawMessage) (json.RawMessage, error)
	Put(ctx context.Context, endpoint string, body json.RawMessage) (json.RawMessage, error)
	Delete(ctx context.Context, endpoint string) error
}

// Cache is the read-cache as the gateway sees it.
type Cache interface {
	RecordRead(ctx context.Context, endpoint string, payload json.RawMessage) error
	Cached(ctx context.Context, endpoint string) (json.RawMessage, error)
	InsertLocalRecord(ctx context.Context, kind storage.EntityKind, record json.RawMessage) error
	UpdateLocalRecord(ctx context.Context, kind storage.EntityKind, id string, record json.RawMessage) error
	DeleteLocalRecord(ctx context.Context, kind storage.EntityKind, id string) error
}

// Enqueuer captures write intents for later replay.
type Enqueuer interface {
	Enqueue(ctx context.Context, kind storage.OperationKind, entity storage.EntityKind, targetID string, payload json.RawMessage) (string, error)
}

// Gateway routes reads and writes between the network, the cache and
// the write-intent queue.
type Gateway struct {
	client   Requester
	cache    Cache
	queue    Enqueuer
	notifier *sync.Notifier
	online   func() bool
	logger   *slog.Logger
}

// New creates a gateway. online reports current connectivity; when it
// returns false the network is not attempted at all.
func New(
	client Requester,
	cacheManager Cache,
	enqueuer Enqueuer,
	notifier *sync.Notifier,
	online func() bool,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		client:   client,
		cache:    cacheManager,
		queue:    enqueuer,
		notifier: notifier,
		online:   online,
		logger:   logger,
	}
}

// Get serves a read. A reachable server always wins and refreshes the
// cached snapshot; a transport failure falls back to the snapshot. A
// server that answered with an error status is passed through: the
// network works, the request is just wrong.
func (g *Gateway) Get(ctx context.Context, endpoint string) (Result, error) {
	if g.online() {
		payload, err := g.client.Get(ctx, endpoint)
		if err == nil {
			if cacheErr := g.cache.RecordRead(ctx, endpoint, payload); cacheErr != nil {
				g.logger.Warn("failed to cache response", "endpoint", endpoint, "error", cacheErr)
			}
			return Result{Source: SourceServer, Payload: payload}, nil
		}

		if !clientapi.IsTransportFailure(err) {
			return Result{}, err
		}

		g.logger.Debug("network unreachable, serving read from cache", "endpoint", endpoint)
	}

	payload, err := g.cache.Cached(ctx, endpoint)
	if err != nil {
		return Result{}, fmt.Errorf("endpoint unavailable offline: %w", err)
	}

	return Result{Source: SourceCache, Payload: payload}, nil
}

// Create serves a record creation. When the server is unreachable the
// record is stored locally under a temporary offline id, flagged as
// awaiting sync, and the matching create intent is queued.
func (g *Gateway) Create(ctx context.Context, endpoint string, body json.RawMessage) (Result, error) {
	kind, ok := cache.KindForEndpoint(endpoint)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", cache.ErrUnknownEndpoint, endpoint)
	}

	if g.online() {
		resp, err := g.client.Post(ctx, endpoint, body)
		if err == nil {
			return Result{Source: SourceServer, Payload: resp}, nil
		}
		if !clientapi.IsTransportFailure(err) {
			return Result{}, err
		}
	}

	optimistic, err := g.optimisticRecord(body, models.NewOfflineID())
	if err != nil {
		return Result{}, err
	}

	return g.capture(ctx, storage.OpCreate, kind, optimistic)
}

// Update serves a record update, captured like Create when the server
// is unreachable.
func (g *Gateway) Update(ctx context.Context, endpoint, id string, body json.RawMessage) (Result, error) {
	kind, ok := cache.KindForEndpoint(endpoint)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", cache.ErrUnknownEndpoint, endpoint)
	}

	if g.online() {
		resp, err := g.client.Put(ctx, endpoint+"/"+id, body)
		if err == nil {
			return Result{Source: SourceServer, Payload: resp}, nil
		}
		if !clientapi.IsTransportFailure(err) {
			return Result{}, err
		}
	}

	optimistic, err := g.optimisticRecord(body, id)
	if err != nil {
		return Result{}, err
	}

	return g.capture(ctx, storage.OpUpdate, kind, optimistic)
}

// Delete serves a record deletion. Captured deletes remove the record
// from the snapshot immediately.
func (g *Gateway) Delete(ctx context.Context, endpoint, id string) (Result, error) {
	kind, ok := cache.KindForEndpoint(endpoint)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", cache.ErrUnknownEndpoint, endpoint)
	}

	if g.online() {
		err := g.client.Delete(ctx, endpoint+"/"+id)
		if err == nil {
			return Result{Source: SourceServer}, nil
		}
		if !clientapi.IsTransportFailure(err) {
			return Result{}, err
		}
	}

	if err := g.cache.DeleteLocalRecord(ctx, kind, id); err != nil {
		return Result{}, err
	}

	correlationID, err := g.queue.Enqueue(ctx, storage.OpDelete, kind, id, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to capture delete: %w", err)
	}

	g.publishQueued(correlationID, storage.OpDelete, kind)

	return Result{Source: SourceQueue, CorrelationID: correlationID}, nil
}

// optimisticRecord stamps the payload with the record id and the
// awaiting-sync flag.
func (g *Gateway) optimisticRecord(body json.RawMessage, id string) (json.RawMessage, error) {
	record, err := models.WithID(body, id)
	if err != nil {
		return nil, fmt.Errorf("failed to build optimistic record: %w", err)
	}
	record, err = models.MarkPending(record)
	if err != nil {
		return nil, fmt.Errorf("failed to build optimistic record: %w", err)
	}
	return record, nil
}

// capture stores the optimistic record in the snapshot and queues the
// write intent. Queue durability decides success: a record that made it
// into the queue survives restarts even if the snapshot write failed,
// and a skipped snapshot write is flagged on the result.
func (g *Gateway) capture(ctx context.Context, opKind storage.OperationKind, kind storage.EntityKind, optimistic json.RawMessage) (Result, error) {
	targetID, err := models.RecordID(optimistic)
	if err != nil {
		return Result{}, err
	}

	correlationID, err := g.queue.Enqueue(ctx, opKind, kind, targetID, optimistic)
	if err != nil {
		return Result{}, fmt.Errorf("failed to capture %s: %w", opKind, err)
	}

	switch opKind {
	case storage.OpCreate:
		err = g.cache.InsertLocalRecord(ctx, kind, optimistic)
	case storage.OpUpdate:
		err = g.cache.UpdateLocalRecord(ctx, kind, targetID, optimistic)
	}
	snapshotSkipped := err != nil
	if snapshotSkipped {
		g.logger.Warn("captured operation but snapshot update failed",
			"kind", kind, "target_id", targetID, "error", err)
	}

	g.publishQueued(correlationID, opKind, kind)

	return Result{
		Source:          SourceQueue,
		Payload:         optimistic,
		CorrelationID:   correlationID,
		SnapshotSkipped: snapshotSkipped,
	}, nil
}

func (g *Gateway) publishQueued(correlationID string, opKind storage.OperationKind, kind storage.EntityKind) {
	g.notifier.Publish(sync.Event{
		Type:          sync.EventQueued,
		CorrelationID: correlationID,
		Entity:        kind,
		Kind:          opKind,
	})
}
