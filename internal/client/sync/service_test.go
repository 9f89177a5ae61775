package sync

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourone/pos/internal/client/cache"
	"github.com/fourone/pos/internal/client/queue"
	"github.com/fourone/pos/internal/client/storage"
	"github.com/fourone/pos/internal/client/storage/boltdb"
)

var errNetworkDown = errors.New("connection refused")

type testEngine struct {
	service   *Service
	transport *TransportMock
	queue     *queue.Service
	cache     *cache.Manager
	notifier  *Notifier
}

func newTestEngine(t *testing.T, opts ...Option) *testEngine {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "pos-client.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	transport := &TransportMock{}
	queueService := queue.NewService(store, logger)
	cacheManager := cache.NewManager(store, logger)
	notifier := NewNotifier()

	return &testEngine{
		service:   NewService(transport, queueService, cacheManager, notifier, func() bool { return true }, logger, opts...),
		transport: transport,
		queue:     queueService,
		cache:     cacheManager,
		notifier:  notifier,
	}
}

func TestProcessPendingOperations_ReplaysOldestFirstAndDrops(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.queue.Enqueue(ctx, storage.OpCreate, storage.KindSales,
		"offline_sale1", json.RawMessage(`{"id":"offline_sale1","total":11800,"pending_sync":true}`))
	require.NoError(t, err)
	_, err = engine.queue.Enqueue(ctx, storage.OpUpdate, storage.KindTables,
		"table-1", json.RawMessage(`{"id":"table-1","status":"occupied"}`))
	require.NoError(t, err)
	_, err = engine.queue.Enqueue(ctx, storage.OpDelete, storage.KindProducts, "prod-9", nil)
	require.NoError(t, err)

	engine.transport.PostFunc = func(_ context.Context, _ string, _ json.RawMessage) (json.RawMessage, error) {
		return json.RawMessage(`{"id":"sale-srv-1","total":11800}`), nil
	}
	engine.transport.PutFunc = func(_ context.Context, _ string, body json.RawMessage) (json.RawMessage, error) {
		return body, nil
	}
	engine.transport.DeleteFunc = func(_ context.Context, _ string) error {
		return nil
	}

	result, err := engine.service.ProcessPendingOperations(ctx)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 3, result.Succeeded)

	require.Len(t, engine.transport.PostCalls(), 1)
	assert.Equal(t, "/api/sales", engine.transport.PostCalls()[0].Endpoint)
	require.Len(t, engine.transport.PutCalls(), 1)
	assert.Equal(t, "/api/tables/table-1", engine.transport.PutCalls()[0].Endpoint)
	require.Len(t, engine.transport.DeleteCalls(), 1)
	assert.Equal(t, "/api/products/prod-9", engine.transport.DeleteCalls()[0].Endpoint)

	// The replayed create must not carry the client-side pending flag.
	assert.NotContains(t, string(engine.transport.PostCalls()[0].Body), "pending_sync")

	count, err := engine.service.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	// A second cycle finds nothing to replay: confirmed operations are
	// gone for good, never delivered twice.
	result, err = engine.service.ProcessPendingOperations(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Outcomes)
	assert.Len(t, engine.transport.PostCalls(), 1)
}

func TestProcessPendingOperations_ReconcilesServerAssignedID(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	optimistic := json.RawMessage(`{"id":"offline_sale1","total":11800,"pending_sync":true}`)
	require.NoError(t, engine.cache.InsertLocalRecord(ctx, storage.KindSales, optimistic))

	_, err := engine.queue.Enqueue(ctx, storage.OpCreate, storage.KindSales, "offline_sale1", optimistic)
	require.NoError(t, err)
	_, err = engine.queue.Enqueue(ctx, storage.OpUpdate, storage.KindSales,
		"offline_sale1", json.RawMessage(`{"id":"offline_sale1","status":"cancelled"}`))
	require.NoError(t, err)

	engine.transport.PostFunc = func(_ context.Context, _ string, _ json.RawMessage) (json.RawMessage, error) {
		return json.RawMessage(`{"id":"sale-srv-1","total":11800}`), nil
	}
	engine.transport.PutFunc = func(_ context.Context, _ string, body json.RawMessage) (json.RawMessage, error) {
		return body, nil
	}

	result, err := engine.service.ProcessPendingOperations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)

	// The follow-up update must target the server-assigned id, not the
	// temporary offline one.
	require.Len(t, engine.transport.PutCalls(), 1)
	assert.Equal(t, "/api/sales/sale-srv-1", engine.transport.PutCalls()[0].Endpoint)

	// The cached record now carries the server id and no pending flag.
	payload, err := engine.cache.Cached(ctx, "/api/sales")
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"sale-srv-1"`)
	assert.NotContains(t, string(payload), "offline_sale1")
	assert.NotContains(t, string(payload), "pending_sync")
}

func TestProcessPendingOperations_SecondTriggerWhileDrainingIsNoOp(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.queue.Enqueue(ctx, storage.OpCreate, storage.KindSales,
		"offline_sale1", json.RawMessage(`{"id":"offline_sale1"}`))
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	engine.transport.PostFunc = func(_ context.Context, _ string, _ json.RawMessage) (json.RawMessage, error) {
		close(started)
		<-release
		return json.RawMessage(`{"id":"sale-srv-1"}`), nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := engine.service.ProcessPendingOperations(ctx)
		assert.NoError(t, err)
	}()

	<-started
	result, err := engine.service.ProcessPendingOperations(ctx)
	require.NoError(t, err)
	assert.Nil(t, result)

	close(release)
	<-done

	assert.Len(t, engine.transport.PostCalls(), 1)
}

func TestProcessPendingOperations_PublishesLifecycleEvents(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	var events []Event
	unregister := engine.notifier.Register(func(event Event) {
		events = append(events, event)
	})

	_, err := engine.queue.Enqueue(ctx, storage.OpCreate, storage.KindSales,
		"offline_sale1", json.RawMessage(`{"id":"offline_sale1"}`))
	require.NoError(t, err)

	engine.transport.PostFunc = func(_ context.Context, _ string, _ json.RawMessage) (json.RawMessage, error) {
		return nil, errNetworkDown
	}

	// Three failed cycles exhaust the operation's automatic attempts.
	for i := 0; i < 3; i++ {
		_, err := engine.service.ProcessPendingOperations(ctx)
		require.NoError(t, err)
	}

	require.Len(t, events, 3)
	assert.Equal(t, EventRetried, events[0].Type)
	assert.Equal(t, EventRetried, events[1].Type)
	assert.Equal(t, EventExhausted, events[2].Type)
	assert.Equal(t, storage.KindSales, events[2].Entity)
	assert.ErrorIs(t, events[2].Err, errNetworkDown)

	unregister()
	_, err = engine.service.ProcessPendingOperations(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

// Once an operation ran out of attempts its exhausted event has fired;
// later cycles keep reporting it in the drain result without spamming
// observers on every tick.
func TestProcessPendingOperations_ExhaustedEventFiresOnce(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	var exhausted int
	engine.notifier.Register(func(event Event) {
		if event.Type == EventExhausted {
			exhausted++
		}
	})

	_, err := engine.queue.Enqueue(ctx, storage.OpCreate, storage.KindSales,
		"offline_sale1", json.RawMessage(`{"id":"offline_sale1"}`))
	require.NoError(t, err)

	engine.transport.PostFunc = func(_ context.Context, _ string, _ json.RawMessage) (json.RawMessage, error) {
		return nil, errNetworkDown
	}

	for i := 0; i < 5; i++ {
		_, err := engine.service.ProcessPendingOperations(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, exhausted)

	// The operation itself is still queued and still reported.
	result, err := engine.service.ProcessPendingOperations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Exhausted)

	count, err := engine.service.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestProcessPendingOperations_SyncedEventCarriesCorrelationID(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	var events []Event
	engine.notifier.Register(func(event Event) {
		events = append(events, event)
	})

	correlationID, err := engine.queue.Enqueue(ctx, storage.OpDelete, storage.KindCustomers, "cust-1", nil)
	require.NoError(t, err)

	engine.transport.DeleteFunc = func(_ context.Context, _ string) error {
		return nil
	}

	_, err = engine.service.ProcessPendingOperations(ctx)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, EventSynced, events[0].Type)
	assert.Equal(t, correlationID, events[0].CorrelationID)
}

func TestRun_DrainsPeriodicallyWhileOnline(t *testing.T) {
	engine := newTestEngine(t, WithSyncInterval(20*time.Millisecond))
	ctx := context.Background()

	_, err := engine.queue.Enqueue(ctx, storage.OpDelete, storage.KindProducts, "prod-1", nil)
	require.NoError(t, err)

	engine.transport.DeleteFunc = func(_ context.Context, _ string) error {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		engine.service.Run(runCtx)
	}()

	assert.Eventually(t, func() bool {
		count, err := engine.service.PendingCount(ctx)
		return err == nil && count == 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestRun_SkipsDrainWhileOffline(t *testing.T) {
	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "pos-client.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	transport := &TransportMock{}
	queueService := queue.NewService(store, logger)
	service := NewService(transport, queueService, cache.NewManager(store, logger), NewNotifier(),
		func() bool { return false }, logger, WithSyncInterval(10*time.Millisecond))

	ctx := context.Background()
	_, err = queueService.Enqueue(ctx, storage.OpDelete, storage.KindProducts, "prod-1", nil)
	require.NoError(t, err)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		service.Run(runCtx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	// Offline the whole time: nothing was replayed.
	assert.Empty(t, transport.DeleteCalls())
	count, err := queueService.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
