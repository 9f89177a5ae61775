package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourone/pos/internal/client/storage"
)

func testOperation(entity storage.EntityKind, kind storage.OperationKind, targetID string) *storage.PendingOperation {
	return &storage.PendingOperation{
		CreatedAt:     time.Now().UTC(),
		CorrelationID: uuid.New().String(),
		Kind:          kind,
		Entity:        entity,
		TargetID:      targetID,
		Payload:       json.RawMessage(fmt.Sprintf(`{"id":%q}`, targetID)),
		MaxRetries:    storage.DefaultMaxRetries,
	}
}

func TestAppendOperation_AssignsSequence(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	first := testOperation(storage.KindSales, storage.OpCreate, "offline_1")
	second := testOperation(storage.KindTables, storage.OpUpdate, "t1")

	require.NoError(t, store.AppendOperation(ctx, first))
	require.NoError(t, store.AppendOperation(ctx, second))

	assert.NotZero(t, first.Seq)
	assert.Greater(t, second.Seq, first.Seq)
}

func TestListOperations_CreationOrder(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	var want []string
	for i := 0; i < 10; i++ {
		op := testOperation(storage.KindSales, storage.OpCreate, fmt.Sprintf("offline_%d", i))
		require.NoError(t, store.AppendOperation(ctx, op))
		want = append(want, op.CorrelationID)
	}

	ops, err := store.ListOperations(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 10)

	for i, op := range ops {
		assert.Equal(t, want[i], op.CorrelationID)
	}
}

func TestListOperations_SurvivesReopen(t *testing.T) {
	dbPath := t.TempDir() + "/pos-client.db"
	ctx := context.Background()

	store, err := New(ctx, dbPath)
	require.NoError(t, err)

	op := testOperation(storage.KindSales, storage.OpCreate, "offline_1")
	require.NoError(t, store.AppendOperation(ctx, op))
	require.NoError(t, store.Close())

	// The queue is durable across restarts.
	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, reopened.Close())
	}()

	ops, err := reopened.ListOperations(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, op.CorrelationID, ops[0].CorrelationID)
	assert.Equal(t, op.Seq, ops[0].Seq)
}

func TestUpdateOperation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	op := testOperation(storage.KindSales, storage.OpCreate, "offline_1")
	require.NoError(t, store.AppendOperation(ctx, op))

	op.Retries = 2
	op.TargetID = "s1"
	require.NoError(t, store.UpdateOperation(ctx, op))

	ops, err := store.ListOperations(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, 2, ops[0].Retries)
	assert.Equal(t, "s1", ops[0].TargetID)

	missing := testOperation(storage.KindSales, storage.OpCreate, "x")
	missing.Seq = 999
	assert.ErrorIs(t, store.UpdateOperation(ctx, missing), storage.ErrOperationNotFound)
}

func TestRemoveOperation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	op := testOperation(storage.KindSales, storage.OpCreate, "offline_1")
	require.NoError(t, store.AppendOperation(ctx, op))

	count, err := store.CountOperations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, store.RemoveOperation(ctx, op.Seq))

	count, err = store.CountOperations(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, store.RemoveOperation(ctx, op.Seq), storage.ErrOperationNotFound)
}

func TestPendingOperation_Exhausted(t *testing.T) {
	op := testOperation(storage.KindSales, storage.OpCreate, "offline_1")
	assert.False(t, op.Exhausted())

	op.Retries = storage.DefaultMaxRetries
	assert.True(t, op.Exhausted())
}
