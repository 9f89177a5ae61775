package sqlite

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourone/pos/internal/server/storage"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	store, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func TestCreateUser_AndGet(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	user := &storage.User{
		ID:           "u1",
		Username:     "cashier1",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		Role:         "cashier",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, store.CreateUser(ctx, user))

	got, err := store.GetUserByUsername(ctx, "cashier1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)
	assert.Nil(t, got.LastLogin)

	got, err = store.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "cashier1", got.Username)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	user := &storage.User{ID: "u1", Username: "admin", PasswordHash: "x", Role: "admin", CreatedAt: time.Now()}
	require.NoError(t, store.CreateUser(ctx, user))

	dup := &storage.User{ID: "u2", Username: "admin", PasswordHash: "y", Role: "admin", CreatedAt: time.Now()}
	err := store.CreateUser(ctx, dup)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestGetUser_NotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestCountUsers(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	count, err := store.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, store.CreateUser(ctx, &storage.User{
		ID: "u1", Username: "admin", PasswordHash: "x", Role: "admin", CreatedAt: time.Now(),
	}))

	count, err = store.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpdateLastLogin(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, &storage.User{
		ID: "u1", Username: "admin", PasswordHash: "x", Role: "admin", CreatedAt: time.Now(),
	}))

	loginAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.UpdateLastLogin(ctx, "u1", loginAt))

	got, err := store.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.True(t, got.LastLogin.Equal(loginAt))

	assert.ErrorIs(t, store.UpdateLastLogin(ctx, "ghost", loginAt), storage.ErrUserNotFound)
}

func TestRecords_CRUD(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, "products", "p1", json.RawMessage(`{"id":"p1","name":"Americano"}`)))
	require.NoError(t, store.SaveRecord(ctx, "products", "p2", json.RawMessage(`{"id":"p2","name":"Latte"}`)))

	got, err := store.GetRecord(ctx, "products", "p1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1","name":"Americano"}`, string(got))

	// Replace keeps the key, swaps the data.
	require.NoError(t, store.SaveRecord(ctx, "products", "p1", json.RawMessage(`{"id":"p1","name":"Americano","active":true}`)))
	got, err = store.GetRecord(ctx, "products", "p1")
	require.NoError(t, err)
	assert.Contains(t, string(got), "active")

	records, err := store.ListRecords(ctx, "products")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Contains(t, string(records[0]), "p1")
	assert.Contains(t, string(records[1]), "p2")

	require.NoError(t, store.DeleteRecord(ctx, "products", "p1"))
	_, err = store.GetRecord(ctx, "products", "p1")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
	assert.ErrorIs(t, store.DeleteRecord(ctx, "products", "p1"), storage.ErrRecordNotFound)
}

func TestRecords_KindsAreIsolated(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, "products", "x", json.RawMessage(`{"id":"x"}`)))
	require.NoError(t, store.SaveRecord(ctx, "tables", "x", json.RawMessage(`{"id":"x","seats":2}`)))

	products, err := store.ListRecords(ctx, "products")
	require.NoError(t, err)
	assert.Len(t, products, 1)

	require.NoError(t, store.DeleteRecord(ctx, "products", "x"))

	tables, err := store.ListRecords(ctx, "tables")
	require.NoError(t, err)
	assert.Len(t, tables, 1)
}
