// Package cache implements the read-cache layer of the offline engine:
// it maps REST endpoints to entity-kind stores, records successful GET
// responses and serves them back when the network is unavailable.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fourone/pos/internal/client/storage"
	"github.com/fourone/pos/internal/models"
	"github.com/fourone/pos/pkg/api"
)

// ErrUnknownEndpoint indicates that no entity-kind store is mapped to the
// endpoint, so nothing can be served offline.
var ErrUnknownEndpoint = errors.New("no entity kind mapped to endpoint")

// endpointKinds maps endpoint fragments to entity-kind stores. Matching
// is by substring so both "/api/products" and "/api/products?active=1"
// land in the products store.
var endpointKinds = []struct {
	fragment string
	kind     storage.EntityKind
}{
	{"/products", storage.KindProducts},
	{"/categories", storage.KindCategories},
	{"/tables", storage.KindTables},
	{"/customers", storage.KindCustomers},
	{"/tax-types", storage.KindTaxTypes},
	{"/sales", storage.KindSales},
	{"/users", storage.KindUsers},
}

// KindForEndpoint maps an endpoint to its entity-kind store.
func KindForEndpoint(endpoint string) (storage.EntityKind, bool) {
	for _, mapping := range endpointKinds {
		if strings.Contains(endpoint, mapping.fragment) {
			return mapping.kind, true
		}
	}
	return "", false
}

// kindEndpoints is the inverse of endpointKinds: the collection endpoint
// queued operations for a kind are replayed against.
var kindEndpoints = map[storage.EntityKind]string{
	storage.KindProducts:   api.PathProducts,
	storage.KindCategories: api.PathCategories,
	storage.KindTables:     api.PathTables,
	storage.KindCustomers:  api.PathCustomers,
	storage.KindTaxTypes:   api.PathTaxTypes,
	storage.KindSales:      api.PathSales,
	storage.KindUsers:      api.PathUsers,
}

// EndpointForKind maps an entity-kind store to its collection endpoint.
func EndpointForKind(kind storage.EntityKind) (string, bool) {
	endpoint, ok := kindEndpoints[kind]
	return endpoint, ok
}

// Manager is the cache manager. It owns no data itself; everything lives
// in the injected durable store.
type Manager struct {
	store  storage.CacheStorage
	logger *slog.Logger
}

// NewManager creates a new cache manager.
func NewManager(store storage.CacheStorage, logger *slog.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger,
	}
}

// RecordRead stores a successful GET response. Payloads that are not
// JSON arrays of records, or endpoints without a mapped store, are
// skipped: only collection fetches feed the cache.
func (m *Manager) RecordRead(ctx context.Context, endpoint string, payload json.RawMessage) error {
	kind, ok := KindForEndpoint(endpoint)
	if !ok {
		m.logger.Debug("not caching response for unmapped endpoint", "endpoint", endpoint)
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err != nil {
		m.logger.Debug("not caching non-collection response", "endpoint", endpoint)
		return nil
	}

	if err := m.store.ReplaceCollection(ctx, kind, items); err != nil {
		return fmt.Errorf("failed to cache %s response: %w", kind, err)
	}

	m.logger.Debug("cached collection", "kind", kind, "items", len(items))
	return nil
}

// Cached returns the cached payload for an endpoint, reassembled into
// the JSON array the server originally sent. Returns ErrUnknownEndpoint
// or storage.ErrNotCached when nothing can be served offline.
func (m *Manager) Cached(ctx context.Context, endpoint string) (json.RawMessage, error) {
	kind, ok := KindForEndpoint(endpoint)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, endpoint)
	}

	items, err := m.store.Collection(ctx, kind)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []json.RawMessage{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble cached payload: %w", err)
	}

	return payload, nil
}

// Stale reports whether the cached snapshot for endpoint is older than
// window. A collection that was never fetched is stale. Freshness policy
// belongs to the caller; the cache itself never expires data.
func (m *Manager) Stale(ctx context.Context, endpoint string, window time.Duration) (bool, error) {
	kind, ok := KindForEndpoint(endpoint)
	if !ok {
		return true, fmt.Errorf("%w: %s", ErrUnknownEndpoint, endpoint)
	}

	fetched, err := m.store.FetchedAt(ctx, kind)
	if err != nil {
		if errors.Is(err, storage.ErrNotCached) {
			return true, nil
		}
		return true, err
	}

	return time.Since(fetched) > window, nil
}

// InsertLocalRecord appends an optimistic record created while offline.
func (m *Manager) InsertLocalRecord(ctx context.Context, kind storage.EntityKind, record json.RawMessage) error {
	if err := m.store.InsertRecord(ctx, kind, record); err != nil {
		return fmt.Errorf("failed to insert local record: %w", err)
	}
	return nil
}

// UpdateLocalRecord applies an optimistic update. An update against a
// record the snapshot does not hold (evicted by a later refresh) falls
// back to an insert so the user keeps seeing their change.
func (m *Manager) UpdateLocalRecord(ctx context.Context, kind storage.EntityKind, id string, record json.RawMessage) error {
	err := m.store.UpdateRecord(ctx, kind, id, record)
	if errors.Is(err, storage.ErrRecordNotFound) {
		err = m.store.InsertRecord(ctx, kind, record)
	}
	if err != nil {
		return fmt.Errorf("failed to update local record: %w", err)
	}
	return nil
}

// DeleteLocalRecord applies an optimistic delete. Deleting a record the
// snapshot no longer holds is not an error.
func (m *Manager) DeleteLocalRecord(ctx context.Context, kind storage.EntityKind, id string) error {
	err := m.store.DeleteRecord(ctx, kind, id)
	if err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
		return fmt.Errorf("failed to delete local record: %w", err)
	}
	return nil
}

// ReconcileCreate swaps the record stored under tempID for the
// server-assigned record after a queued CREATE is confirmed. A missing
// record means a snapshot refresh already replaced it; that is fine.
func (m *Manager) ReconcileCreate(ctx context.Context, kind storage.EntityKind, tempID string, serverRecord json.RawMessage) error {
	record, err := models.ClearPending(serverRecord)
	if err != nil {
		return fmt.Errorf("failed to prepare reconciled record: %w", err)
	}

	err = m.store.UpdateRecord(ctx, kind, tempID, record)
	if errors.Is(err, storage.ErrRecordNotFound) {
		m.logger.Debug("reconciled record no longer cached", "kind", kind, "temp_id", tempID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to reconcile record: %w", err)
	}

	return nil
}
