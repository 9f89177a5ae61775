// Package data is the typed facade the UI layer talks to. It hides the
// gateway/cache/queue plumbing behind entity-level calls and a single
// Status snapshot, so callers never deal with raw JSON or endpoints.
package data

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/fourone/pos/internal/client/gateway"
	"github.com/fourone/pos/internal/client/queue"
	"github.com/fourone/pos/internal/client/sync"
	"github.com/fourone/pos/internal/models"
	"github.com/fourone/pos/pkg/api"
)

// Syncer is the sync engine surface the facade exposes to the UI.
type Syncer interface {
	ProcessPendingOperations(ctx context.Context) (*queue.DrainResult, error)
	PendingCount(ctx context.Context) (int, error)
	Notifier() *sync.Notifier
}

// Sizer reports how much disk the local store occupies.
type Sizer interface {
	SizeBytes(ctx context.Context) (int64, error)
}

// Status is a point-in-time snapshot of the offline engine.
type Status struct {
	Online           bool
	PendingOps       int
	StorageSizeBytes int64
}

// Service is the data facade.
type Service struct {
	gateway *gateway.Gateway
	syncer  Syncer
	sizer   Sizer
	online  func() bool
	logger  *slog.Logger
}

// NewService creates the facade over an assembled offline engine.
func NewService(gw *gateway.Gateway, syncer Syncer, sizer Sizer, online func() bool, logger *slog.Logger) *Service {
	return &Service{
		gateway: gw,
		syncer:  syncer,
		sizer:   sizer,
		online:  online,
		logger:  logger,
	}
}

// collection fetches an endpoint through the gateway and decodes the
// JSON array into out.
func (s *Service) collection(ctx context.Context, endpoint string, out any) (gateway.Source, error) {
	result, err := s.gateway.Get(ctx, endpoint)
	if err != nil {
		return "", err
	}
	if err := json.Unmarshal(result.Payload, out); err != nil {
		return "", fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return result.Source, nil
}

// Products lists sellable items, from the server or the local snapshot.
func (s *Service) Products(ctx context.Context) ([]api.Product, gateway.Source, error) {
	var products []api.Product
	source, err := s.collection(ctx, api.PathProducts, &products)
	return products, source, err
}

// Categories lists product categories.
func (s *Service) Categories(ctx context.Context) ([]api.Category, gateway.Source, error) {
	var categories []api.Category
	source, err := s.collection(ctx, api.PathCategories, &categories)
	return categories, source, err
}

// Tables lists the restaurant floor tables.
func (s *Service) Tables(ctx context.Context) ([]api.DiningTable, gateway.Source, error) {
	var tables []api.DiningTable
	source, err := s.collection(ctx, api.PathTables, &tables)
	return tables, source, err
}

// Customers lists registered buyers.
func (s *Service) Customers(ctx context.Context) ([]api.Customer, gateway.Source, error) {
	var customers []api.Customer
	source, err := s.collection(ctx, api.PathCustomers, &customers)
	return customers, source, err
}

// TaxTypes lists the configured tax rates.
func (s *Service) TaxTypes(ctx context.Context) ([]api.TaxType, gateway.Source, error) {
	var taxTypes []api.TaxType
	source, err := s.collection(ctx, api.PathTaxTypes, &taxTypes)
	return taxTypes, source, err
}

// Sales lists recorded transactions, including offline-pending ones.
func (s *Service) Sales(ctx context.Context) ([]api.Sale, gateway.Source, error) {
	var sales []api.Sale
	source, err := s.collection(ctx, api.PathSales, &sales)
	return sales, source, err
}

// SaleDraft is the caller-supplied part of a new sale.
type SaleDraft struct {
	Items      []api.SaleItem
	TaxType    api.TaxType
	TableID    string
	CustomerID string
}

// CreateSale totals and submits a sale. Totals are computed here, never
// taken from the caller. When the server is unreachable the returned
// sale carries a temporary offline id and the pending flag, and Queued
// is true.
func (s *Service) CreateSale(ctx context.Context, draft SaleDraft) (*api.Sale, bool, error) {
	totals, err := models.ComputeTotals(draft.Items, draft.TaxType.RateBasisPoints)
	if err != nil {
		return nil, false, err
	}

	sale := api.Sale{
		CreatedAt:     time.Now().UTC(),
		TableID:       draft.TableID,
		CustomerID:    draft.CustomerID,
		TaxTypeID:     draft.TaxType.ID,
		Status:        api.SaleStatusCompleted,
		Items:         draft.Items,
		SubtotalCents: totals.SubtotalCents,
		TaxCents:      totals.TaxCents,
		TotalCents:    totals.TotalCents,
	}

	body, err := json.Marshal(sale)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode sale: %w", err)
	}

	result, err := s.gateway.Create(ctx, api.PathSales, body)
	if err != nil {
		return nil, false, err
	}

	var created api.Sale
	if err := json.Unmarshal(result.Payload, &created); err != nil {
		return nil, false, fmt.Errorf("failed to decode created sale: %w", err)
	}

	queued := result.Source == gateway.SourceQueue
	if queued {
		s.logger.Info("sale captured for later sync",
			"sale_id", created.ID, "total_cents", created.TotalCents)
	}

	return &created, queued, nil
}

// UpdateTableStatus changes a table's floor status.
func (s *Service) UpdateTableStatus(ctx context.Context, table api.DiningTable, status string) (bool, error) {
	switch status {
	case api.TableStatusFree, api.TableStatusOccupied, api.TableStatusReserved:
	default:
		return false, fmt.Errorf("unknown table status %q", status)
	}

	table.Status = status
	body, err := json.Marshal(table)
	if err != nil {
		return false, fmt.Errorf("failed to encode table: %w", err)
	}

	result, err := s.gateway.Update(ctx, api.PathTables, table.ID, body)
	if err != nil {
		return false, err
	}

	return result.Source == gateway.SourceQueue, nil
}

// Status reports current connectivity, queue depth and local store size.
func (s *Service) Status(ctx context.Context) (Status, error) {
	pending, err := s.syncer.PendingCount(ctx)
	if err != nil {
		return Status{}, err
	}

	size, err := s.sizer.SizeBytes(ctx)
	if err != nil {
		return Status{}, err
	}

	return Status{
		Online:           s.online(),
		PendingOps:       pending,
		StorageSizeBytes: size,
	}, nil
}

// ForceSync drains the queue immediately, regardless of the periodic
// schedule.
func (s *Service) ForceSync(ctx context.Context) (*queue.DrainResult, error) {
	return s.syncer.ProcessPendingOperations(ctx)
}

// SubscribeSync registers an observer for sync lifecycle events and
// returns its unregister function.
func (s *Service) SubscribeSync(obs sync.Observer) func() {
	return s.syncer.Notifier().Register(obs)
}
