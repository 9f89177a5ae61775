package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/fourone/pos/internal/models"
	"github.com/fourone/pos/internal/server/storage"
	"github.com/fourone/pos/pkg/api"
)

// maxBodyBytes bounds entity payloads; a sale with a full table's worth
// of items stays far below this.
const maxBodyBytes = 1 << 20

// RecordsHandler serves the generic entity CRUD endpoints. All entities
// share the storage model; sales additionally get their totals
// revalidated because replayed offline sales carry client arithmetic.
type RecordsHandler struct {
	logger  *slog.Logger
	records storage.RecordStorage
}

// NewRecordsHandler creates the entity CRUD handler.
func NewRecordsHandler(logger *slog.Logger, records storage.RecordStorage) *RecordsHandler {
	return &RecordsHandler{
		logger:  logger,
		records: records,
	}
}

// saleKind is the entity kind with extra validation.
const saleKind = "sales"

// List returns a GET handler for one entity kind.
func (h *RecordsHandler) List(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		records, err := h.records.ListRecords(ctx, kind)
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to list records", slog.String("kind", kind), slog.Any("error", err))
			writeError(w, "internal server error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, records, http.StatusOK)
	}
}

// Create returns a POST handler for one entity kind. The server assigns
// the record id: temporary offline ids from the client are discarded and
// the authoritative record travels back in the response.
func (h *RecordsHandler) Create(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		body, err := h.readRecord(r)
		if err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}

		record, err := models.WithID(body, uuid.New().String())
		if err != nil {
			writeError(w, "invalid record body", http.StatusBadRequest)
			return
		}

		if kind == saleKind {
			if err := h.validateSale(ctx, record); err != nil {
				h.logger.WarnContext(ctx, "rejecting sale", slog.Any("error", err))
				writeError(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		id, err := models.RecordID(record)
		if err != nil {
			writeError(w, "invalid record body", http.StatusBadRequest)
			return
		}

		if err := h.records.SaveRecord(ctx, kind, id, record); err != nil {
			h.logger.ErrorContext(ctx, "failed to save record", slog.String("kind", kind), slog.Any("error", err))
			writeError(w, "internal server error", http.StatusInternalServerError)
			return
		}

		h.logger.InfoContext(ctx, "record created", slog.String("kind", kind), slog.String("id", id))
		writeJSON(w, json.RawMessage(record), http.StatusCreated)
	}
}

// Update returns a PUT handler for one entity kind.
func (h *RecordsHandler) Update(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := r.PathValue("id")

		if _, err := h.records.GetRecord(ctx, kind, id); err != nil {
			if errors.Is(err, storage.ErrRecordNotFound) {
				writeError(w, "record not found", http.StatusNotFound)
				return
			}
			h.logger.ErrorContext(ctx, "failed to get record", slog.String("kind", kind), slog.Any("error", err))
			writeError(w, "internal server error", http.StatusInternalServerError)
			return
		}

		body, err := h.readRecord(r)
		if err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}

		record, err := models.WithID(body, id)
		if err != nil {
			writeError(w, "invalid record body", http.StatusBadRequest)
			return
		}

		if kind == saleKind {
			if err := h.validateSale(ctx, record); err != nil {
				h.logger.WarnContext(ctx, "rejecting sale update", slog.Any("error", err))
				writeError(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		if err := h.records.SaveRecord(ctx, kind, id, record); err != nil {
			h.logger.ErrorContext(ctx, "failed to save record", slog.String("kind", kind), slog.Any("error", err))
			writeError(w, "internal server error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, json.RawMessage(record), http.StatusOK)
	}
}

// Delete returns a DELETE handler for one entity kind.
func (h *RecordsHandler) Delete(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := r.PathValue("id")

		if err := h.records.DeleteRecord(ctx, kind, id); err != nil {
			if errors.Is(err, storage.ErrRecordNotFound) {
				writeError(w, "record not found", http.StatusNotFound)
				return
			}
			h.logger.ErrorContext(ctx, "failed to delete record", slog.String("kind", kind), slog.Any("error", err))
			writeError(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// readRecord reads and sanity-checks a JSON object body, stripping the
// client-side pending flag replayed offline records carry.
func (h *RecordsHandler) readRecord(r *http.Request) (json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body")
	}

	record, err := models.ClearPending(body)
	if err != nil {
		return nil, fmt.Errorf("request body must be a JSON object")
	}

	return record, nil
}

// validateSale recomputes the totals of a submitted sale against the
// configured tax rate. Client arithmetic is never trusted, least of all
// on replayed offline sales.
func (h *RecordsHandler) validateSale(ctx context.Context, record json.RawMessage) error {
	var sale api.Sale
	if err := json.Unmarshal(record, &sale); err != nil {
		return fmt.Errorf("invalid sale body")
	}

	var rate int64
	if sale.TaxTypeID != "" {
		taxRecord, err := h.records.GetRecord(ctx, "tax_types", sale.TaxTypeID)
		if err != nil {
			if errors.Is(err, storage.ErrRecordNotFound) {
				return fmt.Errorf("unknown tax type %q", sale.TaxTypeID)
			}
			return fmt.Errorf("failed to resolve tax type: %w", err)
		}

		var taxType api.TaxType
		if err := json.Unmarshal(taxRecord, &taxType); err != nil {
			return fmt.Errorf("failed to decode tax type: %w", err)
		}
		rate = taxType.RateBasisPoints
	}

	return models.ValidateSale(&sale, rate)
}
