package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fourone/pos/internal/server/storage"
)

// SaveRecord inserts or replaces an entity record.
func (s *Storage) SaveRecord(ctx context.Context, kind, id string, data json.RawMessage) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO records (kind, id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(kind, id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, kind, id, string(data), now, now)
	if err != nil {
		return fmt.Errorf("failed to save %s record: %w", kind, err)
	}

	return nil
}

// GetRecord retrieves a single entity record.
func (s *Storage) GetRecord(ctx context.Context, kind, id string) (json.RawMessage, error) {
	query := `SELECT data FROM records WHERE kind = ? AND id = ?`

	var data string
	err := s.db.QueryRowContext(ctx, query, kind, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get %s record: %w", kind, err)
	}

	return json.RawMessage(data), nil
}

// ListRecords retrieves all records of a kind in insertion order.
func (s *Storage) ListRecords(ctx context.Context, kind string) ([]json.RawMessage, error) {
	query := `SELECT data FROM records WHERE kind = ? ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", kind, err)
	}
	defer rows.Close()

	records := []json.RawMessage{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan %s record: %w", kind, err)
		}
		records = append(records, json.RawMessage(data))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s records: %w", kind, err)
	}

	return records, nil
}

// DeleteRecord removes an entity record.
func (s *Storage) DeleteRecord(ctx context.Context, kind, id string) error {
	query := `DELETE FROM records WHERE kind = ? AND id = ?`

	result, err := s.db.ExecContext(ctx, query, kind, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s record: %w", kind, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return storage.ErrRecordNotFound
	}

	return nil
}
