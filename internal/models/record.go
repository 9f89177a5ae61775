package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// OfflineIDPrefix namespaces client-assigned temporary identifiers so they
// can never collide with server-assigned UUIDs.
const OfflineIDPrefix = "offline_"

// NewOfflineID returns a fresh temporary identifier for an entity created
// while offline.
func NewOfflineID() string {
	return OfflineIDPrefix + uuid.New().String()
}

// IsOfflineID reports whether id is a client-assigned temporary identifier
// awaiting reconciliation.
func IsOfflineID(id string) bool {
	return strings.HasPrefix(id, OfflineIDPrefix)
}

// RecordID extracts the "id" field from a raw JSON record.
func RecordID(raw json.RawMessage) (string, error) {
	var envelope struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", fmt.Errorf("failed to parse record: %w", err)
	}
	return envelope.ID, nil
}

// WithID returns a copy of the record with its "id" field replaced.
// Used during reconciliation to swap a temporary id for the
// server-assigned one.
func WithID(raw json.RawMessage, id string) (json.RawMessage, error) {
	fields, err := recordFields(raw)
	if err != nil {
		return nil, err
	}
	fields["id"] = id
	return json.Marshal(fields)
}

// MarkPending returns a copy of the record flagged as awaiting sync.
func MarkPending(raw json.RawMessage) (json.RawMessage, error) {
	fields, err := recordFields(raw)
	if err != nil {
		return nil, err
	}
	fields["pending_sync"] = true
	return json.Marshal(fields)
}

// ClearPending returns a copy of the record with the pending flag removed.
func ClearPending(raw json.RawMessage) (json.RawMessage, error) {
	fields, err := recordFields(raw)
	if err != nil {
		return nil, err
	}
	delete(fields, "pending_sync")
	return json.Marshal(fields)
}

func recordFields(raw json.RawMessage) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse record: %w", err)
	}
	return fields, nil
}
