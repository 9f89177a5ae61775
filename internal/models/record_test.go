package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineIDs(t *testing.T) {
	id := NewOfflineID()
	assert.True(t, IsOfflineID(id))
	assert.False(t, IsOfflineID("2f9c5a92-0000-0000-0000-000000000000"))

	other := NewOfflineID()
	assert.NotEqual(t, id, other)
}

func TestRecordID(t *testing.T) {
	id, err := RecordID(json.RawMessage(`{"id":"abc","name":"Cola"}`))
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	_, err = RecordID(json.RawMessage(`not json`))
	assert.Error(t, err)
}

func TestWithID(t *testing.T) {
	raw := json.RawMessage(`{"id":"offline_x","name":"Cola"}`)

	updated, err := WithID(raw, "server-1")
	require.NoError(t, err)

	id, err := RecordID(updated)
	require.NoError(t, err)
	assert.Equal(t, "server-1", id)

	// Other fields survive the rewrite.
	var fields map[string]any
	require.NoError(t, json.Unmarshal(updated, &fields))
	assert.Equal(t, "Cola", fields["name"])
}

func TestPendingFlag(t *testing.T) {
	raw := json.RawMessage(`{"id":"offline_x"}`)

	marked, err := MarkPending(raw)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(marked, &fields))
	assert.Equal(t, true, fields["pending_sync"])

	cleared, err := ClearPending(marked)
	require.NoError(t, err)

	fields = nil
	require.NoError(t, json.Unmarshal(cleared, &fields))
	_, ok := fields["pending_sync"]
	assert.False(t, ok)
}
