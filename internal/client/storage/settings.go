package storage

import "context"

// SettingsStorage defines a small durable key-value store for client
// settings (cached user profile, last sync time, terminal options).
type SettingsStorage interface {
	// SetSetting stores a value under key.
	SetSetting(ctx context.Context, key string, value []byte) error

	// GetSetting returns the value stored under key.
	// Returns ErrSettingNotFound if the key has never been set.
	GetSetting(ctx context.Context, key string) ([]byte, error)

	// DeleteSetting removes key. Deleting an absent key is not an error.
	DeleteSetting(ctx context.Context, key string) error
}

// StatsStorage exposes storage-level diagnostics for the status surface.
type StatsStorage interface {
	// SizeBytes returns the approximate on-disk size of the local store.
	SizeBytes(ctx context.Context) (int64, error)
}
