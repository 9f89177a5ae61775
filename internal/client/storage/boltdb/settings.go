package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/fourone/pos/internal/client/storage"
)

// SetSetting stores a value under key.
func (s *Storage) SetSetting(ctx context.Context, key string, value []byte) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSettings).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to store setting %q: %w", key, err)
	}

	return nil
}

// GetSetting returns the value stored under key.
func (s *Storage) GetSetting(ctx context.Context, key string) ([]byte, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var value []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSettings).Get([]byte(key))
		if data == nil {
			return storage.ErrSettingNotFound
		}
		value = make([]byte, len(data))
		copy(value, data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// DeleteSetting removes key from the settings store.
func (s *Storage) DeleteSetting(ctx context.Context, key string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSettings).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete setting %q: %w", key, err)
	}

	return nil
}
