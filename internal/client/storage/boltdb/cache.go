package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/fourone/pos/internal/client/storage"
	"github.com/fourone/pos/internal/models"
)

// Snapshot items are keyed by 8-byte big-endian position so iteration
// returns them in the order the server sent them.

// ReplaceCollection atomically swaps the snapshot for kind. The old
// bucket is dropped and rebuilt inside one write transaction; concurrent
// View transactions keep seeing the previous snapshot until commit.
func (s *Storage) ReplaceCollection(ctx context.Context, kind storage.EntityKind, items []json.RawMessage) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	name := kindBucket(kind)

	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(name); err != nil && err != bbolt.ErrBucketNotFound {
			return fmt.Errorf("failed to delete bucket: %w", err)
		}

		bucket, err := tx.CreateBucket(name)
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}

		for i, item := range items {
			if err := bucket.Put(positionKey(uint64(i)), item); err != nil {
				return fmt.Errorf("failed to store item %d: %w", i, err)
			}
		}

		meta := tx.Bucket(bucketCacheMeta)
		stamp, err := time.Now().UTC().MarshalBinary()
		if err != nil {
			return fmt.Errorf("failed to encode fetch time: %w", err)
		}
		if err := meta.Put([]byte(kind), stamp); err != nil {
			return fmt.Errorf("failed to store fetch time: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("replace transaction failed: %w", err)
	}

	return nil
}

// Collection returns the cached snapshot in stored order.
func (s *Storage) Collection(ctx context.Context, kind storage.EntityKind) ([]json.RawMessage, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var items []json.RawMessage

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(kindBucket(kind))
		if bucket == nil {
			return storage.ErrNotCached
		}

		// A kind is servable once a fetch stamped it or a local record
		// was inserted offline before the first successful fetch.
		meta := tx.Bucket(bucketCacheMeta)
		if meta.Get([]byte(kind)) == nil && bucket.Stats().KeyN == 0 {
			return storage.ErrNotCached
		}

		return bucket.ForEach(func(k, v []byte) error {
			item := make(json.RawMessage, len(v))
			copy(item, v)
			items = append(items, item)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// FetchedAt returns the time the current snapshot for kind was stored.
func (s *Storage) FetchedAt(ctx context.Context, kind storage.EntityKind) (time.Time, error) {
	if s.db == nil {
		return time.Time{}, storage.ErrStorageClosed
	}

	var fetched time.Time

	err := s.db.View(func(tx *bbolt.Tx) error {
		stamp := tx.Bucket(bucketCacheMeta).Get([]byte(kind))
		if stamp == nil {
			return storage.ErrNotCached
		}
		return fetched.UnmarshalBinary(stamp)
	})
	if err != nil {
		return time.Time{}, err
	}

	return fetched, nil
}

// GetRecord returns the cached record with the given id.
func (s *Storage) GetRecord(ctx context.Context, kind storage.EntityKind, id string) (json.RawMessage, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var record json.RawMessage

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(kindBucket(kind))
		if bucket == nil {
			return storage.ErrRecordNotFound
		}

		key, item, err := findRecord(bucket, id)
		if err != nil {
			return err
		}
		if key == nil {
			return storage.ErrRecordNotFound
		}

		record = make(json.RawMessage, len(item))
		copy(record, item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// InsertRecord appends a record to the snapshot. Used for optimistic
// local creates while offline.
func (s *Storage) InsertRecord(ctx context.Context, kind storage.EntityKind, item json.RawMessage) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(kindBucket(kind))
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}

		pos := uint64(0)
		if cursor := bucket.Cursor(); cursor != nil {
			if last, _ := cursor.Last(); last != nil {
				pos = binary.BigEndian.Uint64(last) + 1
			}
		}

		if err := bucket.Put(positionKey(pos), item); err != nil {
			return fmt.Errorf("failed to store record: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert transaction failed: %w", err)
	}

	return nil
}

// UpdateRecord replaces the record stored under id with item.
func (s *Storage) UpdateRecord(ctx context.Context, kind storage.EntityKind, id string, item json.RawMessage) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(kindBucket(kind))
		if bucket == nil {
			return storage.ErrRecordNotFound
		}

		key, _, err := findRecord(bucket, id)
		if err != nil {
			return err
		}
		if key == nil {
			return storage.ErrRecordNotFound
		}

		if err := bucket.Put(key, item); err != nil {
			return fmt.Errorf("failed to store record: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update transaction failed: %w", err)
	}

	return nil
}

// DeleteRecord removes the record stored under id.
func (s *Storage) DeleteRecord(ctx context.Context, kind storage.EntityKind, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(kindBucket(kind))
		if bucket == nil {
			return storage.ErrRecordNotFound
		}

		key, _, err := findRecord(bucket, id)
		if err != nil {
			return err
		}
		if key == nil {
			return storage.ErrRecordNotFound
		}

		return bucket.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("delete transaction failed: %w", err)
	}

	return nil
}

// findRecord scans the snapshot for the record whose "id" field matches.
// Collections on a POS terminal are small, so a scan beats maintaining a
// secondary index.
func findRecord(bucket *bbolt.Bucket, id string) (key []byte, item []byte, err error) {
	cursor := bucket.Cursor()
	for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
		recordID, err := models.RecordID(v)
		if err != nil {
			return nil, nil, fmt.Errorf("corrupt cached record: %w", err)
		}
		if recordID == id {
			keyCopy := make([]byte, len(k))
			copy(keyCopy, k)
			return keyCopy, v, nil
		}
	}
	return nil, nil, nil
}

func positionKey(pos uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, pos)
	return key
}
