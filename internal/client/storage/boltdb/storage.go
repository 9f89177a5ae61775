// Package boltdb implements the client's durable local store on bbolt:
// one bucket per entity-kind snapshot, a FIFO pending-operation bucket
// keyed by big-endian sequence numbers, a fetch-timestamp bucket and a
// settings bucket. All writes go through single bbolt transactions so a
// reader never observes a half-replaced collection.
package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/fourone/pos/internal/client/storage"
)

var (
	// BoltDB bucket names
	bucketPendingOps = []byte("pending_ops")
	bucketCacheMeta  = []byte("cache_meta")
	bucketSettings   = []byte("settings")
)

// Storage represents BoltDB storage implementation for the POS client
type Storage struct {
	db *bbolt.DB
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// SizeBytes returns the approximate on-disk size of the local store.
func (s *Storage) SizeBytes(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var size int64
	err := s.db.View(func(tx *bbolt.Tx) error {
		size = tx.Size()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read store size: %w", err)
	}
	return size, nil
}

// initBuckets creates all buckets up front so readers never have to
// handle a missing bucket as a special case.
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, kind := range storage.AllKinds() {
			if _, err := tx.CreateBucketIfNotExists(kindBucket(kind)); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", kind, err)
			}
		}

		for _, name := range [][]byte{bucketPendingOps, bucketCacheMeta, bucketSettings} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}

		return nil
	})
}

// kindBucket maps an entity kind to its snapshot bucket name.
func kindBucket(kind storage.EntityKind) []byte {
	return []byte("cache_" + string(kind))
}
