package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/fourone/pos/internal/client/storage"
)

// Pending operations are keyed by the bucket's monotonic sequence number
// encoded big-endian, so ForEach yields strict creation order.

// AppendOperation persists op and fills op.Seq. The write transaction
// commits before the call returns; the optimistic response handed to the
// UI depends on the operation already being durable.
func (s *Storage) AppendOperation(ctx context.Context, op *storage.PendingOperation) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPendingOps)

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate sequence: %w", err)
		}
		op.Seq = seq

		data, err := json.Marshal(op)
		if err != nil {
			return fmt.Errorf("failed to marshal operation: %w", err)
		}

		if err := bucket.Put(seqKey(seq), data); err != nil {
			return fmt.Errorf("failed to store operation: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("append transaction failed: %w", err)
	}

	return nil
}

// ListOperations returns all pending operations, oldest first.
func (s *Storage) ListOperations(ctx context.Context) ([]*storage.PendingOperation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var ops []*storage.PendingOperation

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPendingOps).ForEach(func(k, v []byte) error {
			var op storage.PendingOperation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("failed to unmarshal operation: %w", err)
			}
			ops = append(ops, &op)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}

	return ops, nil
}

// UpdateOperation rewrites an operation in place.
func (s *Storage) UpdateOperation(ctx context.Context, op *storage.PendingOperation) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPendingOps)

		if bucket.Get(seqKey(op.Seq)) == nil {
			return storage.ErrOperationNotFound
		}

		data, err := json.Marshal(op)
		if err != nil {
			return fmt.Errorf("failed to marshal operation: %w", err)
		}

		return bucket.Put(seqKey(op.Seq), data)
	})
	if err != nil {
		if err == storage.ErrOperationNotFound {
			return err
		}
		return fmt.Errorf("update transaction failed: %w", err)
	}

	return nil
}

// RemoveOperation deletes the operation with the given sequence number.
func (s *Storage) RemoveOperation(ctx context.Context, seq uint64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPendingOps)

		if bucket.Get(seqKey(seq)) == nil {
			return storage.ErrOperationNotFound
		}

		return bucket.Delete(seqKey(seq))
	})
	if err != nil {
		if err == storage.ErrOperationNotFound {
			return err
		}
		return fmt.Errorf("remove transaction failed: %w", err)
	}

	return nil
}

// CountOperations returns the number of queued operations.
func (s *Storage) CountOperations(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var count int
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(bucketPendingOps).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count operations: %w", err)
	}

	return count, nil
}

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
