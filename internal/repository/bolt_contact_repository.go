package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/contactsite/backend/internal/model"
	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var contactsBucket = []byte("contacts")

// BoltContactRepository stores contact messages as JSON values in a bbolt
// bucket keyed by UUIDv7, so key order follows insertion order.
type BoltContactRepository struct {
	db *bolt.DB
}

// NewBoltContactRepository creates the contacts bucket if needed.
func NewBoltContactRepository(db *bolt.DB) (*BoltContactRepository, error) {
	r := &BoltContactRepository{db: db}
	if err := r.EnsureBucket(); err != nil {
		return nil, err
	}
	return r, nil
}

var _ ContactRepository = (*BoltContactRepository)(nil)

// EnsureBucket creates the contacts bucket if it does not exist yet.
func (r *BoltContactRepository) EnsureBucket() error {
	return r.db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(contactsBucket); err != nil {
			return fmt.Errorf("repository: create bucket: %w", err)
		}
		return nil
	})
}

func (r *BoltContactRepository) Create(_ context.Context, msg *model.ContactMessage) error {
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	rec := *msg
	rec.ID = id.String()
	val, err := json.Marshal(&rec)
	if err != nil {
		return err
	}
	if err := r.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(contactsBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(rec.ID), val)
	}); err != nil {
		return err
	}
	msg.ID = rec.ID
	return nil
}

func (r *BoltContactRepository) List(_ context.Context) ([]*model.ContactMessage, error) {
	var messages []*model.ContactMessage
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(contactsBucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var m model.ContactMessage
			if err := json.Unmarshal(v, &m); err != nil {
				return fmt.Errorf("repository: decode %s: %w", k, err)
			}
			messages = append(messages, &m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// keys are newest-first already; ties keep that order
	slices.SortStableFunc(messages, func(a, b *model.ContactMessage) int {
		return b.Date.Compare(a.Date)
	})
	return messages, nil
}

func (r *BoltContactRepository) Delete(_ context.Context, id string) (bool, error) {
	var deleted bool
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(contactsBucket)
		if b == nil || b.Get([]byte(id)) == nil {
			return nil
		}
		deleted = true
		return b.Delete([]byte(id))
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// Ping fails once the database has been closed.
func (r *BoltContactRepository) Ping(_ context.Context) error {
	return r.db.View(func(*bolt.Tx) error { return nil })
}

// Drop deletes the contacts bucket and its contents.
func (r *BoltContactRepository) Drop(_ context.Context) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket(contactsBucket)
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}
