package bolthandler

import (
	"context"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	BucketAccounts = []byte("accounts")
)

// BoltHandler contains an open bolt database. Bolt allows a single writer at
// a time, so write transactions never interleave.
type BoltHandler struct {
	DB *bolt.DB
}

func Open(path string) (*BoltHandler, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(BucketAccounts)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltHandler{DB: db}, nil
}

// Update runs fn in a read-write transaction. The transaction is rolled back
// when fn returns an error.
func (handler *BoltHandler) Update(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return handler.DB.Update(fn)
}

func (handler *BoltHandler) View(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return handler.DB.View(fn)
}

func (handler *BoltHandler) Close() error {
	return handler.DB.Close()
}
