package dbhandler

import (
	"context"
	"errors"
	"log"

	"database/sql"

	"github.com/behrang/sqlbatch"
	"github.com/lib/pq"
)

const (
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

// DBHandler contains a connection to database.
type DBHandler struct {
	DB *sql.DB
}

// Batch creates a transaction and executes the batch of commands in that transaction.
// If a retryable error is received, the batch is retried.
func (handler DBHandler) Batch(ctx context.Context, opts *sql.TxOptions, commands []sqlbatch.Command) ([]interface{}, error) {
	var results []interface{}
	err := handler.Transact(ctx, opts, func(tx *sql.Tx) error {
		var err error
		results, err = sqlbatch.Batch(tx, commands)
		return err
	})
	return results, err
}

// Transact runs fn in a transaction and commits when fn succeeds. The whole
// transaction, fn included, is retried on serialization failures, so fn must
// not keep state between attempts.
func (handler DBHandler) Transact(ctx context.Context, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	for {
		err := handler.tryTransact(ctx, opts, fn)
		if isRetryable(err) {
			log.Printf("🟡 Retryable Postgres error, retrying: %v", err)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		return err
	}
}

func (handler DBHandler) tryTransact(ctx context.Context, opts *sql.TxOptions, fn func(tx *sql.Tx) error) (err error) {
	tx, err := handler.DB.BeginTx(ctx, opts)
	if err != nil {
		return
	}
	defer tx.Rollback()

	err = fn(tx)

	if err == nil {
		err = tx.Commit()
	}

	return
}

func isRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == serializationFailure || pqErr.Code == deadlockDetected
	}
	return false
}
