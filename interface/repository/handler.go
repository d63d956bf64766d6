package repository

import (
	"context"
	"database/sql"

	"github.com/behrang/sqlbatch"
)

var (
	BatchOptionNormal = sql.TxOptions{
		ReadOnly:  false,
		Isolation: sql.LevelReadCommitted,
	}

	BatchOptionSnapshotReadOnly = sql.TxOptions{
		ReadOnly:  true,
		Isolation: sql.LevelRepeatableRead,
	}

	BatchOptionSerializable = sql.TxOptions{
		ReadOnly:  false,
		Isolation: sql.LevelSerializable,
	}
)

// BatchHandler is a database handler that executes a batch of SQL commands.
type BatchHandler interface {
	Batch(ctx context.Context, opts *sql.TxOptions, commands []sqlbatch.Command) ([]interface{}, error)
}

// TxHandler is a database handler that runs a function in a transaction.
type TxHandler interface {
	BatchHandler
	Transact(ctx context.Context, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error
}
