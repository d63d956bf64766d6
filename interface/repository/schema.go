package repository

import (
	"context"

	"github.com/behrang/sqlbatch"
)

const (
	sqlCreateAccounts = `
	create table if not exists accounts (
		address     text primary key,
		owner       text not null,
		lamports    bigint not null default 0 check (lamports >= 0),
		kind        text not null,
		data        jsonb,
		create_time timestamptz not null default now(),
		update_time timestamptz not null default now()
	)
`

	sqlCreateAccountsKindIndex = `
	create index if not exists accounts_kind_idx on accounts (kind)
`
)

// Migrate creates the tables of the ledger when they are missing.
func Migrate(ctx context.Context, db BatchHandler) error {
	_, err := db.Batch(ctx, &BatchOptionNormal, []sqlbatch.Command{
		{Query: sqlCreateAccounts},
		{Query: sqlCreateAccountsKindIndex},
	})
	return err
}
