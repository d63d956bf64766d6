package repository

import (
	"context"
	"database/sql"
	"fmt"

	"voteapp/domain"

	"github.com/behrang/sqlbatch"
	"github.com/tonkeeper/tongo/tlb"
)

const (
	sqlAccountFind = `
	select
		address, owner, lamports, kind, data
	from accounts
	where address = $1
`

	sqlAccountFindForUpdate = `
	select
		address, owner, lamports, kind, data
	from accounts
	where address = $1
	for update
`

	sqlAccountInsertIfNotExists = `
	insert into accounts as a (
			address, owner, lamports, kind, data, create_time, update_time
		)
		values (
			$1, $2, $3, $4, $5::jsonb, now(), now()
		)
	on conflict (address) do nothing
	returning address
`

	sqlAccountUpsert = `
	insert into accounts as a (
			address, owner, lamports, kind, data, create_time, update_time
		)
		values (
			$1, $2, $3, $4, $5::jsonb, now(), now()
		)
	on conflict (address) do
		update set
			owner = $2, lamports = $3, kind = $4, data = $5::jsonb, update_time = now()
`

	sqlAccountFindAllByKind = `
	select
		address, owner, lamports, kind, data
	from accounts
	where kind = $1
	order by address
`
)

// PostgresLedger runs every atomic unit in a serializable transaction, so two
// transactions writing the same account are linearized. Serialization
// failures are retried by the handler.
type PostgresLedger struct {
	db TxHandler
}

func NewPostgresLedger(db TxHandler) *PostgresLedger {
	return &PostgresLedger{db: db}
}

func (ledger *PostgresLedger) Atomic(ctx context.Context, fn func(store domain.AccountStore) error) error {
	return ledger.db.Transact(ctx, &BatchOptionSerializable, func(tx *sql.Tx) error {
		return fn(&postgresAccountStore{tx: tx, forUpdate: true})
	})
}

func (ledger *PostgresLedger) View(ctx context.Context, fn func(store domain.AccountStore) error) error {
	return ledger.db.Transact(ctx, &BatchOptionSnapshotReadOnly, func(tx *sql.Tx) error {
		return fn(&postgresAccountStore{tx: tx, readOnly: true})
	})
}

type postgresAccountStore struct {
	tx        *sql.Tx
	forUpdate bool
	readOnly  bool
}

func readAllAccounts(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	var address, owner, kind string
	var lamports int64
	var data []byte
	list := memo.([]*domain.Account)

	err := scan(&address, &owner, &lamports, &kind, &data)
	if err != nil {
		return list, err
	}

	acc := &domain.Account{Kind: kind, Lamports: tlb.Grams(lamports)}
	if acc.Address, err = domain.ParseAddress(address); err != nil {
		return list, err
	}
	if acc.Owner, err = domain.ParseAddress(owner); err != nil {
		return list, err
	}
	if len(data) > 0 {
		acc.Data = data
	}

	list = append(list, acc)
	return list, nil
}

func accountArgs(acc *domain.Account) []interface{} {
	var data interface{}
	if len(acc.Data) > 0 {
		data = string(acc.Data)
	}
	return []interface{}{
		acc.Address.String(), acc.Owner.String(), int64(acc.Lamports), acc.Kind, data,
	}
}

func (store *postgresAccountStore) Find(addr domain.Address) (*domain.Account, error) {
	query := sqlAccountFind
	if store.forUpdate {
		query = sqlAccountFindForUpdate
	}

	results, err := sqlbatch.Batch(store.tx, []sqlbatch.Command{
		{
			Query:   query,
			Args:    []interface{}{addr.String()},
			Init:    make([]*domain.Account, 0, 1),
			ReadAll: readAllAccounts,
		},
	})
	if err != nil {
		return nil, err
	}

	list, _ := results[0].([]*domain.Account)
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrorAccountNotFound, addr)
	}
	return list[0], nil
}

func (store *postgresAccountStore) Create(acc *domain.Account) error {
	if store.readOnly {
		return sql.ErrTxDone
	}
	if err := checkLamports(acc); err != nil {
		return err
	}

	results, err := sqlbatch.Batch(store.tx, []sqlbatch.Command{
		{
			Query:   sqlAccountInsertIfNotExists,
			Args:    accountArgs(acc),
			Init:    make([]string, 0, 1),
			ReadAll: readAllAddresses,
		},
	})
	if err != nil {
		return err
	}

	inserted, _ := results[0].([]string)
	if len(inserted) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrorAccountExists, acc.Address)
	}
	return nil
}

func (store *postgresAccountStore) Save(acc *domain.Account) error {
	if store.readOnly {
		return sql.ErrTxDone
	}
	if err := checkLamports(acc); err != nil {
		return err
	}

	_, err := sqlbatch.Batch(store.tx, []sqlbatch.Command{
		{
			Query:  sqlAccountUpsert,
			Args:   accountArgs(acc),
			Affect: 1,
		},
	})
	return err
}

func (store *postgresAccountStore) FindAllByKind(kind string) ([]*domain.Account, error) {
	results, err := sqlbatch.Batch(store.tx, []sqlbatch.Command{
		{
			Query:   sqlAccountFindAllByKind,
			Args:    []interface{}{kind},
			Init:    make([]*domain.Account, 0),
			ReadAll: readAllAccounts,
		},
	})
	if err != nil {
		return nil, err
	}

	list, _ := results[0].([]*domain.Account)
	return list, nil
}

func readAllAddresses(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	var address string
	list := memo.([]string)
	err := scan(&address)
	if err == nil {
		list = append(list, address)
	}
	return list, err
}

// The lamports column is a bigint.
func checkLamports(acc *domain.Account) error {
	if uint64(acc.Lamports) > uint64(1<<63-1) {
		return domain.ErrorArithmeticOverflow
	}
	return nil
}
