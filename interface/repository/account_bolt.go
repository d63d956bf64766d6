package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"voteapp/domain"
	"voteapp/infrastructure/bolthandler"

	bolt "go.etcd.io/bbolt"
)

// BoltLedger keeps every account as a JSON document keyed by its address.
// Bolt runs one write transaction at a time and rolls it back when the
// function fails.
type BoltLedger struct {
	handler *bolthandler.BoltHandler
}

func NewBoltLedger(handler *bolthandler.BoltHandler) *BoltLedger {
	return &BoltLedger{handler: handler}
}

func (ledger *BoltLedger) Atomic(ctx context.Context, fn func(store domain.AccountStore) error) error {
	return ledger.handler.Update(ctx, func(tx *bolt.Tx) error {
		return fn(&boltAccountStore{bucket: tx.Bucket(bolthandler.BucketAccounts)})
	})
}

func (ledger *BoltLedger) View(ctx context.Context, fn func(store domain.AccountStore) error) error {
	return ledger.handler.View(ctx, func(tx *bolt.Tx) error {
		return fn(&boltAccountStore{bucket: tx.Bucket(bolthandler.BucketAccounts)})
	})
}

type boltAccountStore struct {
	bucket *bolt.Bucket
}

func decodeAccount(value []byte) (*domain.Account, error) {
	acc := &domain.Account{}
	if err := json.Unmarshal(value, acc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrorInvalidAccountData, err)
	}
	return acc, nil
}

func (store *boltAccountStore) Find(addr domain.Address) (*domain.Account, error) {
	value := store.bucket.Get(addr[:])
	if value == nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrorAccountNotFound, addr)
	}
	return decodeAccount(value)
}

func (store *boltAccountStore) Create(acc *domain.Account) error {
	if store.bucket.Get(acc.Address[:]) != nil {
		return fmt.Errorf("%w: %v", domain.ErrorAccountExists, acc.Address)
	}
	return store.Save(acc)
}

func (store *boltAccountStore) Save(acc *domain.Account) error {
	value, err := json.Marshal(acc)
	if err != nil {
		return err
	}
	return store.bucket.Put(acc.Address.Bytes(), value)
}

func (store *boltAccountStore) FindAllByKind(kind string) ([]*domain.Account, error) {
	list := make([]*domain.Account, 0)
	err := store.bucket.ForEach(func(_, value []byte) error {
		acc, err := decodeAccount(value)
		if err != nil {
			return err
		}
		if acc.Kind == kind {
			list = append(list, acc)
		}
		return nil
	})
	return list, err
}
