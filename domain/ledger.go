package domain

import "context"

// AccountStore is the view of the ledger inside one transaction.
type AccountStore interface {
	// Find returns ErrorAccountNotFound when nothing is stored at addr.
	Find(addr Address) (*Account, error)

	// Create stores a new account. It fails with ErrorAccountExists when the
	// address is taken.
	Create(acc *Account) error

	Save(acc *Account) error

	FindAllByKind(kind string) ([]*Account, error)
}

// Ledger is the host runtime. Every call to Atomic is one all-or-nothing
// transaction: when fn returns an error none of its writes persist.
// Transactions writing the same account are serialized.
type Ledger interface {
	Atomic(ctx context.Context, fn func(store AccountStore) error) error
	View(ctx context.Context, fn func(store AccountStore) error) error
}
