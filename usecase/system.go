package usecase

import (
	"errors"
	"fmt"

	"voteapp/domain"
	"voteapp/domain/pda"
	"voteapp/domain/util"

	"github.com/tonkeeper/tongo/tlb"
)

// SystemProgram is the native-value sub-ledger. Signatures of wallet
// accounts are checked by whoever submits the transaction; derived accounts
// can only be debited with a signer proof.
type SystemProgram struct{}

// Balance returns zero for accounts that were never funded.
func (SystemProgram) Balance(store domain.AccountStore, addr domain.Address) (tlb.Grams, error) {
	acc, err := store.Find(addr)
	if errors.Is(err, domain.ErrorAccountNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return acc.Lamports, nil
}

// Transfer moves amount from a wallet account to another account, which is
// created when it does not exist yet. Derived addresses can only be debited
// through TransferSigned.
func (sp SystemProgram) Transfer(store domain.AccountStore, from, to domain.Address, amount tlb.Grams) error {
	if !pda.IsWallet(from) {
		return fmt.Errorf("%w: %v is a derived address", domain.ErrorNotWallet, from)
	}
	return sp.transfer(store, from, to, amount)
}

// TransferSigned debits a derived account. The signer must prove authority
// over from.
func (sp SystemProgram) TransferSigned(store domain.AccountStore, signer pda.Signer, from, to domain.Address, amount tlb.Grams) error {
	if !signer.Authorizes(from) {
		return fmt.Errorf("%w: signer does not derive %v", domain.ErrorAuthorityProofMismatch, from)
	}
	return sp.transfer(store, from, to, amount)
}

// Airdrop creates native value out of thin air. It exists for local ledgers
// and tests.
func (sp SystemProgram) Airdrop(store domain.AccountStore, to domain.Address, amount tlb.Grams) error {
	if amount == 0 {
		return domain.ErrorInvalidAmount
	}
	return sp.credit(store, to, amount)
}

// CreateAccount stores acc at its address, funded with rent paid by payer.
// An address that only holds native value may be taken over; any other
// occupied address fails with ErrorAccountExists.
func (sp SystemProgram) CreateAccount(store domain.AccountStore, payer domain.Address, acc *domain.Account, rent tlb.Grams) error {
	existing, err := store.Find(acc.Address)
	switch {
	case err == nil && existing.Kind != domain.KindSystem:
		return fmt.Errorf("%w: %v", domain.ErrorAccountExists, acc.Address)
	case err == nil:
		acc.Lamports = existing.Lamports
	case errors.Is(err, domain.ErrorAccountNotFound):
		existing = nil
	default:
		return err
	}

	if rent > 0 {
		if !pda.IsWallet(payer) {
			return fmt.Errorf("%w: payer %v is a derived address", domain.ErrorNotWallet, payer)
		}
		if err := sp.debit(store, payer, rent); err != nil {
			return err
		}
		if acc.Lamports, err = util.AddGrams(acc.Lamports, rent); err != nil {
			return err
		}
	}

	if existing != nil {
		return store.Save(acc)
	}
	return store.Create(acc)
}

func (sp SystemProgram) transfer(store domain.AccountStore, from, to domain.Address, amount tlb.Grams) error {
	if amount == 0 {
		return nil
	}
	if from == to {
		_, err := sp.debitable(store, from, amount)
		return err
	}
	if err := sp.debit(store, from, amount); err != nil {
		return err
	}
	return sp.credit(store, to, amount)
}

// debitable returns the source account when it is a data-less system account
// holding at least amount. Program records keep their lamports.
func (sp SystemProgram) debitable(store domain.AccountStore, from domain.Address, amount tlb.Grams) (*domain.Account, error) {
	src, err := store.Find(from)
	if errors.Is(err, domain.ErrorAccountNotFound) {
		return nil, fmt.Errorf("%w: %v has no balance", domain.ErrorInsufficientFunds, from)
	}
	if err != nil {
		return nil, err
	}
	if src.Kind != domain.KindSystem || !src.IsOwnedBy(domain.SystemProgramID) {
		return nil, fmt.Errorf("%w: %v holds a %q record", domain.ErrorNotWallet, from, src.Kind)
	}
	if src.Lamports < amount {
		return nil, fmt.Errorf("%w: %v holds %d, needs %d", domain.ErrorInsufficientFunds, from, src.Lamports, amount)
	}
	return src, nil
}

func (sp SystemProgram) debit(store domain.AccountStore, from domain.Address, amount tlb.Grams) error {
	src, err := sp.debitable(store, from, amount)
	if err != nil {
		return err
	}
	src.Lamports -= amount
	return store.Save(src)
}

func (sp SystemProgram) credit(store domain.AccountStore, to domain.Address, amount tlb.Grams) error {
	dst, err := store.Find(to)
	created := false
	if errors.Is(err, domain.ErrorAccountNotFound) {
		dst, created = domain.NewSystemAccount(to), true
	} else if err != nil {
		return err
	}

	if dst.Lamports, err = util.AddGrams(dst.Lamports, amount); err != nil {
		return err
	}
	if created {
		return store.Create(dst)
	}
	return store.Save(dst)
}
