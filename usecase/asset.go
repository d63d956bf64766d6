package usecase

import (
	"fmt"

	"voteapp/domain"
	"voteapp/domain/pda"
	"voteapp/domain/util"

	"github.com/tonkeeper/tongo/tlb"
)

// AssetProgram is the asset sub-ledger. Mints and holding accounts are owned
// by domain.AssetProgramID.
type AssetProgram struct {
	system SystemProgram
	rent   tlb.Grams
}

func (ap AssetProgram) CreateAssetType(store domain.AccountStore, payer, mint, authority domain.Address, decimals uint8) error {
	acc, err := domain.NewAccount(mint, domain.AssetProgramID, domain.KindAssetMint, &domain.AssetMint{
		Authority: authority,
		Decimals:  decimals,
	})
	if err != nil {
		return err
	}
	return ap.system.CreateAccount(store, payer, acc, ap.rent)
}

// HoldingAddress is the canonical holding account of owner for mint.
func (ap AssetProgram) HoldingAddress(owner, mint domain.Address) (domain.Address, error) {
	addr, _, err := pda.FindProgramAddress(domain.HoldingSeeds(owner, mint), domain.AssetProgramID)
	if err != nil {
		return addr, fmt.Errorf("deriving holding address: %w", err)
	}
	return addr, nil
}

func (ap AssetProgram) CreateHoldingAccount(store domain.AccountStore, payer, owner, mint domain.Address) (domain.Address, error) {
	if _, _, err := ap.LoadMint(store, mint); err != nil {
		return domain.Address{}, err
	}
	addr, err := ap.HoldingAddress(owner, mint)
	if err != nil {
		return addr, err
	}
	acc, err := domain.NewAccount(addr, domain.AssetProgramID, domain.KindHolding, &domain.HoldingAccount{
		Mint:  mint,
		Owner: owner,
	})
	if err != nil {
		return addr, err
	}
	return addr, ap.system.CreateAccount(store, payer, acc, ap.rent)
}

func (ap AssetProgram) LoadMint(store domain.AccountStore, addr domain.Address) (*domain.AssetMint, *domain.Account, error) {
	mint := &domain.AssetMint{}
	acc, err := loadRecord(store, addr, domain.AssetProgramID, domain.KindAssetMint, mint)
	if err != nil {
		return nil, nil, fmt.Errorf("loading mint %v: %w", addr, err)
	}
	return mint, acc, nil
}

func (ap AssetProgram) LoadHolding(store domain.AccountStore, addr domain.Address) (*domain.HoldingAccount, *domain.Account, error) {
	holding := &domain.HoldingAccount{}
	acc, err := loadRecord(store, addr, domain.AssetProgramID, domain.KindHolding, holding)
	if err != nil {
		return nil, nil, fmt.Errorf("loading holding account %v: %w", addr, err)
	}
	return holding, acc, nil
}

// Issue creates amount new units of mint into the holding account to. The
// signer must prove it is the mint authority.
func (ap AssetProgram) Issue(store domain.AccountStore, mintAddr, to domain.Address, amount uint64, signer pda.Signer) error {
	mint, mintAcc, err := ap.LoadMint(store, mintAddr)
	if err != nil {
		return err
	}
	if !signer.Authorizes(mint.Authority) {
		return fmt.Errorf("%w: signer is not the authority of mint %v", domain.ErrorAuthorityProofMismatch, mintAddr)
	}

	holding, holdingAcc, err := ap.LoadHolding(store, to)
	if err != nil {
		return err
	}
	if holding.Mint != mintAddr {
		return fmt.Errorf("%w: %v holds %v", domain.ErrorMintMismatch, to, holding.Mint)
	}

	if mint.Supply, err = util.AddUint64(mint.Supply, amount); err != nil {
		return fmt.Errorf("mint supply: %w", err)
	}
	if holding.Amount, err = util.AddUint64(holding.Amount, amount); err != nil {
		return fmt.Errorf("holding balance: %w", err)
	}

	if err := saveRecord(store, mintAcc, mint); err != nil {
		return err
	}
	return saveRecord(store, holdingAcc, holding)
}

// Transfer moves amount units between two holding accounts of the same mint.
// owner must own the source account.
func (ap AssetProgram) Transfer(store domain.AccountStore, from, to, owner domain.Address, amount uint64) error {
	src, srcAcc, err := ap.LoadHolding(store, from)
	if err != nil {
		return err
	}
	if src.Owner != owner {
		return fmt.Errorf("%w: %v is owned by %v", domain.ErrorOwnerMismatch, from, src.Owner)
	}
	if amount == 0 || from == to {
		return nil
	}

	dst, dstAcc, err := ap.LoadHolding(store, to)
	if err != nil {
		return err
	}
	if src.Mint != dst.Mint {
		return fmt.Errorf("%w: %v holds %v, %v holds %v", domain.ErrorMintMismatch, from, src.Mint, to, dst.Mint)
	}
	if src.Amount < amount {
		return fmt.Errorf("%w: %v holds %d units, needs %d", domain.ErrorInsufficientFunds, from, src.Amount, amount)
	}

	src.Amount -= amount
	if dst.Amount, err = util.AddUint64(dst.Amount, amount); err != nil {
		return err
	}

	if err := saveRecord(store, srcAcc, src); err != nil {
		return err
	}
	return saveRecord(store, dstAcc, dst)
}
