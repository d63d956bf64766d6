package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"voteapp/domain"
	"voteapp/domain/pda"
	"voteapp/domain/util"
	"voteapp/interface/exporter"

	"github.com/tonkeeper/tongo/tlb"
)

type InitializeTreasuryRequest struct {
	Authority           domain.Address
	Price               tlb.Grams
	IssuancePerPurchase uint64
	SupplyCap           uint64
}

type PurchaseResult struct {
	Buyer        domain.Address
	Holding      domain.Address
	Paid         tlb.Grams
	Issued       uint64
	HoldingTotal uint64
}

type TreasuryInteractor struct {
	ledger  domain.Ledger
	program *Program
}

func NewTreasuryInteractor(ledger domain.Ledger, program *Program) *TreasuryInteractor {
	interactor := &TreasuryInteractor{
		ledger:  ledger,
		program: program,
	}
	return interactor
}

// InitializeTreasury creates the treasury config, the asset mint and the
// authority's holding account, all paid for by the authority.
func (interactor *TreasuryInteractor) InitializeTreasury(ctx context.Context, request InitializeTreasuryRequest) (*domain.TreasuryConfig, error) {
	if request.Price == 0 || request.IssuancePerPurchase == 0 {
		return nil, domain.ErrorInvalidAmount
	}

	program := interactor.program
	configAddr, err := program.TreasuryConfigAddress()
	if err != nil {
		return nil, err
	}
	mintAddr, _, err := program.Derive(domain.Seeds(domain.SeedAssetMint))
	if err != nil {
		return nil, err
	}
	_, vaultBump, err := program.Derive(domain.Seeds(domain.SeedVault))
	if err != nil {
		return nil, err
	}
	mintAuthority, _, err := program.Derive(domain.Seeds(domain.SeedMintAuthority))
	if err != nil {
		return nil, err
	}
	holdingAddr, err := program.Asset.HoldingAddress(request.Authority, mintAddr)
	if err != nil {
		return nil, err
	}

	cfg := &domain.TreasuryConfig{
		Authority:            request.Authority,
		AssetMint:            mintAddr,
		TreasuryAssetAccount: holdingAddr,
		Price:                request.Price,
		IssuancePerPurchase:  request.IssuancePerPurchase,
		SupplyCap:            request.SupplyCap,
		VaultBump:            vaultBump,
	}

	err = interactor.ledger.Atomic(ctx, func(store domain.AccountStore) error {
		acc, err := domain.NewAccount(configAddr, program.ID, domain.KindTreasuryConfig, cfg)
		if err != nil {
			return err
		}
		if err := program.System.CreateAccount(store, request.Authority, acc, program.Rent); err != nil {
			return alreadyInitialized(err)
		}
		if err := program.Asset.CreateAssetType(store, request.Authority, mintAddr, mintAuthority, domain.AssetDecimals); err != nil {
			return alreadyInitialized(err)
		}
		_, err = program.Asset.CreateHoldingAccount(store, request.Authority, request.Authority, mintAddr)
		return err
	})
	if err != nil {
		log.Printf("🔴 initializing treasury [authority: %v] - %v\n", request.Authority, err.Error())
		exporter.IncErrorCount()
		return nil, err
	}

	log.Printf("🔵 treasury initialized [config: %v, mint: %v, price: %v, issuance: %v]\n",
		configAddr, mintAddr, util.LamportsString(cfg.Price), util.TokenString(cfg.IssuancePerPurchase, domain.AssetDecimals))
	return cfg, nil
}

// BuyTokens pays the configured price from buyer into the vault and issues
// the configured quantity into buyerHolding. Either both happen or neither.
func (interactor *TreasuryInteractor) BuyTokens(ctx context.Context, buyer domain.Address, buyerHolding domain.Address) (*PurchaseResult, error) {
	program := interactor.program
	var result *PurchaseResult

	err := interactor.ledger.Atomic(ctx, func(store domain.AccountStore) error {
		if !pda.IsWallet(buyer) {
			return fmt.Errorf("%w: buyer %v is a derived address", domain.ErrorNotWallet, buyer)
		}

		cfg, err := interactor.program.LoadTreasuryConfig(store)
		if err != nil {
			return err
		}

		holding, _, err := program.Asset.LoadHolding(store, buyerHolding)
		if err != nil {
			return err
		}
		if holding.Owner != buyer {
			return fmt.Errorf("%w: %v is owned by %v", domain.ErrorOwnerMismatch, buyerHolding, holding.Owner)
		}
		if holding.Mint != cfg.AssetMint {
			return fmt.Errorf("%w: %v holds %v", domain.ErrorMintMismatch, buyerHolding, holding.Mint)
		}

		if cfg.HasSupplyCap() {
			mint, _, err := program.Asset.LoadMint(store, cfg.AssetMint)
			if err != nil {
				return err
			}
			supply, err := util.AddUint64(mint.Supply, cfg.IssuancePerPurchase)
			if err != nil {
				return err
			}
			if supply > cfg.SupplyCap {
				return fmt.Errorf("%w: supply %d + %d > %d", domain.ErrorSupplyCapExceeded, mint.Supply, cfg.IssuancePerPurchase, cfg.SupplyCap)
			}
		}

		_, vault, err := program.VaultSigner(cfg)
		if err != nil {
			return err
		}
		if err := program.System.Transfer(store, buyer, vault, cfg.Price); err != nil {
			return err
		}

		signer, _, err := program.Signer(domain.Seeds(domain.SeedMintAuthority))
		if err != nil {
			return err
		}
		if err := program.Asset.Issue(store, cfg.AssetMint, buyerHolding, cfg.IssuancePerPurchase, signer); err != nil {
			return err
		}

		result = &PurchaseResult{
			Buyer:        buyer,
			Holding:      buyerHolding,
			Paid:         cfg.Price,
			Issued:       cfg.IssuancePerPurchase,
			HoldingTotal: holding.Amount + cfg.IssuancePerPurchase,
		}
		return nil
	})
	if err != nil {
		log.Printf("🔴 buying tokens [buyer: %v] - %v\n", buyer, err.Error())
		exporter.IncErrorCount()
		return nil, err
	}

	exporter.IncPurchaseCount(result.Issued)
	return result, nil
}

// WithdrawVault moves native value from the vault to the treasury authority.
func (interactor *TreasuryInteractor) WithdrawVault(ctx context.Context, authority domain.Address, amount tlb.Grams) (tlb.Grams, error) {
	if amount == 0 {
		return 0, domain.ErrorInvalidAmount
	}

	program := interactor.program
	var remaining tlb.Grams

	err := interactor.ledger.Atomic(ctx, func(store domain.AccountStore) error {
		cfg, err := interactor.program.LoadTreasuryConfig(store)
		if err != nil {
			return err
		}
		if cfg.Authority != authority {
			return fmt.Errorf("%w: %v", domain.ErrorUnauthorized, authority)
		}

		signer, vault, err := program.VaultSigner(cfg)
		if err != nil {
			return err
		}
		if err := program.System.TransferSigned(store, signer, vault, authority, amount); err != nil {
			return err
		}

		remaining, err = program.System.Balance(store, vault)
		return err
	})
	if err != nil {
		log.Printf("🔴 withdrawing from vault [authority: %v] - %v\n", authority, err.Error())
		exporter.IncErrorCount()
		return 0, err
	}

	exporter.AddWithdrawn(uint64(amount))
	return remaining, nil
}

// OpenHoldingAccount creates the holding account of owner for the treasury
// asset. It fails with ErrorAccountExists when owner already has one.
func (interactor *TreasuryInteractor) OpenHoldingAccount(ctx context.Context, owner domain.Address) (domain.Address, error) {
	var addr domain.Address

	err := interactor.ledger.Atomic(ctx, func(store domain.AccountStore) error {
		cfg, err := interactor.program.LoadTreasuryConfig(store)
		if err != nil {
			return err
		}
		addr, err = interactor.program.Asset.CreateHoldingAccount(store, owner, owner, cfg.AssetMint)
		return err
	})
	if err != nil {
		log.Printf("🔴 opening holding account [owner: %v] - %v\n", owner, err.Error())
		exporter.IncErrorCount()
		return domain.Address{}, err
	}

	return addr, nil
}

func (interactor *TreasuryInteractor) GetTreasury(ctx context.Context) (*domain.TreasuryInfo, error) {
	program := interactor.program
	var info *domain.TreasuryInfo

	err := interactor.ledger.View(ctx, func(store domain.AccountStore) error {
		cfg, err := interactor.program.LoadTreasuryConfig(store)
		if err != nil {
			return err
		}
		configAddr, err := program.TreasuryConfigAddress()
		if err != nil {
			return err
		}
		_, vault, err := program.VaultSigner(cfg)
		if err != nil {
			return err
		}
		_, mintAuthority, err := program.Signer(domain.Seeds(domain.SeedMintAuthority))
		if err != nil {
			return err
		}
		balance, err := program.System.Balance(store, vault)
		if err != nil {
			return err
		}
		mint, _, err := program.Asset.LoadMint(store, cfg.AssetMint)
		if err != nil {
			return err
		}

		info = &domain.TreasuryInfo{
			Address:       configAddr,
			Vault:         vault,
			MintAuthority: mintAuthority,
			Config:        *cfg,
			VaultBalance:  balance,
			Supply:        mint.Supply,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return info, nil
}

// GetHolding returns a holding account of the treasury asset.
func (interactor *TreasuryInteractor) GetHolding(ctx context.Context, addr domain.Address) (*domain.HoldingAccount, error) {
	var holding *domain.HoldingAccount
	err := interactor.ledger.View(ctx, func(store domain.AccountStore) error {
		var err error
		holding, _, err = interactor.program.Asset.LoadHolding(store, addr)
		return err
	})
	return holding, err
}

// HoldingAddress is the holding account of owner for the treasury asset.
func (interactor *TreasuryInteractor) HoldingAddress(owner domain.Address) (domain.Address, error) {
	mint, _, err := interactor.program.Derive(domain.Seeds(domain.SeedAssetMint))
	if err != nil {
		return mint, err
	}
	return interactor.program.Asset.HoldingAddress(owner, mint)
}

func alreadyInitialized(err error) error {
	if errors.Is(err, domain.ErrorAccountExists) {
		return fmt.Errorf("%w: %v", domain.ErrorAlreadyInitialized, err)
	}
	return err
}
