package domain

import "github.com/tonkeeper/tongo/tlb"

// TreasuryConfig is the singleton record written once by treasury
// initialization.
type TreasuryConfig struct {
	Authority            Address   `json:"authority"`
	AssetMint            Address   `json:"asset_mint"`
	TreasuryAssetAccount Address   `json:"treasury_asset_account"`
	Price                tlb.Grams `json:"price"`
	IssuancePerPurchase  uint64    `json:"issuance_per_purchase"`

	// SupplyCap bounds the total issued supply. Zero means unlimited.
	SupplyCap uint64 `json:"supply_cap"`

	// VaultBump is the derivation proof of the vault address.
	VaultBump uint8 `json:"vault_bump"`
}

func (c *TreasuryConfig) HasSupplyCap() bool {
	return c.SupplyCap > 0
}

// TreasuryInfo is the treasury config together with the live balances.
type TreasuryInfo struct {
	Address       Address        `json:"address"`
	Vault         Address        `json:"vault"`
	MintAuthority Address        `json:"mint_authority"`
	Config        TreasuryConfig `json:"config"`
	VaultBalance  tlb.Grams      `json:"vault_balance"`
	Supply        uint64         `json:"supply"`
}
