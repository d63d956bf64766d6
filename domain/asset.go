package domain

// AssetDecimals is the fixed precision of the issued asset.
const AssetDecimals = 6

type AssetMint struct {
	Authority Address `json:"authority"`
	Decimals  uint8   `json:"decimals"`
	Supply    uint64  `json:"supply"`
}

type HoldingAccount struct {
	Mint   Address `json:"mint"`
	Owner  Address `json:"owner"`
	Amount uint64  `json:"amount"`
}
