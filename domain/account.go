package domain

import (
	"encoding/json"
	"fmt"

	"github.com/tonkeeper/tongo/tlb"
)

const (
	KindSystem          = "system"
	KindTreasuryConfig  = "treasury_config"
	KindAssetMint       = "asset_mint"
	KindHolding         = "holding"
	KindVoter           = "voter"
	KindProposal        = "proposal"
	KindProposalCounter = "proposal_counter"
)

// Account is the unit of storage of the ledger runtime. Lamports is the
// native value held by the account, Data the owner program's record.
type Account struct {
	Address  Address         `json:"address"`
	Owner    Address         `json:"owner"`
	Lamports tlb.Grams       `json:"lamports"`
	Kind     string          `json:"kind"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// NewSystemAccount makes a data-less account that only holds native value.
func NewSystemAccount(addr Address) *Account {
	return &Account{
		Address: addr,
		Owner:   SystemProgramID,
		Kind:    KindSystem,
	}
}

func NewAccount(addr Address, owner Address, kind string, record interface{}) (*Account, error) {
	acc := &Account{
		Address: addr,
		Owner:   owner,
		Kind:    kind,
	}
	if err := acc.Store(record); err != nil {
		return nil, err
	}
	return acc, nil
}

// Load decodes the record of the account, after checking it holds a record
// of the expected kind.
func (a *Account) Load(kind string, record interface{}) error {
	if a.Kind != kind {
		return fmt.Errorf("%w: %v holds %q, expected %q", ErrorInvalidAccountData, a.Address, a.Kind, kind)
	}
	if err := json.Unmarshal(a.Data, record); err != nil {
		return fmt.Errorf("%w: %v", ErrorInvalidAccountData, err)
	}
	return nil
}

func (a *Account) Store(record interface{}) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrorInvalidAccountData, err)
	}
	a.Data = data
	return nil
}

func (a *Account) IsOwnedBy(program Address) bool {
	return a.Owner == program
}
