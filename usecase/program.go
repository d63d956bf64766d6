package usecase

import (
	"errors"
	"fmt"

	"voteapp/domain"
	"voteapp/domain/pda"

	"github.com/tonkeeper/tongo/tlb"
)

// Program is the identity of the deployed treasury program together with
// the sub-ledgers it calls into.
type Program struct {
	ID     domain.Address
	Rent   tlb.Grams
	System SystemProgram
	Asset  AssetProgram
}

func NewProgram(id domain.Address, rent tlb.Grams) *Program {
	system := SystemProgram{}
	return &Program{
		ID:     id,
		Rent:   rent,
		System: system,
		Asset:  AssetProgram{system: system, rent: rent},
	}
}

// Derive returns the address and bump of seeds under the program. A failure
// means the deployment is misconfigured and must not be retried.
func (p *Program) Derive(seeds [][]byte) (domain.Address, uint8, error) {
	addr, bump, err := pda.FindProgramAddress(seeds, p.ID)
	if err != nil {
		return addr, bump, fmt.Errorf("deriving program address: %w", err)
	}
	return addr, bump, nil
}

func (p *Program) Signer(seeds [][]byte) (pda.Signer, domain.Address, error) {
	signer, addr, err := pda.FindSigner(p.ID, seeds)
	if err != nil {
		return signer, addr, fmt.Errorf("deriving program signer: %w", err)
	}
	return signer, addr, nil
}

func (p *Program) TreasuryConfigAddress() (domain.Address, error) {
	addr, _, err := p.Derive(domain.Seeds(domain.SeedTreasuryConfig))
	return addr, err
}

func (p *Program) VoterAddress(identity domain.Address) (domain.Address, error) {
	addr, _, err := p.Derive(domain.VoterSeeds(identity))
	return addr, err
}

func (p *Program) ProposalAddress(id uint64) (domain.Address, error) {
	addr, _, err := p.Derive(domain.ProposalSeeds(id))
	return addr, err
}

func (p *Program) ProposalCounterAddress() (domain.Address, error) {
	addr, _, err := p.Derive(domain.Seeds(domain.SeedProposalCounter))
	return addr, err
}

// VaultSigner rebuilds the vault signer from the bump kept in the treasury
// config.
func (p *Program) VaultSigner(cfg *domain.TreasuryConfig) (pda.Signer, domain.Address, error) {
	signer := pda.Signer{ProgramID: p.ID, Seeds: domain.Seeds(domain.SeedVault), Bump: cfg.VaultBump}
	addr, err := signer.Address()
	if err != nil {
		return signer, addr, fmt.Errorf("%w: vault bump %d", domain.ErrorAuthorityProofMismatch, cfg.VaultBump)
	}
	return signer, addr, nil
}

// LoadTreasuryConfig fails with ErrorTreasuryNotInitialized until the
// treasury is initialized.
func (p *Program) LoadTreasuryConfig(store domain.AccountStore) (*domain.TreasuryConfig, error) {
	addr, err := p.TreasuryConfigAddress()
	if err != nil {
		return nil, err
	}
	cfg := &domain.TreasuryConfig{}
	_, err = loadRecord(store, addr, p.ID, domain.KindTreasuryConfig, cfg)
	if errors.Is(err, domain.ErrorAccountNotFound) {
		return nil, domain.ErrorTreasuryNotInitialized
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadRecord reads the account at addr and decodes its record, checking the
// account belongs to owner and holds the expected kind.
func loadRecord(store domain.AccountStore, addr domain.Address, owner domain.Address, kind string, record interface{}) (*domain.Account, error) {
	acc, err := store.Find(addr)
	if err != nil {
		return nil, err
	}
	if !acc.IsOwnedBy(owner) {
		return nil, fmt.Errorf("%w: %v is owned by %v", domain.ErrorInvalidAccountData, addr, acc.Owner)
	}
	if err := acc.Load(kind, record); err != nil {
		return nil, err
	}
	return acc, nil
}

func saveRecord(store domain.AccountStore, acc *domain.Account, record interface{}) error {
	if err := acc.Store(record); err != nil {
		return err
	}
	return store.Save(acc)
}

// LoadVoter fails with ErrorVoterNotRegistered for unknown identities.
func (p *Program) LoadVoter(store domain.AccountStore, identity domain.Address) (*domain.Voter, *domain.Account, error) {
	addr, err := p.VoterAddress(identity)
	if err != nil {
		return nil, nil, err
	}
	voter := &domain.Voter{}
	acc, err := loadRecord(store, addr, p.ID, domain.KindVoter, voter)
	if errors.Is(err, domain.ErrorAccountNotFound) {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrorVoterNotRegistered, identity)
	}
	if err != nil {
		return nil, nil, err
	}
	return voter, acc, nil
}

// LoadProposal fails with ErrorProposalNotFound for unknown ids.
func (p *Program) LoadProposal(store domain.AccountStore, id uint64) (*domain.Proposal, *domain.Account, error) {
	addr, err := p.ProposalAddress(id)
	if err != nil {
		return nil, nil, err
	}
	proposal := &domain.Proposal{}
	acc, err := loadRecord(store, addr, p.ID, domain.KindProposal, proposal)
	if errors.Is(err, domain.ErrorAccountNotFound) {
		return nil, nil, fmt.Errorf("%w: %d", domain.ErrorProposalNotFound, id)
	}
	if err != nil {
		return nil, nil, err
	}
	return proposal, acc, nil
}
