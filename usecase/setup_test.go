package usecase

import (
	"context"
	"path/filepath"
	"time"

	"voteapp/domain"
	"voteapp/infrastructure/bolthandler"
	"voteapp/interface/repository"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"github.com/stretchr/testify/suite"
	"github.com/tonkeeper/tongo/tlb"
)

const (
	testRent     = tlb.Grams(1_000)
	testPrice    = tlb.Grams(100_000_000)
	testIssuance = uint64(5_000_000)
)

// ledgerSuite runs every test on a fresh bolt ledger with a settable clock.
type ledgerSuite struct {
	suite.Suite

	ctx     context.Context
	handler *bolthandler.BoltHandler
	ledger  domain.Ledger
	program *Program
	now     time.Time

	treasury  *TreasuryInteractor
	voters    *VoterInteractor
	proposals *ProposalInteractor

	authority domain.Address
	buyer     domain.Address
}

func (s *ledgerSuite) SetupTest() {
	handler, err := bolthandler.Open(filepath.Join(s.T().TempDir(), "ledger.db"))
	s.Require().NoError(err)

	s.ctx = context.Background()
	s.handler = handler
	s.ledger = repository.NewBoltLedger(handler)
	s.program = NewProgram(testAddress(0xA0), testRent)
	s.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	s.treasury = NewTreasuryInteractor(s.ledger, s.program)
	s.voters = NewVoterInteractor(s.ledger, s.program)
	s.proposals = NewProposalInteractor(s.ledger, s.program, 0, 280, func() time.Time { return s.now })

	s.authority = testAddress(1)
	s.buyer = testAddress(2)
}

func (s *ledgerSuite) TearDownTest() {
	s.Require().NoError(s.handler.Close())
}

func (s *ledgerSuite) fund(addr domain.Address, amount tlb.Grams) {
	err := s.ledger.Atomic(s.ctx, func(store domain.AccountStore) error {
		return s.program.System.Airdrop(store, addr, amount)
	})
	s.Require().NoError(err)
}

func (s *ledgerSuite) balance(addr domain.Address) tlb.Grams {
	var balance tlb.Grams
	err := s.ledger.View(s.ctx, func(store domain.AccountStore) error {
		var err error
		balance, err = s.program.System.Balance(store, addr)
		return err
	})
	s.Require().NoError(err)
	return balance
}

func (s *ledgerSuite) initTreasury(supplyCap uint64) *domain.TreasuryConfig {
	s.fund(s.authority, 10*testRent)
	cfg, err := s.treasury.InitializeTreasury(s.ctx, InitializeTreasuryRequest{
		Authority:           s.authority,
		Price:               testPrice,
		IssuancePerPurchase: testIssuance,
		SupplyCap:           supplyCap,
	})
	s.Require().NoError(err)
	return cfg
}

func (s *ledgerSuite) openHolding(owner domain.Address) domain.Address {
	s.fund(owner, testRent)
	addr, err := s.treasury.OpenHoldingAccount(s.ctx, owner)
	s.Require().NoError(err)
	return addr
}

func (s *ledgerSuite) holdingAmount(addr domain.Address) uint64 {
	holding, err := s.treasury.GetHolding(s.ctx, addr)
	s.Require().NoError(err)
	return holding.Amount
}

func (s *ledgerSuite) registerVoter(identity domain.Address) {
	s.fund(identity, testRent)
	_, err := s.voters.RegisterVoter(s.ctx, identity)
	s.Require().NoError(err)
}

// testAddress is the public key of a deterministic wallet, so it lies on the
// curve like any key-controlled address.
func testAddress(n byte) domain.Address {
	seed := make([]byte, ed25519.SeedSize)
	seed[0] = n
	key := ed25519.NewKeyFromSeed(seed)
	addr, err := domain.AddressFromBytes(key.Public().(ed25519.PublicKey))
	if err != nil {
		panic(err)
	}
	return addr
}
