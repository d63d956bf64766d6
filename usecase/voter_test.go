package usecase

import (
	"testing"

	"voteapp/domain"

	"github.com/stretchr/testify/suite"
)

type VoterSuite struct {
	ledgerSuite
}

func TestVoterSuite(t *testing.T) {
	suite.Run(t, new(VoterSuite))
}

func (s *VoterSuite) TestRegisterTwiceFails() {
	identity := testAddress(4)
	s.fund(identity, 2*testRent)

	voter, err := s.voters.RegisterVoter(s.ctx, identity)
	s.Require().NoError(err)
	s.Empty(voter.ProposalsVoted)

	_, err = s.voters.RegisterVoter(s.ctx, identity)
	s.ErrorIs(err, domain.ErrorAlreadyRegistered)

	stored, err := s.voters.GetVoter(s.ctx, identity)
	s.Require().NoError(err)
	s.Equal(identity, stored.Identity)
	s.Empty(stored.ProposalsVoted)
	s.Equal(testRent, s.balance(identity))
}

func (s *VoterSuite) TestRegisterChargesRent() {
	identity := testAddress(5)

	_, err := s.voters.RegisterVoter(s.ctx, identity)
	s.ErrorIs(err, domain.ErrorInsufficientFunds)

	_, err = s.voters.GetVoter(s.ctx, identity)
	s.ErrorIs(err, domain.ErrorVoterNotRegistered)
}

func (s *VoterSuite) TestVoterAddressIsDerived() {
	identity := testAddress(6)
	s.registerVoter(identity)

	addr, err := s.program.VoterAddress(identity)
	s.Require().NoError(err)

	err = s.ledger.View(s.ctx, func(store domain.AccountStore) error {
		acc, err := store.Find(addr)
		if err != nil {
			return err
		}
		s.Equal(domain.KindVoter, acc.Kind)
		s.Equal(s.program.ID, acc.Owner)
		s.Equal(testRent, acc.Lamports)
		return nil
	})
	s.Require().NoError(err)
}
