package usecase

import (
	"strings"
	"testing"
	"time"

	"voteapp/domain"

	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

type ProposalSuite struct {
	ledgerSuite

	creator domain.Address
}

func TestProposalSuite(t *testing.T) {
	suite.Run(t, new(ProposalSuite))
}

func (s *ProposalSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.creator = testAddress(10)
	s.registerVoter(s.creator)
	s.fund(s.creator, 100*testRent)
}

func (s *ProposalSuite) register(description string, lifetime time.Duration) *domain.Proposal {
	proposal, err := s.proposals.RegisterProposal(s.ctx, RegisterProposalRequest{
		Creator:     s.creator,
		Description: description,
		Deadline:    s.now.Add(lifetime),
	})
	s.Require().NoError(err)
	return proposal
}

func (s *ProposalSuite) TestRegisterAssignsSequentialIds() {
	first := s.register("fund the bridge", time.Hour)
	second := s.register("repaint the hall", time.Hour)

	s.Equal(uint64(0), first.ID)
	s.Equal(uint64(1), second.ID)
	s.Equal(domain.ProposalStateOpen, second.State(s.now))

	stored, err := s.proposals.GetProposal(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("repaint the hall", stored.Description)
	s.Equal(s.creator, stored.Creator)
	s.True(stored.Deadline.Equal(s.now.Add(time.Hour)))
	s.Zero(stored.VoteCount)

	proposals, err := s.proposals.ListProposals(s.ctx)
	s.Require().NoError(err)
	s.Len(proposals, 2)
	s.Equal(uint64(0), proposals[0].ID)
}

func (s *ProposalSuite) TestRegisterValidation() {
	request := RegisterProposalRequest{Creator: s.creator, Description: "x", Deadline: s.now}
	_, err := s.proposals.RegisterProposal(s.ctx, request)
	s.ErrorIs(err, domain.ErrorInvalidDeadline)

	request.Deadline = s.now.Add(time.Minute)
	request.Description = ""
	_, err = s.proposals.RegisterProposal(s.ctx, request)
	s.ErrorIs(err, domain.ErrorEmptyDescription)

	request.Description = strings.Repeat("a", 281)
	_, err = s.proposals.RegisterProposal(s.ctx, request)
	s.ErrorIs(err, domain.ErrorDescriptionTooLong)

	request.Description = "from nobody"
	request.Creator = testAddress(11)
	_, err = s.proposals.RegisterProposal(s.ctx, request)
	s.ErrorIs(err, domain.ErrorVoterNotRegistered)

	_, err = s.proposals.GetProposal(s.ctx, 0)
	s.ErrorIs(err, domain.ErrorProposalNotFound)
}

func (s *ProposalSuite) TestRegisterLocksStake() {
	s.initTreasury(0)
	holding := s.openHolding(s.creator)
	s.fund(s.creator, testPrice)
	_, err := s.treasury.BuyTokens(s.ctx, s.creator, holding)
	s.Require().NoError(err)

	stake := testIssuance / 5
	staking := NewProposalInteractor(s.ledger, s.program, stake, 280, func() time.Time { return s.now })

	proposal, err := staking.RegisterProposal(s.ctx, RegisterProposalRequest{
		Creator:     s.creator,
		Description: "staked",
		Deadline:    s.now.Add(time.Hour),
	})
	s.Require().NoError(err)
	s.Equal(stake, proposal.Stake)

	info, err := s.treasury.GetTreasury(s.ctx)
	s.Require().NoError(err)
	s.Equal(testIssuance-stake, s.holdingAmount(holding))
	s.Equal(stake, s.holdingAmount(info.Config.TreasuryAssetAccount))
}

func (s *ProposalSuite) TestRegisterWithoutStakeFails() {
	s.initTreasury(0)
	s.openHolding(s.creator)

	staking := NewProposalInteractor(s.ledger, s.program, 1, 280, func() time.Time { return s.now })
	_, err := staking.RegisterProposal(s.ctx, RegisterProposalRequest{
		Creator:     s.creator,
		Description: "unfunded",
		Deadline:    s.now.Add(time.Hour),
	})
	s.ErrorIs(err, domain.ErrorInsufficientFunds)

	proposals, err := s.proposals.ListProposals(s.ctx)
	s.Require().NoError(err)
	s.Empty(proposals)
}

func (s *ProposalSuite) TestCastVote() {
	proposal := s.register("vote on me", time.Hour)
	voter := testAddress(20)
	s.registerVoter(voter)

	updated, err := s.proposals.CastVote(s.ctx, voter, proposal.ID)
	s.Require().NoError(err)
	s.Equal(uint64(1), updated.VoteCount)

	stored, err := s.voters.GetVoter(s.ctx, voter)
	s.Require().NoError(err)
	s.Equal([]uint64{proposal.ID}, stored.ProposalsVoted)
}

func (s *ProposalSuite) TestCastVoteTwiceFails() {
	proposal := s.register("once", time.Hour)
	voter := testAddress(21)
	s.registerVoter(voter)

	_, err := s.proposals.CastVote(s.ctx, voter, proposal.ID)
	s.Require().NoError(err)
	_, err = s.proposals.CastVote(s.ctx, voter, proposal.ID)
	s.ErrorIs(err, domain.ErrorAlreadyVoted)

	stored, err := s.proposals.GetProposal(s.ctx, proposal.ID)
	s.Require().NoError(err)
	s.Equal(uint64(1), stored.VoteCount)
}

func (s *ProposalSuite) TestCastVoteAfterDeadlineFails() {
	proposal := s.register("short lived", time.Hour)
	voter := testAddress(22)
	s.registerVoter(voter)

	s.now = s.now.Add(time.Hour)
	_, err := s.proposals.CastVote(s.ctx, voter, proposal.ID)
	s.ErrorIs(err, domain.ErrorDeadlinePassed)

	stored, err := s.proposals.GetProposal(s.ctx, proposal.ID)
	s.Require().NoError(err)
	s.Zero(stored.VoteCount)
	s.Equal(domain.ProposalStateClosed, stored.State(s.now))

	registered, err := s.voters.GetVoter(s.ctx, voter)
	s.Require().NoError(err)
	s.Empty(registered.ProposalsVoted)
}

func (s *ProposalSuite) TestCastVoteErrorOrder() {
	proposal := s.register("ordered", time.Hour)
	stranger := testAddress(23)

	_, err := s.proposals.CastVote(s.ctx, stranger, 99)
	s.ErrorIs(err, domain.ErrorVoterNotRegistered)

	s.registerVoter(stranger)
	_, err = s.proposals.CastVote(s.ctx, stranger, 99)
	s.ErrorIs(err, domain.ErrorProposalNotFound)

	_, err = s.proposals.CastVote(s.ctx, stranger, proposal.ID)
	s.Require().NoError(err)

	s.now = proposal.Deadline
	_, err = s.proposals.CastVote(s.ctx, stranger, proposal.ID)
	s.ErrorIs(err, domain.ErrorDeadlinePassed)
}

func (s *ProposalSuite) TestConcurrentVotes() {
	proposal := s.register("popular", time.Hour)

	voters := make([]domain.Address, 8)
	for i := range voters {
		voters[i] = testAddress(byte(30 + i))
		s.registerVoter(voters[i])
	}

	var group errgroup.Group
	for _, voter := range voters {
		voter := voter
		group.Go(func() error {
			_, err := s.proposals.CastVote(s.ctx, voter, proposal.ID)
			return err
		})
	}
	s.Require().NoError(group.Wait())

	stored, err := s.proposals.GetProposal(s.ctx, proposal.ID)
	s.Require().NoError(err)
	s.Equal(uint64(len(voters)), stored.VoteCount)
}

func (s *ProposalSuite) TestPickWinner() {
	_, err := s.proposals.PickWinner(s.ctx)
	s.ErrorIs(err, domain.ErrorProposalNotFound)

	first := s.register("first", time.Hour)
	second := s.register("second", time.Hour)
	third := s.register("third", 3*time.Hour)

	for i, id := range []uint64{first.ID, second.ID, second.ID, third.ID, third.ID, third.ID} {
		voter := testAddress(byte(50 + i))
		s.registerVoter(voter)
		_, err := s.proposals.CastVote(s.ctx, voter, id)
		s.Require().NoError(err)
	}

	_, err = s.proposals.PickWinner(s.ctx)
	s.ErrorIs(err, domain.ErrorProposalNotFound)

	s.now = s.now.Add(2 * time.Hour)
	winner, err := s.proposals.PickWinner(s.ctx)
	s.Require().NoError(err)
	s.Equal(second.ID, winner.ID)

	s.now = s.now.Add(2 * time.Hour)
	winner, err = s.proposals.PickWinner(s.ctx)
	s.Require().NoError(err)
	s.Equal(third.ID, winner.ID)
}

func (s *ProposalSuite) TestPickWinnerTieGoesToLowestId() {
	first := s.register("first", time.Hour)
	second := s.register("second", time.Hour)

	for i, id := range []uint64{second.ID, first.ID} {
		voter := testAddress(byte(70 + i))
		s.registerVoter(voter)
		_, err := s.proposals.CastVote(s.ctx, voter, id)
		s.Require().NoError(err)
	}

	s.now = s.now.Add(time.Hour)
	winner, err := s.proposals.PickWinner(s.ctx)
	s.Require().NoError(err)
	s.Equal(first.ID, winner.ID)
}
