package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"voteapp/domain"
	"voteapp/domain/util"
	"voteapp/interface/exporter"
)

type RegisterProposalRequest struct {
	Creator     domain.Address
	Description string
	Deadline    time.Time
}

type ProposalInteractor struct {
	ledger  domain.Ledger
	program *Program

	stake                uint64
	maxDescriptionLength int
	clock                func() time.Time
}

// NewProposalInteractor locks stake asset units of the creator per proposal.
// A nil clock means time.Now.
func NewProposalInteractor(ledger domain.Ledger, program *Program, stake uint64, maxDescriptionLength int, clock func() time.Time) *ProposalInteractor {
	if clock == nil {
		clock = time.Now
	}
	interactor := &ProposalInteractor{
		ledger:               ledger,
		program:              program,
		stake:                stake,
		maxDescriptionLength: maxDescriptionLength,
		clock:                clock,
	}
	return interactor
}

func (interactor *ProposalInteractor) Now() time.Time {
	return interactor.clock()
}

// RegisterProposal assigns the next proposal id and stores the proposal,
// open for votes until its deadline.
func (interactor *ProposalInteractor) RegisterProposal(ctx context.Context, request RegisterProposalRequest) (*domain.Proposal, error) {
	if request.Description == "" {
		return nil, domain.ErrorEmptyDescription
	}
	if len(request.Description) > interactor.maxDescriptionLength {
		return nil, fmt.Errorf("%w: %d bytes, at most %d", domain.ErrorDescriptionTooLong, len(request.Description), interactor.maxDescriptionLength)
	}
	now := interactor.clock()
	if !request.Deadline.After(now) {
		return nil, fmt.Errorf("%w: %v", domain.ErrorInvalidDeadline, request.Deadline)
	}

	program := interactor.program
	counterAddr, err := program.ProposalCounterAddress()
	if err != nil {
		return nil, err
	}

	var proposal *domain.Proposal
	err = interactor.ledger.Atomic(ctx, func(store domain.AccountStore) error {
		if _, _, err := program.LoadVoter(store, request.Creator); err != nil {
			return err
		}

		counter, counterAcc, err := interactor.loadCounter(store, counterAddr, request.Creator)
		if err != nil {
			return err
		}
		id := counter.Count
		if counter.Count, err = util.AddUint64(counter.Count, 1); err != nil {
			return err
		}

		if interactor.stake > 0 {
			cfg, err := program.LoadTreasuryConfig(store)
			if err != nil {
				return err
			}
			holding, err := program.Asset.HoldingAddress(request.Creator, cfg.AssetMint)
			if err != nil {
				return err
			}
			if err := program.Asset.Transfer(store, holding, cfg.TreasuryAssetAccount, request.Creator, interactor.stake); err != nil {
				return err
			}
		}

		addr, err := program.ProposalAddress(id)
		if err != nil {
			return err
		}
		proposal = &domain.Proposal{
			ID:          id,
			Deadline:    request.Deadline.UTC(),
			Description: request.Description,
			Creator:     request.Creator,
			Stake:       interactor.stake,
			CreateTime:  now.UTC(),
		}
		acc, err := domain.NewAccount(addr, program.ID, domain.KindProposal, proposal)
		if err != nil {
			return err
		}
		if err := program.System.CreateAccount(store, request.Creator, acc, program.Rent); err != nil {
			return err
		}

		return saveRecord(store, counterAcc, counter)
	})
	if err != nil {
		log.Printf("🔴 registering proposal [creator: %v] - %v\n", request.Creator, err.Error())
		exporter.IncErrorCount()
		return nil, err
	}

	exporter.IncProposalCount()
	return proposal, nil
}

// CastVote records one vote of voter on the proposal. The vote count and the
// voter's record change together or not at all.
func (interactor *ProposalInteractor) CastVote(ctx context.Context, identity domain.Address, proposalID uint64) (*domain.Proposal, error) {
	program := interactor.program
	var proposal *domain.Proposal

	err := interactor.ledger.Atomic(ctx, func(store domain.AccountStore) error {
		voter, voterAcc, err := program.LoadVoter(store, identity)
		if err != nil {
			return err
		}
		var proposalAcc *domain.Account
		proposal, proposalAcc, err = program.LoadProposal(store, proposalID)
		if err != nil {
			return err
		}
		if !proposal.IsOpen(interactor.clock()) {
			return fmt.Errorf("%w: proposal %d closed at %v", domain.ErrorDeadlinePassed, proposalID, proposal.Deadline)
		}
		if err := voter.MarkVoted(proposalID); err != nil {
			return fmt.Errorf("%w: proposal %d", err, proposalID)
		}
		if proposal.VoteCount, err = util.AddUint64(proposal.VoteCount, 1); err != nil {
			return err
		}

		if err := saveRecord(store, proposalAcc, proposal); err != nil {
			return err
		}
		return saveRecord(store, voterAcc, voter)
	})
	if err != nil {
		log.Printf("🔴 casting vote [voter: %v, proposal: %d] - %v\n", identity, proposalID, err.Error())
		exporter.IncErrorCount()
		return nil, err
	}

	exporter.IncVoteCount()
	return proposal, nil
}

func (interactor *ProposalInteractor) GetProposal(ctx context.Context, id uint64) (*domain.Proposal, error) {
	var proposal *domain.Proposal
	err := interactor.ledger.View(ctx, func(store domain.AccountStore) error {
		var err error
		proposal, _, err = interactor.program.LoadProposal(store, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

// ListProposals returns every proposal ordered by id.
func (interactor *ProposalInteractor) ListProposals(ctx context.Context) ([]*domain.Proposal, error) {
	proposals := make([]*domain.Proposal, 0)
	err := interactor.ledger.View(ctx, func(store domain.AccountStore) error {
		accounts, err := store.FindAllByKind(domain.KindProposal)
		if err != nil {
			return err
		}
		for _, acc := range accounts {
			if !acc.IsOwnedBy(interactor.program.ID) {
				continue
			}
			proposal := &domain.Proposal{}
			if err := acc.Load(domain.KindProposal, proposal); err != nil {
				return err
			}
			proposals = append(proposals, proposal)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(proposals, func(i, j int) bool { return proposals[i].ID < proposals[j].ID })
	return proposals, nil
}

// PickWinner returns the closed proposal with the most votes. Ties go to the
// lowest id.
func (interactor *ProposalInteractor) PickWinner(ctx context.Context) (*domain.Proposal, error) {
	proposals, err := interactor.ListProposals(ctx)
	if err != nil {
		return nil, err
	}

	now := interactor.clock()
	var winner *domain.Proposal
	for _, proposal := range proposals {
		if proposal.IsOpen(now) {
			continue
		}
		if winner == nil || proposal.VoteCount > winner.VoteCount {
			winner = proposal
		}
	}
	if winner == nil {
		return nil, fmt.Errorf("%w: no closed proposal", domain.ErrorProposalNotFound)
	}
	return winner, nil
}

func (interactor *ProposalInteractor) loadCounter(store domain.AccountStore, addr domain.Address, payer domain.Address) (*domain.ProposalCounter, *domain.Account, error) {
	counter := &domain.ProposalCounter{}
	acc, err := loadRecord(store, addr, interactor.program.ID, domain.KindProposalCounter, counter)
	if err == nil {
		return counter, acc, nil
	}
	if !errors.Is(err, domain.ErrorAccountNotFound) {
		return nil, nil, err
	}

	acc, err = domain.NewAccount(addr, interactor.program.ID, domain.KindProposalCounter, counter)
	if err != nil {
		return nil, nil, err
	}
	if err := interactor.program.System.CreateAccount(store, payer, acc, interactor.program.Rent); err != nil {
		return nil, nil, err
	}
	return counter, acc, nil
}
