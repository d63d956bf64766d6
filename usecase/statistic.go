package usecase

import (
	"context"
	"log"

	"voteapp/domain"
	"voteapp/domain/util"
	"voteapp/interface/exporter"
)

type StatisticResult struct {
	Treasury       *domain.TreasuryInfo
	ProposalCount  int
	OpenProposals  int
	TotalVoteCount uint64
}

type StatisticInteractor struct {
	treasuryInteractor *TreasuryInteractor
	proposalInteractor *ProposalInteractor
}

func NewStatisticInteractor(treasuryInteractor *TreasuryInteractor, proposalInteractor *ProposalInteractor) *StatisticInteractor {
	interactor := &StatisticInteractor{
		treasuryInteractor: treasuryInteractor,
		proposalInteractor: proposalInteractor,
	}
	return interactor
}

func (interactor *StatisticInteractor) Statistic(ctx context.Context) (*StatisticResult, error) {
	treasury, err := interactor.treasuryInteractor.GetTreasury(ctx)
	if err != nil {
		return nil, err
	}
	proposals, err := interactor.proposalInteractor.ListProposals(ctx)
	if err != nil {
		return nil, err
	}

	result := &StatisticResult{
		Treasury:      treasury,
		ProposalCount: len(proposals),
	}
	now := interactor.proposalInteractor.Now()
	for _, proposal := range proposals {
		if proposal.IsOpen(now) {
			result.OpenProposals++
		}
		result.TotalVoteCount += proposal.VoteCount
	}
	return result, nil
}

// Store publishes the statistic to the treasury gauges.
func (interactor *StatisticInteractor) Store(result *StatisticResult) {
	exporter.SetTreasuryState(uint64(result.Treasury.VaultBalance), result.Treasury.Supply)
	log.Printf("🔵 vault: %v, supply: %v, proposals: %v (%v open), votes: %v\n",
		util.LamportsToSolString(result.Treasury.VaultBalance),
		util.TokenString(result.Treasury.Supply, domain.AssetDecimals),
		result.ProposalCount, result.OpenProposals, result.TotalVoteCount)
}
