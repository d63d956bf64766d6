package domain

import "sort"

type Voter struct {
	Identity       Address  `json:"identity"`
	ProposalsVoted []uint64 `json:"proposals_voted"`
}

func NewVoter(identity Address) *Voter {
	return &Voter{
		Identity:       identity,
		ProposalsVoted: make([]uint64, 0),
	}
}

// HasVoted expects ProposalsVoted to be sorted, which MarkVoted keeps.
func (v *Voter) HasVoted(proposalID uint64) bool {
	i := sort.Search(len(v.ProposalsVoted), func(i int) bool { return v.ProposalsVoted[i] >= proposalID })
	return i < len(v.ProposalsVoted) && v.ProposalsVoted[i] == proposalID
}

func (v *Voter) MarkVoted(proposalID uint64) error {
	if v.HasVoted(proposalID) {
		return ErrorAlreadyVoted
	}
	i := sort.Search(len(v.ProposalsVoted), func(i int) bool { return v.ProposalsVoted[i] >= proposalID })
	v.ProposalsVoted = append(v.ProposalsVoted, 0)
	copy(v.ProposalsVoted[i+1:], v.ProposalsVoted[i:])
	v.ProposalsVoted[i] = proposalID
	return nil
}
