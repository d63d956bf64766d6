package domain

import "time"

const (
	ProposalStateOpen   = "open"
	ProposalStateClosed = "closed"
)

type Proposal struct {
	ID          uint64    `json:"id"`
	VoteCount   uint64    `json:"vote_count"`
	Deadline    time.Time `json:"deadline"`
	Description string    `json:"description"`
	Creator     Address   `json:"creator"`
	Stake       uint64    `json:"stake"`
	CreateTime  time.Time `json:"create_time"`
}

// IsOpen reports whether the proposal still accepts votes at now. The
// deadline itself is already closed.
func (p *Proposal) IsOpen(now time.Time) bool {
	return now.Before(p.Deadline)
}

func (p *Proposal) State(now time.Time) string {
	if p.IsOpen(now) {
		return ProposalStateOpen
	}
	return ProposalStateClosed
}

// ProposalCounter hands out proposal ids in creation order.
type ProposalCounter struct {
	Count uint64 `json:"count"`
}
