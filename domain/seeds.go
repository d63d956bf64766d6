package domain

import "encoding/binary"

// Seed labels of the program's derived accounts.
const (
	SeedTreasuryConfig  = "treasury_config"
	SeedAssetMint       = "x_mint"
	SeedVault           = "sol_vault"
	SeedMintAuthority   = "mint_authority"
	SeedVoter           = "voter"
	SeedProposal        = "proposal"
	SeedProposalCounter = "proposal_counter"
)

func Seeds(labels ...string) [][]byte {
	seeds := make([][]byte, len(labels))
	for i, label := range labels {
		seeds[i] = []byte(label)
	}
	return seeds
}

func VoterSeeds(identity Address) [][]byte {
	return [][]byte{[]byte(SeedVoter), identity.Bytes()}
}

func ProposalSeeds(id uint64) [][]byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, id)
	return [][]byte{[]byte(SeedProposal), buf}
}

// HoldingSeeds addresses the holding account of owner for mint under the
// asset program.
func HoldingSeeds(owner, mint Address) [][]byte {
	return [][]byte{owner.Bytes(), mint.Bytes()}
}
