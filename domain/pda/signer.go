package pda

import "voteapp/domain"

// Signer is the authority a program presents for one of its derived
// addresses.
type Signer struct {
	ProgramID domain.Address
	Seeds     [][]byte
	Bump      uint8
}

// FindSigner derives the address of seeds under programID and returns the
// signer for it.
func FindSigner(programID domain.Address, seeds [][]byte) (Signer, domain.Address, error) {
	addr, bump, err := FindProgramAddress(seeds, programID)
	if err != nil {
		return Signer{}, domain.Address{}, err
	}
	return Signer{ProgramID: programID, Seeds: seeds, Bump: bump}, addr, nil
}

func (s Signer) Address() (domain.Address, error) {
	return CreateProgramAddress(withBump(s.Seeds, s.Bump), s.ProgramID)
}

// Authorizes reports whether the signer proves authority over addr.
func (s Signer) Authorizes(addr domain.Address) bool {
	return Verify(addr, s.Seeds, s.Bump, s.ProgramID)
}
