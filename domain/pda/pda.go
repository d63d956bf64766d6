// Package pda derives program addresses: account addresses that are a pure
// function of a program id and a list of seeds, and that no private key can
// sign for. The bump returned by FindProgramAddress is the proof a program
// presents, in place of a signature, to act on behalf of such an address.
package pda

import (
	"fmt"

	"voteapp/domain"

	"github.com/minio/sha256-simd"
	"github.com/oasisprotocol/curve25519-voi/curve"
)

const (
	MaxSeeds      = 16
	MaxSeedLength = 32

	addressMarker = "ProgramDerivedAddress"
)

var (
	ErrorMaxSeedLengthExceeded = fmt.Errorf("seed is longer than %d bytes", MaxSeedLength)
	ErrorTooManySeeds          = fmt.Errorf("more than %d seeds", MaxSeeds)
	ErrorInvalidSeeds          = fmt.Errorf("seeds derive an address on the ed25519 curve")
	ErrorNoViableBump          = fmt.Errorf("unable to find a viable program address bump")
)

// CreateProgramAddress hashes seeds and programID into an address. It fails
// with ErrorInvalidSeeds when the hash is a valid ed25519 public key, since a
// private key could exist for it.
func CreateProgramAddress(seeds [][]byte, programID domain.Address) (domain.Address, error) {
	var addr domain.Address

	if len(seeds) > MaxSeeds {
		return addr, ErrorTooManySeeds
	}

	hasher := sha256.New()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return addr, ErrorMaxSeedLengthExceeded
		}
		hasher.Write(seed)
	}
	hasher.Write(programID[:])
	hasher.Write([]byte(addressMarker))
	copy(addr[:], hasher.Sum(nil))

	if isOnCurve(addr[:]) {
		return domain.Address{}, ErrorInvalidSeeds
	}

	return addr, nil
}

// FindProgramAddress searches bumps from 255 down and returns the first
// address that is off the curve, together with its bump.
func FindProgramAddress(seeds [][]byte, programID domain.Address) (domain.Address, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return domain.Address{}, 0, ErrorTooManySeeds
	}

	for bump := 255; bump >= 0; bump-- {
		addr, err := CreateProgramAddress(withBump(seeds, uint8(bump)), programID)
		if err == nil {
			return addr, uint8(bump), nil
		}
		if err != ErrorInvalidSeeds {
			return domain.Address{}, 0, err
		}
	}

	return domain.Address{}, 0, ErrorNoViableBump
}

// Verify recomputes the address from seeds and bump and compares it with
// the claimed one.
func Verify(addr domain.Address, seeds [][]byte, bump uint8, programID domain.Address) bool {
	derived, err := CreateProgramAddress(withBump(seeds, bump), programID)
	if err != nil {
		return false
	}
	return derived == addr
}

func withBump(seeds [][]byte, bump uint8) [][]byte {
	all := make([][]byte, 0, len(seeds)+1)
	all = append(all, seeds...)
	return append(all, []byte{bump})
}

// IsWallet reports whether addr is a point on the ed25519 curve, that is an
// address a private key can sign for. Derived addresses never are.
func IsWallet(addr domain.Address) bool {
	return isOnCurve(addr[:])
}

func isOnCurve(buf []byte) bool {
	compressed, err := curve.NewCompressedEdwardsYFromBytes(buf)
	if err != nil {
		return false
	}
	_, err = curve.NewEdwardsPoint().SetCompressedY(compressed)
	return err == nil
}
