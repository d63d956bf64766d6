package domain

import (
	"fmt"

	"github.com/mr-tron/base58"
)

const AddressLength = 32

var (
	ErrorInvalidAddress = fmt.Errorf("invalid address")
)

// Address identifies an account on the ledger. Wallet addresses are ed25519
// public keys, derived addresses are off-curve hashes. Both render as base58.
type Address [AddressLength]byte

var (
	SystemProgramID = Address{}
	AssetProgramID  = MustParseAddress("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
)

func ParseAddress(s string) (Address, error) {
	var addr Address
	buf, err := base58.Decode(s)
	if err != nil || len(buf) != AddressLength {
		return addr, fmt.Errorf("%w: %q", ErrorInvalidAddress, s)
	}
	copy(addr[:], buf)
	return addr, nil
}

func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

func AddressFromBytes(buf []byte) (Address, error) {
	var addr Address
	if len(buf) != AddressLength {
		return addr, ErrorInvalidAddress
	}
	copy(addr[:], buf)
	return addr, nil
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) Bytes() []byte {
	buf := make([]byte, AddressLength)
	copy(buf, a[:])
	return buf
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
