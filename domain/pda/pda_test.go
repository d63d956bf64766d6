package pda

import (
	"testing"

	"voteapp/domain"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	loaderID = domain.MustParseAddress("BPFLoaderUpgradeab1e11111111111111111111111")
	seedKey  = domain.MustParseAddress("SeedPubey1111111111111111111111111111111111")
)

func TestCreateProgramAddress(t *testing.T) {
	cases := []struct {
		name  string
		seeds [][]byte
		want  string
	}{
		{"empty seed", [][]byte{{}, {1}}, "BwqrghZA2htAcqq8dzP1WDAhTXYTYWj7CHxF5j7TDBAe"},
		{"utf8 seed", [][]byte{[]byte("☉"), {0}}, "13yWmRpaTR4r5nAktwLqMpRNr28tnVUZw26rTvPSSB19"},
		{"two words", [][]byte{[]byte("Talking"), []byte("Squirrels")}, "2fnQrngrQT4SeLcdToJAD96phoEjNL2man2kfRLCASVk"},
		{"public key seed", [][]byte{seedKey.Bytes(), {1}}, "976ymqVnfE32QFe6NfGDctSvVa36LWnvYxhU6G2232YL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := CreateProgramAddress(tc.seeds, loaderID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, addr.String())
		})
	}
}

func TestCreateProgramAddressRejectsBadSeeds(t *testing.T) {
	_, err := CreateProgramAddress([][]byte{make([]byte, MaxSeedLength+1)}, loaderID)
	assert.ErrorIs(t, err, ErrorMaxSeedLengthExceeded)

	_, err = CreateProgramAddress(make([][]byte, MaxSeeds+1), loaderID)
	assert.ErrorIs(t, err, ErrorTooManySeeds)

	// 255 hashes onto the curve for this seed, so the search settles on 254.
	_, err = CreateProgramAddress([][]byte{[]byte(domain.SeedAssetMint), {255}}, loaderID)
	assert.ErrorIs(t, err, ErrorInvalidSeeds)
}

func TestFindProgramAddress(t *testing.T) {
	addr, bump, err := FindProgramAddress(domain.Seeds(domain.SeedAssetMint), loaderID)
	require.NoError(t, err)
	assert.Equal(t, "H7YRToEKNzzZAJruTrr1hnYsdZSLqmhYwu4VSWi9MBoB", addr.String())
	assert.Equal(t, uint8(254), bump)

	again, againBump, err := FindProgramAddress(domain.Seeds(domain.SeedAssetMint), loaderID)
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	assert.Equal(t, bump, againBump)

	assert.True(t, Verify(addr, domain.Seeds(domain.SeedAssetMint), bump, loaderID))
	assert.False(t, Verify(addr, domain.Seeds(domain.SeedAssetMint), bump-1, loaderID))
	assert.False(t, Verify(addr, domain.Seeds(domain.SeedVault), bump, loaderID))
	assert.False(t, Verify(addr, domain.Seeds(domain.SeedAssetMint), bump, domain.SystemProgramID))
}

func TestFindProgramAddressDistinctSeeds(t *testing.T) {
	seen := make(map[domain.Address]string)
	for _, label := range []string{
		domain.SeedTreasuryConfig, domain.SeedAssetMint, domain.SeedVault, domain.SeedMintAuthority,
	} {
		addr, _, err := FindProgramAddress(domain.Seeds(label), loaderID)
		require.NoError(t, err)
		_, dup := seen[addr]
		require.False(t, dup, "seed %q collides with %q", label, seen[addr])
		seen[addr] = label
	}
}

func TestSigner(t *testing.T) {
	signer, addr, err := FindSigner(loaderID, domain.Seeds(domain.SeedMintAuthority))
	require.NoError(t, err)

	derived, err := signer.Address()
	require.NoError(t, err)
	assert.Equal(t, addr, derived)
	assert.True(t, signer.Authorizes(addr))

	forged := signer
	forged.ProgramID = seedKey
	assert.False(t, forged.Authorizes(addr))
}

func TestIsWallet(t *testing.T) {
	derived, _, err := FindProgramAddress([][]byte{[]byte("sol_vault")}, loaderID)
	require.NoError(t, err)
	assert.False(t, IsWallet(derived))

	key := ed25519.NewKeyFromSeed(make([]byte, ed25519.SeedSize))
	wallet, err := domain.AddressFromBytes(key.Public().(ed25519.PublicKey))
	require.NoError(t, err)
	assert.True(t, IsWallet(wallet))
}
