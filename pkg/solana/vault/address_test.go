package vault

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/account-guard/pkg/safety"
	"github.com/code-payments/account-guard/pkg/testutil"
)

func TestGetVaultAddress(t *testing.T) {
	authority := testutil.GenerateSolanaKeys(t, 1)[0]

	address, bump, err := GetVaultAddress(&GetVaultAddressArgs{Authority: authority})
	require.NoError(t, err)
	assert.Len(t, []byte(address), ed25519.PublicKeySize)

	// Derivation is a pure function of the seeds
	again, againBump, err := GetVaultAddress(&GetVaultAddressArgs{Authority: authority})
	require.NoError(t, err)
	assert.EqualValues(t, address, again)
	assert.Equal(t, bump, againBump)

	// The stored bump re-validates against the canonical derivation
	require.NoError(t, safety.ValidatePda(address, PROGRAM_ID, bump, vaultSeeds(authority)...))

	// A tampered bump does not
	assert.Equal(t, safety.ErrInvalidPDA, safety.ValidatePda(address, PROGRAM_ID, bump-1, vaultSeeds(authority)...))
}

func TestGetUserAccountAddress(t *testing.T) {
	authority := testutil.GenerateSolanaKeys(t, 1)[0]

	userAddress, _, err := GetUserAccountAddress(&GetUserAccountAddressArgs{Authority: authority})
	require.NoError(t, err)

	// Different prefixes partition the address space per account type
	vaultAddress, _, err := GetVaultAddress(&GetVaultAddressArgs{Authority: authority})
	require.NoError(t, err)
	assert.NotEqualValues(t, userAddress, vaultAddress)
}
