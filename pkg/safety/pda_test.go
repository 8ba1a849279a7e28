package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivePda_Deterministic(t *testing.T) {
	keys := generateKeys(t, 2)
	program, authority := keys[0], keys[1]

	address, bump, err := DerivePda(program, []byte("vault_state"), authority)
	require.NoError(t, err)

	again, againBump, err := DerivePda(program, []byte("vault_state"), authority)
	require.NoError(t, err)

	assert.EqualValues(t, address, again)
	assert.Equal(t, bump, againBump)
}

func TestValidatePda(t *testing.T) {
	keys := generateKeys(t, 3)
	program, authority, other := keys[0], keys[1], keys[2]

	address, bump, err := DerivePda(program, []byte("vault_state"), authority)
	require.NoError(t, err)

	assert.NoError(t, ValidatePda(address, program, bump, []byte("vault_state"), authority))

	// Any bump other than the canonical one is rejected, whether or not it
	// would hash off the curve.
	for delta := uint8(1); delta <= 3; delta++ {
		assert.Equal(t, ErrInvalidPDA, ValidatePda(address, program, bump-delta, []byte("vault_state"), authority))
	}

	// Right bump, wrong address.
	assert.Equal(t, ErrInvalidPDA, ValidatePda(other, program, bump, []byte("vault_state"), authority))

	// Right address, different seed material.
	assert.Equal(t, ErrInvalidPDA, ValidatePda(address, program, bump, []byte("user_state"), authority))

	descriptor := &PdaDescriptor{
		Seeds:   [][]byte{[]byte("vault_state"), authority},
		Program: program,
		Bump:    bump,
	}
	assert.NoError(t, descriptor.Validate(address))

	descriptor.Bump = bump - 1
	assert.Equal(t, ErrInvalidPDA, descriptor.Validate(address))
}

func TestRequireNonUserSeed(t *testing.T) {
	keys := generateKeys(t, 1)
	authority := keys[0]

	prefix := []byte("vault_state")

	assert.NoError(t, RequireNonUserSeed([][]byte{prefix, authority}, prefix))

	// A caller-chosen index alongside the owner key is allowed.
	assert.NoError(t, RequireNonUserSeed([][]byte{prefix, authority, {0, 1}}, prefix))

	// Purely user-supplied seed material.
	assert.Equal(t, ErrUnsafeSeeds, RequireNonUserSeed([][]byte{[]byte("my-cool-vault")}, prefix))
	assert.Equal(t, ErrUnsafeSeeds, RequireNonUserSeed([][]byte{[]byte("alice"), []byte("vault")}, prefix))

	// Prefix present but no owner component.
	assert.Equal(t, ErrUnsafeSeeds, RequireNonUserSeed([][]byte{prefix, []byte("alice")}, prefix))

	// Owner component present but no program prefix.
	assert.Equal(t, ErrUnsafeSeeds, RequireNonUserSeed([][]byte{authority, authority}, prefix))

	assert.Equal(t, ErrUnsafeSeeds, RequireNonUserSeed(nil, prefix))
	assert.Equal(t, ErrUnsafeSeeds, RequireNonUserSeed([][]byte{prefix, authority}))
}
