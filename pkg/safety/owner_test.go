package safety

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/code-payments/account-guard/pkg/solana"
	"github.com/code-payments/account-guard/pkg/testutil"
)

func generateKeys(t *testing.T, n int) []ed25519.PublicKey {
	return testutil.GenerateSolanaKeys(t, n)
}

func TestCheckOwner(t *testing.T) {
	keys := generateKeys(t, 3)

	info := &solana.AccountInfo{
		Address: keys[0],
		Owner:   keys[1],
	}

	assert.NoError(t, CheckOwner(info, keys[1]))
	assert.Equal(t, ErrWrongOwner, CheckOwner(info, keys[2]))

	// Owning the account does not imply the signer check, and vice versa.
	assert.Equal(t, ErrMissingSignature, CheckSigner(info))
}

func TestCheckSigner(t *testing.T) {
	keys := generateKeys(t, 1)

	info := &solana.AccountInfo{Address: keys[0]}
	assert.Equal(t, ErrMissingSignature, CheckSigner(info))

	info.IsSigner = true
	assert.NoError(t, CheckSigner(info))
}

func TestCheckWritable(t *testing.T) {
	keys := generateKeys(t, 1)

	info := &solana.AccountInfo{Address: keys[0]}
	assert.Equal(t, ErrNotWritable, CheckWritable(info))

	info.IsWritable = true
	assert.NoError(t, CheckWritable(info))
}
