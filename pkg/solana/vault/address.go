package vault

import (
	"crypto/ed25519"

	"github.com/code-payments/account-guard/pkg/safety"
)

type GetVaultAddressArgs struct {
	Authority ed25519.PublicKey
}

// GetVaultAddress derives the vault account address for an authority. The
// returned bump is canonical and must be stored in the vault's state at
// initialization.
func GetVaultAddress(args *GetVaultAddressArgs) (ed25519.PublicKey, uint8, error) {
	return safety.DerivePda(
		PROGRAM_ID,
		VaultStatePrefix,
		args.Authority,
	)
}

type GetUserAccountAddressArgs struct {
	Authority ed25519.PublicKey
}

func GetUserAccountAddress(args *GetUserAccountAddressArgs) (ed25519.PublicKey, uint8, error) {
	return safety.DerivePda(
		PROGRAM_ID,
		UserStatePrefix,
		args.Authority,
	)
}

func vaultSeeds(authority ed25519.PublicKey) [][]byte {
	return [][]byte{VaultStatePrefix, authority}
}

func userSeeds(authority ed25519.PublicKey) [][]byte {
	return [][]byte{UserStatePrefix, authority}
}
