package vault

import (
	"crypto/ed25519"

	"github.com/code-payments/account-guard/pkg/solana"
	"github.com/code-payments/account-guard/pkg/solana/binary"
)

var CloseVaultInstructionDiscriminator = sha256First8("global:close_vault")

// CloseVaultInstructionAccounts names a destination for symmetry with the
// wire layout, but the handler only ever pays out to the verified authority;
// a destination that differs from it is rejected outright.
type CloseVaultInstructionAccounts struct {
	Vault       ed25519.PublicKey
	Destination ed25519.PublicKey
	Authority   ed25519.PublicKey
}

func NewCloseVaultInstruction(accounts *CloseVaultInstructionAccounts) solana.Instruction {
	var offset int

	data := make([]byte, binary.DiscriminatorSize)
	binary.PutDiscriminator(data, CloseVaultInstructionDiscriminator, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.Vault, false),
		solana.NewAccountMeta(accounts.Destination, false),
		solana.NewAccountMeta(accounts.Authority, true),
	)
}
