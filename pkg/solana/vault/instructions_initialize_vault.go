package vault

import (
	"crypto/ed25519"

	"github.com/code-payments/account-guard/pkg/solana"
	"github.com/code-payments/account-guard/pkg/solana/binary"
)

var InitializeVaultInstructionDiscriminator = sha256First8("global:initialize_vault")

type InitializeVaultInstructionAccounts struct {
	Vault     ed25519.PublicKey
	Authority ed25519.PublicKey
}

func NewInitializeVaultInstruction(accounts *InitializeVaultInstructionAccounts) solana.Instruction {
	var offset int

	data := make([]byte, binary.DiscriminatorSize)
	binary.PutDiscriminator(data, InitializeVaultInstructionDiscriminator, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.Vault, false),
		solana.NewAccountMeta(accounts.Authority, true),
	)
}
