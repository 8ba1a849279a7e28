package vault

import (
	"crypto/ed25519"

	"github.com/code-payments/account-guard/pkg/solana"
	"github.com/code-payments/account-guard/pkg/solana/binary"
)

var InitializeUserInstructionDiscriminator = sha256First8("global:initialize_user")

const InitializeUserInstructionArgsSize = MaxUserNameLength // name

type InitializeUserInstructionArgs struct {
	Name string
}

type InitializeUserInstructionAccounts struct {
	User      ed25519.PublicKey
	Authority ed25519.PublicKey
}

func NewInitializeUserInstruction(
	accounts *InitializeUserInstructionAccounts,
	args *InitializeUserInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, binary.DiscriminatorSize+InitializeUserInstructionArgsSize)
	binary.PutDiscriminator(data, InitializeUserInstructionDiscriminator, &offset)
	binary.PutFixedString(data[offset:], args.Name, MaxUserNameLength, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.User, false),
		solana.NewAccountMeta(accounts.Authority, true),
	)
}

func parseInitializeUserArgs(data []byte) (*InitializeUserInstructionArgs, error) {
	if len(data) != binary.DiscriminatorSize+InitializeUserInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args InitializeUserInstructionArgs
	offset := binary.DiscriminatorSize
	binary.GetFixedString(data[offset:], &args.Name, MaxUserNameLength, &offset)
	return &args, nil
}
