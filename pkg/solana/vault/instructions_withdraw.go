package vault

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/account-guard/pkg/solana"
	"github.com/code-payments/account-guard/pkg/solana/binary"
)

var WithdrawInstructionDiscriminator = sha256First8("global:withdraw")

const WithdrawInstructionArgsSize = 8 // amount

type WithdrawInstructionArgs struct {
	Amount uint64
}

// WithdrawInstructionAccounts deliberately has no way to name a withdrawal
// authority: the vault's stored authority must sign, and that is the only
// identity the handler consults.
type WithdrawInstructionAccounts struct {
	Vault     ed25519.PublicKey
	Authority ed25519.PublicKey
}

func NewWithdrawInstruction(
	accounts *WithdrawInstructionAccounts,
	args *WithdrawInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, binary.DiscriminatorSize+WithdrawInstructionArgsSize)
	binary.PutDiscriminator(data, WithdrawInstructionDiscriminator, &offset)
	binary.PutUint64(data[offset:], args.Amount, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.Vault, false),
		solana.NewReadonlyAccountMeta(accounts.Authority, true),
	)
}

func DecompileWithdraw(instruction solana.Instruction) (*WithdrawInstructionAccounts, *WithdrawInstructionArgs, error) {
	if !bytes.Equal(instruction.Program, PROGRAM_ID) {
		return nil, nil, solana.ErrIncorrectProgram
	}
	if !bytes.HasPrefix(instruction.Data, WithdrawInstructionDiscriminator) {
		return nil, nil, solana.ErrIncorrectInstruction
	}
	if len(instruction.Accounts) != 2 {
		return nil, nil, ErrNotEnoughAccounts
	}

	args, err := parseWithdrawArgs(instruction.Data)
	if err != nil {
		return nil, nil, err
	}

	return &WithdrawInstructionAccounts{
		Vault:     instruction.Accounts[0].PublicKey,
		Authority: instruction.Accounts[1].PublicKey,
	}, args, nil
}

func parseWithdrawArgs(data []byte) (*WithdrawInstructionArgs, error) {
	if len(data) != binary.DiscriminatorSize+WithdrawInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args WithdrawInstructionArgs
	offset := binary.DiscriminatorSize
	binary.GetUint64(data[offset:], &args.Amount, &offset)
	return &args, nil
}
