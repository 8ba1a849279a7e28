package vault

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/account-guard/pkg/solana"
	"github.com/code-payments/account-guard/pkg/solana/binary"
)

var DepositInstructionDiscriminator = sha256First8("global:deposit")

const DepositInstructionArgsSize = 8 // amount

type DepositInstructionArgs struct {
	Amount uint64
}

type DepositInstructionAccounts struct {
	Vault     ed25519.PublicKey
	Authority ed25519.PublicKey
}

func NewDepositInstruction(
	accounts *DepositInstructionAccounts,
	args *DepositInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, binary.DiscriminatorSize+DepositInstructionArgsSize)
	binary.PutDiscriminator(data, DepositInstructionDiscriminator, &offset)
	binary.PutUint64(data[offset:], args.Amount, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.Vault, false),
		solana.NewReadonlyAccountMeta(accounts.Authority, true),
	)
}

func DecompileDeposit(instruction solana.Instruction) (*DepositInstructionAccounts, *DepositInstructionArgs, error) {
	if !bytes.Equal(instruction.Program, PROGRAM_ID) {
		return nil, nil, solana.ErrIncorrectProgram
	}
	if !bytes.HasPrefix(instruction.Data, DepositInstructionDiscriminator) {
		return nil, nil, solana.ErrIncorrectInstruction
	}
	if len(instruction.Accounts) != 2 {
		return nil, nil, ErrNotEnoughAccounts
	}

	args, err := parseDepositArgs(instruction.Data)
	if err != nil {
		return nil, nil, err
	}

	return &DepositInstructionAccounts{
		Vault:     instruction.Accounts[0].PublicKey,
		Authority: instruction.Accounts[1].PublicKey,
	}, args, nil
}

func parseDepositArgs(data []byte) (*DepositInstructionArgs, error) {
	if len(data) != binary.DiscriminatorSize+DepositInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args DepositInstructionArgs
	offset := binary.DiscriminatorSize
	binary.GetUint64(data[offset:], &args.Amount, &offset)
	return &args, nil
}
