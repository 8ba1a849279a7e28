package vault

import (
	"crypto/ed25519"

	"github.com/code-payments/account-guard/pkg/solana"
	"github.com/code-payments/account-guard/pkg/solana/binary"
)

var FlashLoanInstructionDiscriminator = sha256First8("global:flash_loan")

const FlashLoanInstructionArgsSize = (8 + // amount
	8) // expected_fee

type FlashLoanInstructionArgs struct {
	Amount      uint64
	ExpectedFee uint64
}

type FlashLoanInstructionAccounts struct {
	Vault           ed25519.PublicKey
	Authority       ed25519.PublicKey
	CallbackProgram ed25519.PublicKey
}

func NewFlashLoanInstruction(
	accounts *FlashLoanInstructionAccounts,
	args *FlashLoanInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, binary.DiscriminatorSize+FlashLoanInstructionArgsSize)
	binary.PutDiscriminator(data, FlashLoanInstructionDiscriminator, &offset)
	binary.PutUint64(data[offset:], args.Amount, &offset)
	binary.PutUint64(data[offset:], args.ExpectedFee, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.Vault, false),
		solana.NewReadonlyAccountMeta(accounts.Authority, true),
		solana.NewReadonlyAccountMeta(accounts.CallbackProgram, false),
	)
}

func parseFlashLoanArgs(data []byte) (*FlashLoanInstructionArgs, error) {
	if len(data) != binary.DiscriminatorSize+FlashLoanInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args FlashLoanInstructionArgs
	offset := binary.DiscriminatorSize
	binary.GetUint64(data[offset:], &args.Amount, &offset)
	binary.GetUint64(data[offset:], &args.ExpectedFee, &offset)
	return &args, nil
}
