package vault

import (
	"crypto/ed25519"

	"github.com/code-payments/account-guard/pkg/solana"
	"github.com/code-payments/account-guard/pkg/solana/binary"
)

var TransferPointsInstructionDiscriminator = sha256First8("global:transfer_points")

const TransferPointsInstructionArgsSize = 8 // amount

type TransferPointsInstructionArgs struct {
	Amount uint64
}

type TransferPointsInstructionAccounts struct {
	From      ed25519.PublicKey
	To        ed25519.PublicKey
	Authority ed25519.PublicKey
}

func NewTransferPointsInstruction(
	accounts *TransferPointsInstructionAccounts,
	args *TransferPointsInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, binary.DiscriminatorSize+TransferPointsInstructionArgsSize)
	binary.PutDiscriminator(data, TransferPointsInstructionDiscriminator, &offset)
	binary.PutUint64(data[offset:], args.Amount, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.From, false),
		solana.NewAccountMeta(accounts.To, false),
		solana.NewReadonlyAccountMeta(accounts.Authority, true),
	)
}

func parseTransferPointsArgs(data []byte) (*TransferPointsInstructionArgs, error) {
	if len(data) != binary.DiscriminatorSize+TransferPointsInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args TransferPointsInstructionArgs
	offset := binary.DiscriminatorSize
	binary.GetUint64(data[offset:], &args.Amount, &offset)
	return &args, nil
}
