package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/account-guard/pkg/solana"
	"github.com/code-payments/account-guard/pkg/testutil"
)

func TestDecompileDeposit(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)
	vault, authority := keys[0], keys[1]

	instruction := NewDepositInstruction(
		&DepositInstructionAccounts{Vault: vault, Authority: authority},
		&DepositInstructionArgs{Amount: 12345},
	)

	accounts, args, err := DecompileDeposit(instruction)
	require.NoError(t, err)
	assert.EqualValues(t, vault, accounts.Vault)
	assert.EqualValues(t, authority, accounts.Authority)
	assert.EqualValues(t, 12345, args.Amount)

	// Another program's instruction
	foreign := instruction
	foreign.Program = testutil.GenerateSolanaKeys(t, 1)[0]
	_, _, err = DecompileDeposit(foreign)
	assert.Equal(t, solana.ErrIncorrectProgram, err)

	// Same program, different instruction
	withdraw := NewWithdrawInstruction(
		&WithdrawInstructionAccounts{Vault: vault, Authority: authority},
		&WithdrawInstructionArgs{Amount: 1},
	)
	_, _, err = DecompileDeposit(withdraw)
	assert.Equal(t, solana.ErrIncorrectInstruction, err)
}

func TestDecompileWithdraw(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)
	vault, authority := keys[0], keys[1]

	instruction := NewWithdrawInstruction(
		&WithdrawInstructionAccounts{Vault: vault, Authority: authority},
		&WithdrawInstructionArgs{Amount: 500},
	)

	accounts, args, err := DecompileWithdraw(instruction)
	require.NoError(t, err)
	assert.EqualValues(t, vault, accounts.Vault)
	assert.EqualValues(t, authority, accounts.Authority)
	assert.EqualValues(t, 500, args.Amount)

	// Truncated data
	instruction.Data = instruction.Data[:len(instruction.Data)-1]
	_, _, err = DecompileWithdraw(instruction)
	assert.Equal(t, ErrInvalidInstructionData, err)
}

func TestInstructionDiscriminators_Distinct(t *testing.T) {
	seen := make(map[string]struct{})
	for _, d := range [][]byte{
		InitializeVaultInstructionDiscriminator,
		InitializeUserInstructionDiscriminator,
		DepositInstructionDiscriminator,
		WithdrawInstructionDiscriminator,
		TransferPointsInstructionDiscriminator,
		FlashLoanInstructionDiscriminator,
		CloseVaultInstructionDiscriminator,
		VaultAccountDiscriminator,
		UserAccountDiscriminator,
	} {
		assert.Len(t, d, 8)
		seen[string(d)] = struct{}{}
	}
	assert.Len(t, seen, 9)
}
