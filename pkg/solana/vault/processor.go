package vault

import (
	"bytes"
	"context"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/account-guard/pkg/config"
	"github.com/code-payments/account-guard/pkg/safemath"
	"github.com/code-payments/account-guard/pkg/safety"
	"github.com/code-payments/account-guard/pkg/solana"
	"github.com/code-payments/account-guard/pkg/solana/binary"
)

// Processor executes vault program instructions against caller-supplied
// account snapshots. It holds no account state of its own; everything it
// reads and writes lives in the AccountInfo values the runtime hands it, and
// any error aborts the instruction with those snapshots untouched beyond
// what the failing step already validated.
type Processor struct {
	log     *logrus.Entry
	invoker safety.CpiInvoker

	trustedCallbackPrograms config.Keys
	enforceSeedPolicy       config.Bool
}

// NewProcessor creates a processor. The invoker hands cross-program
// invocations to the surrounding runtime. The trusted callback program list
// bounds which programs a flash loan may call back into; an empty list
// trusts any program, which is only appropriate in tests.
func NewProcessor(
	invoker safety.CpiInvoker,
	trustedCallbackPrograms config.Keys,
	enforceSeedPolicy config.Bool,
) *Processor {
	return &Processor{
		log: logrus.StandardLogger().WithField("type", "solana/vault/processor"),

		invoker: invoker,

		trustedCallbackPrograms: trustedCallbackPrograms,
		enforceSeedPolicy:       enforceSeedPolicy,
	}
}

// Execute routes an instruction to its handler by discriminator.
func (p *Processor) Execute(ctx context.Context, data []byte, accounts []*solana.AccountInfo) error {
	if len(data) < binary.DiscriminatorSize {
		return ErrInvalidInstructionData
	}
	discriminator := data[:binary.DiscriminatorSize]

	switch {
	case bytes.Equal(discriminator, InitializeVaultInstructionDiscriminator):
		return p.handleInitializeVault(ctx, accounts)
	case bytes.Equal(discriminator, InitializeUserInstructionDiscriminator):
		args, err := parseInitializeUserArgs(data)
		if err != nil {
			return err
		}
		return p.handleInitializeUser(ctx, args, accounts)
	case bytes.Equal(discriminator, DepositInstructionDiscriminator):
		args, err := parseDepositArgs(data)
		if err != nil {
			return err
		}
		return p.handleDeposit(ctx, args, accounts)
	case bytes.Equal(discriminator, WithdrawInstructionDiscriminator):
		args, err := parseWithdrawArgs(data)
		if err != nil {
			return err
		}
		return p.handleWithdraw(ctx, args, accounts)
	case bytes.Equal(discriminator, TransferPointsInstructionDiscriminator):
		args, err := parseTransferPointsArgs(data)
		if err != nil {
			return err
		}
		return p.handleTransferPoints(ctx, args, accounts)
	case bytes.Equal(discriminator, FlashLoanInstructionDiscriminator):
		args, err := parseFlashLoanArgs(data)
		if err != nil {
			return err
		}
		return p.handleFlashLoan(ctx, args, accounts)
	case bytes.Equal(discriminator, CloseVaultInstructionDiscriminator):
		return p.handleCloseVault(ctx, accounts)
	default:
		return ErrInvalidInstructionData
	}
}

// certifyUninitialized verifies a freshly created program account: owned by
// this program, writable, sized for the expected state, and carrying neither
// live nor closed data. Reinitialization at a closed address fails here on
// the discriminator stamp.
func certifyUninitialized(info *solana.AccountInfo, size int) error {
	if err := safety.CheckOwner(info, PROGRAM_ID); err != nil {
		return err
	}
	if err := safety.CheckWritable(info); err != nil {
		return err
	}
	if len(info.Data) != size {
		return ErrInvalidAccountData
	}

	var zero [binary.DiscriminatorSize]byte
	if !bytes.Equal(info.Data[:binary.DiscriminatorSize], zero[:]) {
		return ErrAlreadyInitialized
	}
	return nil
}

func (p *Processor) checkSeedPolicy(ctx context.Context, seeds [][]byte) error {
	if !p.enforceSeedPolicy.Get(ctx) {
		return nil
	}
	return safety.RequireNonUserSeed(seeds, VaultStatePrefix, UserStatePrefix)
}

func (p *Processor) handleInitializeVault(ctx context.Context, accounts []*solana.AccountInfo) error {
	if len(accounts) < 2 {
		return ErrNotEnoughAccounts
	}
	vaultInfo, authority := accounts[0], accounts[1]

	if err := safety.CheckSigner(authority); err != nil {
		return err
	}
	if err := certifyUninitialized(vaultInfo, VaultAccountSize); err != nil {
		return err
	}

	seeds := vaultSeeds(authority.Address)
	if err := p.checkSeedPolicy(ctx, seeds); err != nil {
		return err
	}

	address, bump, err := safety.DerivePda(PROGRAM_ID, seeds...)
	if err != nil {
		return err
	}
	if !bytes.Equal(address, vaultInfo.Address) {
		return safety.ErrInvalidPDA
	}

	state := VaultAccount{
		Authority: authority.Address,
		Balance:   0,
		Locked:    false,
		Bump:      bump,
	}
	copy(vaultInfo.Data, state.Marshal())

	p.log.WithFields(logrus.Fields{
		"method": "handleInitializeVault",
		"vault":  base58.Encode(vaultInfo.Address),
		"bump":   bump,
	}).Debug("initialized vault")
	return nil
}

func (p *Processor) handleInitializeUser(ctx context.Context, args *InitializeUserInstructionArgs, accounts []*solana.AccountInfo) error {
	if len(accounts) < 2 {
		return ErrNotEnoughAccounts
	}
	userInfo, authority := accounts[0], accounts[1]

	if err := safety.CheckSigner(authority); err != nil {
		return err
	}
	if err := certifyUninitialized(userInfo, UserAccountSize); err != nil {
		return err
	}

	seeds := userSeeds(authority.Address)
	if err := p.checkSeedPolicy(ctx, seeds); err != nil {
		return err
	}

	address, bump, err := safety.DerivePda(PROGRAM_ID, seeds...)
	if err != nil {
		return err
	}
	if !bytes.Equal(address, userInfo.Address) {
		return safety.ErrInvalidPDA
	}

	state := UserAccount{
		Authority: authority.Address,
		Name:      args.Name,
		Points:    0,
		Bump:      bump,
	}
	copy(userInfo.Data, state.Marshal())

	p.log.WithFields(logrus.Fields{
		"method": "handleInitializeUser",
		"user":   base58.Encode(userInfo.Address),
	}).Debug("initialized user")
	return nil
}

// loadVault certifies a live vault account: program ownership, a valid
// discriminator, and an address matching the derivation from the stored
// authority and stored bump. A tampered bump or a vault presented at the
// wrong address fails here.
func loadVault(info *solana.AccountInfo) (*VaultAccount, error) {
	if err := safety.CheckOwner(info, PROGRAM_ID); err != nil {
		return nil, err
	}

	var state VaultAccount
	if err := state.Unmarshal(info.Data); err != nil {
		return nil, err
	}

	if err := safety.ValidatePda(info.Address, PROGRAM_ID, state.Bump, vaultSeeds(state.Authority)...); err != nil {
		return nil, err
	}
	return &state, nil
}

func loadUser(info *solana.AccountInfo) (*UserAccount, error) {
	if err := safety.CheckOwner(info, PROGRAM_ID); err != nil {
		return nil, err
	}

	var state UserAccount
	if err := state.Unmarshal(info.Data); err != nil {
		return nil, err
	}

	if err := safety.ValidatePda(info.Address, PROGRAM_ID, state.Bump, userSeeds(state.Authority)...); err != nil {
		return nil, err
	}
	return &state, nil
}

func (p *Processor) handleDeposit(_ context.Context, args *DepositInstructionArgs, accounts []*solana.AccountInfo) error {
	if len(accounts) < 2 {
		return ErrNotEnoughAccounts
	}
	vaultInfo, authority := accounts[0], accounts[1]

	if args.Amount == 0 {
		return ErrInvalidAmount
	}

	state, err := loadVault(vaultInfo)
	if err != nil {
		return err
	}
	if err := safety.CheckWritable(vaultInfo); err != nil {
		return err
	}
	if err := safety.AssertAuthority(vaultInfo, getVaultAuthority, authority); err != nil {
		return err
	}

	state.Balance, err = safemath.CheckedAddU64(state.Balance, args.Amount)
	if err != nil {
		return err
	}
	copy(vaultInfo.Data, state.Marshal())

	return nil
}

func (p *Processor) handleWithdraw(_ context.Context, args *WithdrawInstructionArgs, accounts []*solana.AccountInfo) error {
	if len(accounts) < 2 {
		return ErrNotEnoughAccounts
	}
	vaultInfo, authority := accounts[0], accounts[1]

	if args.Amount == 0 {
		return ErrInvalidAmount
	}

	state, err := loadVault(vaultInfo)
	if err != nil {
		return err
	}
	if err := safety.CheckWritable(vaultInfo); err != nil {
		return err
	}
	if err := safety.AssertAuthority(vaultInfo, getVaultAuthority, authority); err != nil {
		return err
	}

	state.Balance, err = safemath.CheckedSubU64(state.Balance, args.Amount)
	if err != nil {
		return err
	}
	copy(vaultInfo.Data, state.Marshal())

	return nil
}

func (p *Processor) handleTransferPoints(_ context.Context, args *TransferPointsInstructionArgs, accounts []*solana.AccountInfo) error {
	if len(accounts) < 3 {
		return ErrNotEnoughAccounts
	}
	fromInfo, toInfo, authority := accounts[0], accounts[1], accounts[2]

	if args.Amount == 0 {
		return ErrInvalidAmount
	}
	if bytes.Equal(fromInfo.Address, toInfo.Address) {
		return ErrSelfTransfer
	}

	from, err := loadUser(fromInfo)
	if err != nil {
		return err
	}
	to, err := loadUser(toInfo)
	if err != nil {
		return err
	}

	if err := safety.CheckWritable(fromInfo); err != nil {
		return err
	}
	if err := safety.CheckWritable(toInfo); err != nil {
		return err
	}
	if err := safety.AssertAuthority(fromInfo, getUserAuthority, authority); err != nil {
		return err
	}

	fromPoints, err := safemath.CheckedSubU64(from.Points, args.Amount)
	if err != nil {
		return err
	}
	toPoints, err := safemath.CheckedAddU64(to.Points, args.Amount)
	if err != nil {
		return err
	}

	// Both sides validated; commit.
	from.Points = fromPoints
	to.Points = toPoints
	copy(fromInfo.Data, from.Marshal())
	copy(toInfo.Data, to.Marshal())

	return nil
}

func (p *Processor) handleFlashLoan(ctx context.Context, args *FlashLoanInstructionArgs, accounts []*solana.AccountInfo) error {
	if len(accounts) < 3 {
		return ErrNotEnoughAccounts
	}
	vaultInfo, authority, callbackProgram := accounts[0], accounts[1], accounts[2]

	log := p.log.WithFields(logrus.Fields{
		"method": "handleFlashLoan",
		"vault":  base58.Encode(vaultInfo.Address),
		"amount": args.Amount,
		"fee":    args.ExpectedFee,
	})

	if args.Amount == 0 {
		return ErrInvalidAmount
	}

	state, err := loadVault(vaultInfo)
	if err != nil {
		return err
	}
	if err := safety.CheckWritable(vaultInfo); err != nil {
		return err
	}
	if err := safety.AssertAuthority(vaultInfo, getVaultAuthority, authority); err != nil {
		return err
	}

	// The persisted half of the reentrancy guard. A nested flash loan sees
	// the flag in account data and aborts here before touching the balance.
	if state.Locked {
		return safety.ErrReentrantCall
	}

	initialBalance := state.Balance

	remaining, err := safemath.CheckedSubU64(initialBalance, args.Amount)
	if err != nil {
		return err
	}
	expectedTotal, err := safemath.CheckedAddU64(initialBalance, args.ExpectedFee)
	if err != nil {
		return err
	}

	// Lock and lend before handing control away.
	state.Locked = true
	state.Balance = remaining
	copy(vaultInfo.Data, state.Marshal())

	guard := safety.NewCpiGuard(p.trustedCallbackPrograms.Get(ctx)...)

	// Least privilege: the callback gets no accounts. Repayment comes back
	// through this program's own deposit path.
	callback := solana.NewInstruction(callbackProgram.Address, nil)

	var refreshed VaultAccount
	err = guard.Invoke(
		callback,
		p.invoker,
		func() error {
			// The snapshot taken before the invocation is stale; the
			// borrower repays by writing vault state during the call.
			return refreshed.Unmarshal(vaultInfo.Data)
		},
		func() bool {
			return refreshed.Balance >= expectedTotal
		},
	)
	if err != nil {
		log.WithError(err).Debug("flash loan failed")
		return err
	}

	refreshed.Locked = false
	copy(vaultInfo.Data, refreshed.Marshal())

	log.Debug("flash loan repaid")
	return nil
}

func (p *Processor) handleCloseVault(_ context.Context, accounts []*solana.AccountInfo) error {
	if len(accounts) < 3 {
		return ErrNotEnoughAccounts
	}
	vaultInfo, destination, authority := accounts[0], accounts[1], accounts[2]

	// Certify the vault is live before draining it.
	if _, err := loadVault(vaultInfo); err != nil {
		return err
	}

	if err := safety.CloseAccount(vaultInfo, destination, authority, getVaultAuthority); err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"method": "handleCloseVault",
		"vault":  base58.Encode(vaultInfo.Address),
	}).Debug("closed vault")
	return nil
}
