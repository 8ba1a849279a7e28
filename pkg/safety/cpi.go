package safety

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/account-guard/pkg/solana"
)

type GuardState uint8

const (
	StateUnlocked GuardState = iota
	StateLocked
)

func (s GuardState) String() string {
	switch s {
	case StateUnlocked:
		return "unlocked"
	case StateLocked:
		return "locked"
	}

	return "unknown"
}

// Invariant is a side-effect-free predicate over refreshed account state,
// evaluated after an external invocation returns. A typical invariant is
// "balance after >= balance before + expected fee".
type Invariant func() bool

// CpiInvoker hands an instruction to the surrounding runtime for execution.
// The account list on the instruction should be the minimum the invoked
// program needs; the guard cannot enforce that, the runtime scopes
// permissions, but every extra account is extra attack surface.
type CpiInvoker func(instruction solana.Instruction) error

// CpiGuard is a reentrancy lock around cross-program invocations, scoped to
// a single instruction's execution.
//
// This is not a mutual-exclusion primitive. Execution is single threaded;
// the only way the guard can be observed locked is that an invoked program
// re-entered the caller's code path while the original invocation is still
// on the stack. There is nothing to wait for in that situation, so an
// attempted transition from Locked always fails instead of blocking.
type CpiGuard struct {
	state   GuardState
	trusted []ed25519.PublicKey
}

// NewCpiGuard creates an unlocked guard. If trusted programs are provided,
// Enter additionally rejects invocations of any program not on the list,
// closing off the confused deputy variant where the program id itself comes
// from instruction arguments.
func NewCpiGuard(trustedPrograms ...ed25519.PublicKey) *CpiGuard {
	return &CpiGuard{
		state:   StateUnlocked,
		trusted: trustedPrograms,
	}
}

func (g *CpiGuard) State() GuardState {
	return g.state
}

// Enter transitions the guard to Locked immediately before an external
// invocation. If the guard is already locked the instruction is being
// re-entered and must abort.
func (g *CpiGuard) Enter(program ed25519.PublicKey) error {
	if g.state == StateLocked {
		return ErrReentrantCall
	}

	if len(g.trusted) > 0 {
		var ok bool
		for _, trusted := range g.trusted {
			if bytes.Equal(program, trusted) {
				ok = true
				break
			}
		}
		if !ok {
			return ErrUntrustedProgram
		}
	}

	g.state = StateLocked
	return nil
}

// Exit verifies the caller's post-invocation invariant and, only if it
// holds, transitions back to Unlocked. On violation the guard stays locked
// and the instruction must fail; the runtime rolls back all state changes
// atomically, so there is no partial commit to clean up.
//
// The invariant must be evaluated over refreshed account state. Any snapshot
// taken before the invocation is stale: the invoked program may have
// rewritten the account data behind it.
func (g *CpiGuard) Exit(invariant Invariant) error {
	if g.state != StateLocked {
		return errors.New("guard is not locked")
	}

	if invariant != nil && !invariant() {
		return ErrInvariantViolation
	}

	g.state = StateUnlocked
	return nil
}

// Invoke runs the full guarded sequence: lock, invoke, refresh local
// snapshots, verify the invariant, unlock. The refresh callback is the
// caller's chance to re-read any account state the invariant depends on.
func (g *CpiGuard) Invoke(instruction solana.Instruction, invoke CpiInvoker, refresh func() error, invariant Invariant) error {
	if err := g.Enter(instruction.Program); err != nil {
		return err
	}

	if err := invoke(instruction); err != nil {
		return errors.Wrap(err, "invocation failed")
	}

	if refresh != nil {
		if err := refresh(); err != nil {
			return errors.Wrap(err, "failed to refresh account state")
		}
	}

	return g.Exit(invariant)
}
