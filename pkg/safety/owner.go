// Package safety provides the account verification primitives an
// instruction handler runs before mutating state: ownership and signer
// checks, program derived address validation, stored-authority assertions,
// a reentrancy guard around cross-program invocations, and authority-checked
// account closure.
//
// All functions operate on caller-supplied account snapshots and hold no
// state of their own beyond the single CpiGuard value a handler scopes to
// one instruction.
package safety

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/account-guard/pkg/solana"
)

// CheckOwner verifies the account is owned by the expected program.
//
// This check is independent of CheckSigner. Neither implies the other, and
// security-critical accounts need both invoked explicitly: an account owned
// by the right program can still be presented without a signature, and a
// signer can still hand over an account owned by a hostile program.
func CheckOwner(info *solana.AccountInfo, expectedProgram ed25519.PublicKey) error {
	if !bytes.Equal(info.Owner, expectedProgram) {
		return ErrWrongOwner
	}
	return nil
}

// CheckSigner verifies the transaction was signed by the account's key.
func CheckSigner(info *solana.AccountInfo) error {
	if !info.IsSigner {
		return ErrMissingSignature
	}
	return nil
}

// CheckWritable verifies the account was marked writable by the transaction.
func CheckWritable(info *solana.AccountInfo) error {
	if !info.IsWritable {
		return ErrNotWritable
	}
	return nil
}
