// Package vault implements a points vault program built on top of the
// account safety verifier: PDA-addressed vault and user accounts, authority
// gated balance movement, a reentrancy guarded flash loan, and authority
// checked closure.
package vault

import (
	"crypto/ed25519"
	"crypto/sha256"

	"github.com/pkg/errors"
)

var (
	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
	ErrNotEnoughAccounts      = errors.New("not enough accounts")
	ErrAlreadyInitialized     = errors.New("account already initialized")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrSelfTransfer           = errors.New("cannot transfer to self")
)

// PROGRAM_ID is the address the program is deployed at. Accounts the program
// owns carry it in their owner field; the runtime supplies it when
// assigning ownership at account creation.
var PROGRAM_ID = ed25519.PublicKey{
	0x0b, 0x84, 0x5f, 0x3a, 0x19, 0xd2, 0x4e, 0x61,
	0x7c, 0x33, 0xa8, 0x90, 0x12, 0xeb, 0x55, 0x04,
	0xc6, 0x2f, 0x71, 0x0d, 0x9a, 0x48, 0xe3, 0xb7,
	0x26, 0x5d, 0x08, 0xf4, 0x91, 0x3c, 0xaa, 0x60,
}

// PDA seed prefixes. Every account address this program derives leads with
// one of these, so addresses can never be minted from purely caller-chosen
// seed material.
var (
	VaultStatePrefix = []byte("vault_state")
	UserStatePrefix  = []byte("user_state")
)

// sha256First8 derives an 8-byte discriminator from a namespaced name,
// anchor style.
func sha256First8(name string) []byte {
	h := sha256.Sum256([]byte(name))
	return h[:8]
}
