package safety

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/account-guard/pkg/solana"
)

// PdaDescriptor pins a program derived address to the seeds, program and
// bump it was created from. The bump is stored at creation time and
// re-supplied on every subsequent use; it is never recomputed, both to avoid
// the derivation loop and so that a tampered stored bump is caught by
// ValidatePda instead of silently re-derived around.
type PdaDescriptor struct {
	Seeds   [][]byte
	Program ed25519.PublicKey
	Bump    uint8
}

// DerivePda derives the canonical program address and bump for a seed set.
// The derivation is deterministic; callers should persist the returned bump
// alongside the account it addresses.
func DerivePda(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	address, bump, err := solana.FindProgramAddressAndBump(program, seeds...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to derive program address")
	}
	return address, bump, nil
}

// ValidatePda recomputes the canonical derivation for the seed set and
// compares both the address and the claimed bump against it.
//
// A claimed bump other than the canonical one is rejected even when it
// happens to hash to a valid off-curve address: accepting non-canonical
// bumps lets an attacker mint multiple "valid" addresses for one logical
// seed set.
func ValidatePda(address ed25519.PublicKey, program ed25519.PublicKey, claimedBump uint8, seeds ...[]byte) error {
	derived, canonicalBump, err := solana.FindProgramAddressAndBump(program, seeds...)
	if err != nil {
		return errors.Wrap(err, "failed to derive program address")
	}

	if claimedBump != canonicalBump {
		return ErrInvalidPDA
	}
	if !bytes.Equal(address, derived) {
		return ErrInvalidPDA
	}
	return nil
}

// Validate recomputes the descriptor's derivation and compares it against
// the provided address.
func (d *PdaDescriptor) Validate(address ed25519.PublicKey) error {
	return ValidatePda(address, d.Program, d.Bump, d.Seeds...)
}

// RequireNonUserSeed is an opt-in policy check on seed construction: the
// seed set must lead with one of the program's fixed domain prefixes and
// must contain at least one full public key component tying the address to
// a logical owner. Seed sets built purely from caller-chosen strings collide
// across users and are rejected.
//
// Whether a caller-chosen index is allowed as an *additional* seed (to
// permit multiple accounts per owner) is left to the caller; this check only
// insists on the program-controlled prefix and the owner component.
func RequireNonUserSeed(seeds [][]byte, domainPrefixes ...[]byte) error {
	if len(seeds) < 2 || len(domainPrefixes) == 0 {
		return ErrUnsafeSeeds
	}

	var prefixed bool
	for _, prefix := range domainPrefixes {
		if bytes.Equal(seeds[0], prefix) {
			prefixed = true
			break
		}
	}
	if !prefixed {
		return ErrUnsafeSeeds
	}

	for _, seed := range seeds[1:] {
		if len(seed) == ed25519.PublicKeySize {
			return nil
		}
	}
	return ErrUnsafeSeeds
}
