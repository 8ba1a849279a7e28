package safety

import (
	"bytes"

	"github.com/code-payments/account-guard/pkg/solana"
	"github.com/code-payments/account-guard/pkg/solana/binary"
	"github.com/code-payments/account-guard/pkg/safemath"
)

// ClosedAccountDiscriminator is stamped over the leading discriminator of a
// closed account's data. It matches no live account type, so a later attempt
// to reinitialize or deserialize state at the same address fails the
// discriminator check instead of silently resurrecting the account.
var ClosedAccountDiscriminator = []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// IsClosed reports whether account data carries the closed stamp.
func IsClosed(data []byte) bool {
	return len(data) >= binary.DiscriminatorSize &&
		bytes.Equal(data[:binary.DiscriminatorSize], ClosedAccountDiscriminator)
}

// CloseAccount drains and retires an account in one non-interruptible step:
// it asserts the signer is the account's stored authority, moves the full
// lamport balance to that authority, zeroes the data, and stamps the closed
// discriminator.
//
// The destination is required to be the verified authority. Accepting an
// arbitrary destination account, the "close to an address supplied in
// instruction arguments" pattern, is exactly how closure drains get
// redirected, so this function does not offer it.
//
// All checks run before any mutation; on error the snapshots are untouched.
func CloseAccount(account, destination, signer *solana.AccountInfo, getAuthority AuthorityAccessor) error {
	if err := AssertAuthority(account, getAuthority, signer); err != nil {
		return err
	}
	if !bytes.Equal(destination.Address, signer.Address) {
		return ErrInvalidDestination
	}
	if err := CheckWritable(account); err != nil {
		return err
	}
	if err := CheckWritable(destination); err != nil {
		return err
	}

	credited, err := safemath.CheckedAddU64(destination.Lamports, account.Lamports)
	if err != nil {
		return err
	}

	destination.Lamports = credited
	account.Lamports = 0

	for i := range account.Data {
		account.Data[i] = 0
	}
	if len(account.Data) >= binary.DiscriminatorSize {
		copy(account.Data, ClosedAccountDiscriminator)
	}

	return nil
}
