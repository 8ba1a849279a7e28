package safety

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/code-payments/account-guard/pkg/solana"
)

// AuthorityAccessor reads the stored authority key out of an account's data.
// The data layout belongs to the program that owns the account, so the
// accessor is supplied by the caller.
type AuthorityAccessor func(data []byte) ([]byte, error)

// AssertAuthority verifies that the subject account's stored authority field
// matches the signer's address, and that the signer actually signed.
//
// The authority is always read from account state. An authority presented as
// a plain instruction argument must never be substituted here: a caller can
// claim any key it likes in arguments, and comparing a claimed value against
// itself proves nothing.
func AssertAuthority(subject *solana.AccountInfo, getAuthority AuthorityAccessor, signer *solana.AccountInfo) error {
	if err := CheckSigner(signer); err != nil {
		return err
	}

	stored, err := getAuthority(subject.Data)
	if err != nil {
		return errors.Wrap(err, "failed to read stored authority")
	}

	if !bytes.Equal(stored, signer.Address) {
		return ErrUnauthorized
	}
	return nil
}
