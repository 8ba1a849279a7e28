package vault

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/code-payments/account-guard/pkg/solana/binary"
)

const MaxUserNameLength = 32

const (
	VaultAccountSize = (8 + // discriminator
		32 + // authority
		8 + // balance
		1 + // locked
		1) // bump

	UserAccountSize = (8 + // discriminator
		32 + // authority
		MaxUserNameLength + // name
		8 + // points
		1) // bump
)

var (
	VaultAccountDiscriminator = sha256First8("account:Vault")
	UserAccountDiscriminator  = sha256First8("account:User")
)

// VaultAccount holds a balance controlled by a single authority. The bump is
// recorded at initialization and re-supplied on every later derivation
// check; Locked is the persisted half of the flash loan reentrancy guard.
type VaultAccount struct {
	Authority ed25519.PublicKey
	Balance   uint64
	Locked    bool
	Bump      uint8
}

func (obj *VaultAccount) Marshal() []byte {
	data := make([]byte, VaultAccountSize)

	var offset int
	binary.PutDiscriminator(data, VaultAccountDiscriminator, &offset)
	binary.PutKey32(data[offset:], obj.Authority, &offset)
	binary.PutUint64(data[offset:], obj.Balance, &offset)
	binary.PutBool(data[offset:], obj.Locked, &offset)
	binary.PutUint8(data[offset:], obj.Bump, &offset)

	return data
}

func (obj *VaultAccount) Unmarshal(data []byte) error {
	if len(data) < VaultAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, VaultAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	binary.GetKey32(data[offset:], &obj.Authority, &offset)
	binary.GetUint64(data[offset:], &obj.Balance, &offset)
	binary.GetBool(data[offset:], &obj.Locked, &offset)
	binary.GetUint8(data[offset:], &obj.Bump, &offset)

	return nil
}

func (obj *VaultAccount) String() string {
	return fmt.Sprintf(
		"VaultAccount{authority=%s,balance=%d,locked=%t,bump=%d}",
		base58.Encode(obj.Authority),
		obj.Balance,
		obj.Locked,
		obj.Bump,
	)
}

// UserAccount tracks a named points balance for one authority.
type UserAccount struct {
	Authority ed25519.PublicKey
	Name      string
	Points    uint64
	Bump      uint8
}

func (obj *UserAccount) Marshal() []byte {
	data := make([]byte, UserAccountSize)

	var offset int
	binary.PutDiscriminator(data, UserAccountDiscriminator, &offset)
	binary.PutKey32(data[offset:], obj.Authority, &offset)
	binary.PutFixedString(data[offset:], obj.Name, MaxUserNameLength, &offset)
	binary.PutUint64(data[offset:], obj.Points, &offset)
	binary.PutUint8(data[offset:], obj.Bump, &offset)

	return data
}

func (obj *UserAccount) Unmarshal(data []byte) error {
	if len(data) < UserAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, UserAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	binary.GetKey32(data[offset:], &obj.Authority, &offset)
	binary.GetFixedString(data[offset:], &obj.Name, MaxUserNameLength, &offset)
	binary.GetUint64(data[offset:], &obj.Points, &offset)
	binary.GetUint8(data[offset:], &obj.Bump, &offset)

	return nil
}

func (obj *UserAccount) String() string {
	return fmt.Sprintf(
		"UserAccount{authority=%s,name=%s,points=%d,bump=%d}",
		base58.Encode(obj.Authority),
		obj.Name,
		obj.Points,
		obj.Bump,
	)
}

// getVaultAuthority is the stored-authority accessor handed to the safety
// package for vault accounts. It refuses data that fails the discriminator
// check, so closed or foreign accounts never yield an authority.
func getVaultAuthority(data []byte) ([]byte, error) {
	var state VaultAccount
	if err := state.Unmarshal(data); err != nil {
		return nil, err
	}
	return state.Authority, nil
}

// getUserAuthority is the stored-authority accessor for user accounts.
func getUserAuthority(data []byte) ([]byte, error) {
	var state UserAccount
	if err := state.Unmarshal(data); err != nil {
		return nil, err
	}
	return state.Authority, nil
}
