package solana

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

// AccountInfo is a snapshot of a Solana account as observed by a single
// instruction. The runtime owns the underlying account; an AccountInfo is
// only valid for the duration of the instruction it was supplied to and
// must never be retained across instructions.
type AccountInfo struct {
	Address    ed25519.PublicKey
	Owner      ed25519.PublicKey
	Lamports   uint64
	Data       []byte
	IsSigner   bool
	IsWritable bool
}

// Clone returns a deep copy of the snapshot. Handlers that need a pre-CPI
// view of an account for later comparison should clone it rather than hold
// the original, since the runtime may rewrite the backing data during a
// cross-program invocation.
func (a *AccountInfo) Clone() *AccountInfo {
	data := make([]byte, len(a.Data))
	copy(data, a.Data)

	return &AccountInfo{
		Address:    a.Address,
		Owner:      a.Owner,
		Lamports:   a.Lamports,
		Data:       data,
		IsSigner:   a.IsSigner,
		IsWritable: a.IsWritable,
	}
}

func (a *AccountInfo) String() string {
	return fmt.Sprintf(
		"AccountInfo{address=%s,owner=%s,lamports=%d,data_len=%d,is_signer=%t,is_writable=%t}",
		base58.Encode(a.Address),
		base58.Encode(a.Owner),
		a.Lamports,
		len(a.Data),
		a.IsSigner,
		a.IsWritable,
	)
}
