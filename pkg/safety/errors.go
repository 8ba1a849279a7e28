package safety

import "github.com/pkg/errors"

// Every error in this package is terminal for the instruction that raised
// it. A failed check means the precondition is false, not that something
// transient happened, so nothing here is ever retried; the caller aborts and
// the runtime rolls the whole transaction back.
var (
	ErrWrongOwner         = errors.New("account is not owned by the expected program")
	ErrMissingSignature   = errors.New("required signature is missing")
	ErrUnauthorized       = errors.New("signer does not match the account's stored authority")
	ErrInvalidPDA         = errors.New("address does not match the derived program address")
	ErrUnsafeSeeds        = errors.New("seeds must include a program domain prefix and an owner key")
	ErrReentrantCall      = errors.New("reentrant invocation")
	ErrUntrustedProgram   = errors.New("program is not trusted for invocation")
	ErrInvariantViolation = errors.New("post-invocation invariant does not hold")
	ErrInvalidDestination = errors.New("closure destination must be the verified authority")
	ErrNotWritable        = errors.New("account is not writable")
)
