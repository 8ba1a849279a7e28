// Package safemath provides checked arithmetic over unsigned 64-bit
// integers. Every operation either returns the exact mathematical result or
// a typed error; values are never silently wrapped or truncated.
package safemath

import (
	"math"

	"github.com/pkg/errors"
)

var (
	ErrOverflow     = errors.New("arithmetic overflow")
	ErrUnderflow    = errors.New("arithmetic underflow")
	ErrDivideByZero = errors.New("divide by zero")
)

// Rounding selects the direction a lossy division is rounded in. There is
// deliberately no default: paying out should round down, charging should
// round up, and the caller knows which context it is in.
type Rounding uint8

const (
	RoundDown Rounding = iota
	RoundUp
)

func CheckedAddU64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

func CheckedSubU64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrUnderflow
	}
	return a - b, nil
}

func CheckedMulU64(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > math.MaxUint64/b {
		return 0, ErrOverflow
	}
	return a * b, nil
}

func CheckedDivU64(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

// CheckedMulDivU64 computes amount * numerator / denominator, multiplying
// before dividing so that precision is not discarded up front. The naive
// divide-then-multiply order loses the remainder of the first division
// entirely; this order only loses sub-unit precision, and the rounding
// parameter decides who keeps it.
func CheckedMulDivU64(amount, numerator, denominator uint64, rounding Rounding) (uint64, error) {
	if denominator == 0 {
		return 0, ErrDivideByZero
	}

	scaled, err := CheckedMulU64(amount, numerator)
	if err != nil {
		return 0, err
	}

	quotient := scaled / denominator
	if rounding == RoundUp && scaled%denominator != 0 {
		return CheckedAddU64(quotient, 1)
	}
	return quotient, nil
}
