package safemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckedAddU64(t *testing.T) {
	result, err := CheckedAddU64(700, 300)
	require.NoError(t, err)
	assert.EqualValues(t, 1000, result)

	result, err = CheckedAddU64(math.MaxUint64, 0)
	require.NoError(t, err)
	assert.EqualValues(t, uint64(math.MaxUint64), result)

	cases := []struct {
		a, b uint64
	}{
		{math.MaxUint64, 1},
		{1, math.MaxUint64},
		{math.MaxUint64, math.MaxUint64},
		{math.MaxUint64/2 + 1, math.MaxUint64/2 + 1},
	}
	for _, tc := range cases {
		_, err := CheckedAddU64(tc.a, tc.b)
		assert.Equal(t, ErrOverflow, err)
	}
}

func TestCheckedSubU64(t *testing.T) {
	result, err := CheckedSubU64(1000, 300)
	require.NoError(t, err)
	assert.EqualValues(t, 700, result)

	result, err = CheckedSubU64(50, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 0, result)

	cases := []struct {
		a, b uint64
	}{
		{50, 1000},
		{0, 1},
		{math.MaxUint64 - 1, math.MaxUint64},
	}
	for _, tc := range cases {
		_, err := CheckedSubU64(tc.a, tc.b)
		assert.Equal(t, ErrUnderflow, err)
	}
}

func TestCheckedMulU64(t *testing.T) {
	result, err := CheckedMulU64(123, 456)
	require.NoError(t, err)
	assert.EqualValues(t, 56088, result)

	result, err = CheckedMulU64(math.MaxUint64, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, result)

	result, err = CheckedMulU64(0, math.MaxUint64)
	require.NoError(t, err)
	assert.EqualValues(t, 0, result)

	_, err = CheckedMulU64(math.MaxUint64, 2)
	assert.Equal(t, ErrOverflow, err)

	_, err = CheckedMulU64(math.MaxUint64/2+1, 2)
	assert.Equal(t, ErrOverflow, err)
}

func TestCheckedDivU64(t *testing.T) {
	result, err := CheckedDivU64(1000, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 333, result)

	_, err = CheckedDivU64(1000, 0)
	assert.Equal(t, ErrDivideByZero, err)

	_, err = CheckedDivU64(0, 0)
	assert.Equal(t, ErrDivideByZero, err)
}

func TestCheckedMulDivU64(t *testing.T) {
	// 100 shares of a pool holding 1050 tokens across 1000 total shares.
	// Dividing first would yield 100 * (1050 / 1000) = 100.
	payout, err := CheckedMulDivU64(100, 1050, 1000, RoundDown)
	require.NoError(t, err)
	assert.EqualValues(t, 105, payout)

	// Rounding direction is explicit: the same lossy ratio rounds down for
	// payouts and up for charges.
	down, err := CheckedMulDivU64(10, 1, 3, RoundDown)
	require.NoError(t, err)
	assert.EqualValues(t, 3, down)

	up, err := CheckedMulDivU64(10, 1, 3, RoundUp)
	require.NoError(t, err)
	assert.EqualValues(t, 4, up)

	// Exact results are unaffected by rounding direction.
	exact, err := CheckedMulDivU64(10, 2, 4, RoundUp)
	require.NoError(t, err)
	assert.EqualValues(t, 5, exact)

	_, err = CheckedMulDivU64(math.MaxUint64, 2, 1000, RoundDown)
	assert.Equal(t, ErrOverflow, err)

	_, err = CheckedMulDivU64(10, 1, 0, RoundDown)
	assert.Equal(t, ErrDivideByZero, err)
}
