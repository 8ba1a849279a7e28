package wrapper

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/account-guard/pkg/config/memory"
)

func TestBoolConfig(t *testing.T) {
	ctx := context.Background()

	override := memory.NewConfig(nil)
	c := NewBoolConfig(override, true)

	val, err := c.GetSafe(ctx)
	require.NoError(t, err)
	assert.True(t, val)

	override.SetValue([]byte("false"))
	val, err = c.GetSafe(ctx)
	require.NoError(t, err)
	assert.False(t, val)

	override.SetValue(true)
	val, err = c.GetSafe(ctx)
	require.NoError(t, err)
	assert.True(t, val)

	override.SetValue([]byte("not-a-bool"))
	_, err = c.GetSafe(ctx)
	assert.Error(t, err)

	override.SetValue(42)
	_, err = c.GetSafe(ctx)
	assert.Equal(t, ErrUnsuportedConversion, err)
}

func TestUint64Config(t *testing.T) {
	ctx := context.Background()

	override := memory.NewConfig(nil)
	c := NewUint64Config(override, 10)

	val, err := c.GetSafe(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 10, val)

	override.SetValue([]byte("12345"))
	val, err = c.GetSafe(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 12345, val)

	override.SetValue([]byte("-1"))
	_, err = c.GetSafe(ctx)
	assert.Error(t, err)
}

func TestKeysConfig(t *testing.T) {
	ctx := context.Background()

	keyA, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	keyB, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	override := memory.NewConfig(nil)
	c := NewKeysConfig(override, []ed25519.PublicKey{keyA})

	val, err := c.GetSafe(ctx)
	require.NoError(t, err)
	require.Len(t, val, 1)
	assert.EqualValues(t, keyA, val[0])

	override.SetValue([]byte(base58.Encode(keyA) + ", " + base58.Encode(keyB)))
	val, err = c.GetSafe(ctx)
	require.NoError(t, err)
	require.Len(t, val, 2)
	assert.EqualValues(t, keyA, val[0])
	assert.EqualValues(t, keyB, val[1])

	override.SetValue([]byte("0OIl")) // not valid base58
	_, err = c.GetSafe(ctx)
	assert.Error(t, err)

	override.SetValue([]byte(base58.Encode([]byte("too short"))))
	_, err = c.GetSafe(ctx)
	assert.Error(t, err)
}
