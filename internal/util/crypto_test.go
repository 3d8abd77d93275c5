package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoRandomBytes(t *testing.T) {
	bytes, err := CryptoRandomBytes(32)
	require.NoError(t, err)
	assert.Len(t, bytes, 32)

	other, err := CryptoRandomBytes(32)
	require.NoError(t, err)
	assert.NotEqual(t, bytes, other)
}

func TestCryptoRandomString(t *testing.T) {
	t.Run("even length", func(t *testing.T) {
		s, err := CryptoRandomString(16)
		require.NoError(t, err)
		assert.Len(t, s, 16)
	})

	t.Run("odd length", func(t *testing.T) {
		s, err := CryptoRandomString(15)
		require.NoError(t, err)
		assert.Len(t, s, 15)
	})
}

func TestRandomState(t *testing.T) {
	state, err := RandomState(32)
	require.NoError(t, err)
	assert.NotEmpty(t, state)

	other, err := RandomState(32)
	require.NoError(t, err)
	assert.NotEqual(t, state, other)
}
