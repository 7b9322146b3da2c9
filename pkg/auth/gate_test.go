package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_DisabledWithoutSecret(t *testing.T) {
	g := NewGate("")

	assert.False(t, g.Enabled())
	assert.True(t, g.Authenticated())
	assert.NoError(t, g.Unlock("anything"))

	g.Lock()
	assert.True(t, g.Authenticated(), "disabled gate cannot be locked")
}

func TestGate_PlainSecret(t *testing.T) {
	g := NewGate("hunter2")
	require.True(t, g.Enabled())
	require.False(t, g.Authenticated())

	assert.ErrorIs(t, g.Unlock(""), ErrEmptyPassword)
	assert.ErrorIs(t, g.Unlock("hunter"), ErrIncorrectPassword)
	assert.ErrorIs(t, g.Unlock("hunter22"), ErrIncorrectPassword)
	assert.False(t, g.Authenticated())

	require.NoError(t, g.Unlock("hunter2"))
	assert.True(t, g.Authenticated())

	g.Lock()
	assert.False(t, g.Authenticated())
}

func TestGate_HashedSecret(t *testing.T) {
	hash, err := HashSecret("open sesame")
	require.NoError(t, err)
	require.True(t, IsHashed(hash))

	g := NewGate(hash)
	assert.ErrorIs(t, g.Unlock(hash), ErrIncorrectPassword, "the hash itself is not the password")
	assert.ErrorIs(t, g.Unlock("open"), ErrIncorrectPassword)

	require.NoError(t, g.Unlock("open sesame"))
	assert.True(t, g.Authenticated())
}

func TestHashSecret_Empty(t *testing.T) {
	_, err := HashSecret("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestIsHashed(t *testing.T) {
	assert.True(t, IsHashed("$2a$10$abcdefghijklmnopqrstuv"))
	assert.True(t, IsHashed("$2b$12$abcdefghijklmnopqrstuv"))
	assert.False(t, IsHashed("password"))
	assert.False(t, IsHashed("$1$md5crypt"))
}
