package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashVerify(t *testing.T) {
	hash, err := Hash("correct horse battery")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse battery", hash)
	assert.True(t, Verify("correct horse battery", hash))
	assert.False(t, Verify("correct horse battery!", hash))
	assert.False(t, Verify("", hash))
}

func TestHash_Salted(t *testing.T) {
	a, err := Hash("same-password")
	require.NoError(t, err)
	b, err := Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, Verify("same-password", a))
	assert.True(t, Verify("same-password", b))
}

func TestVerify_MalformedHash(t *testing.T) {
	assert.False(t, Verify("secret", ""))
	assert.False(t, Verify("secret", "not-a-bcrypt-hash"))
	assert.False(t, Verify("secret", "$2a$10$short"))
}

func TestHash_CountsBytes(t *testing.T) {
	// 40 characters, 80 bytes
	_, err := Hash(strings.Repeat("é", 40))
	assert.ErrorIs(t, err, ErrTooLong)

	hash, err := Hash(strings.Repeat("é", 36))
	require.NoError(t, err)
	assert.True(t, Verify(strings.Repeat("é", 36), hash))
}
