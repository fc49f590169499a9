package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2HasherRoundTrip(t *testing.T) {
	h := NewArgon2Hasher()

	encoded, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))
	assert.NotEqual(t, "correct horse battery staple", encoded)

	ok, err := h.Verify(encoded, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(encoded, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2HasherSaltsEveryHash(t *testing.T) {
	h := NewArgon2Hasher()

	first, err := h.Hash("p")
	require.NoError(t, err)
	second, err := h.Hash("p")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArgon2HasherSelfDescribingParameters(t *testing.T) {
	// Verification must need nothing beyond the encoded string, so a
	// hasher with different cost settings still verifies old hashes.
	old := &Argon2Hasher{Time: 2, Memory: 32 * 1024, Threads: 2, KeyLen: 32, SaltLen: 32}
	encoded, err := old.Hash("p")
	require.NoError(t, err)

	ok, err := NewArgon2Hasher().Verify(encoded, "p")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2HasherVerifyMalformed(t *testing.T) {
	h := NewArgon2Hasher()

	tests := []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$not-base64!$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
	}

	for _, encoded := range tests {
		ok, err := h.Verify(encoded, "p")
		assert.Error(t, err, "encoded=%q", encoded)
		assert.False(t, ok)
	}
}
