package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	digest, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	assert.NotEqual(t, "correct horse battery staple", digest, "digest must not equal the plaintext")
	assert.True(t, Verify("correct horse battery staple", digest))
	assert.False(t, Verify("wrong password", digest))
}

// TestHash_FreshSaltPerCall は同じパスワードを2回ハッシュ化すると異なるダイジェストになり、
// どちらも検証に成功することを確認します。
func TestHash_FreshSaltPerCall(t *testing.T) {
	d1, err := Hash("password123")
	require.NoError(t, err)
	d2, err := Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2, "bcrypt must salt each digest")
	assert.True(t, Verify("password123", d1))
	assert.True(t, Verify("password123", d2))
}

func TestVerify_MalformedDigest(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{"empty digest", ""},
		{"not a bcrypt digest", "plaintext-stored-by-mistake"},
		{"truncated digest", "$2a$10$tooShort"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Verify("anything", tt.digest))
		})
	}
}

func TestDummyDigest_IsWellFormed(t *testing.T) {
	// The dummy digest must be parseable so the bcrypt comparison runs at
	// full cost, and must never match a real password.
	assert.False(t, Verify("password123", DummyDigest))
	assert.False(t, Verify("", DummyDigest))
}
