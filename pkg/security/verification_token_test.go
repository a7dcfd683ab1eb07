package security

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	t.Parallel()

	before := time.Now()
	token, expiry, err := NewToken(15 * time.Minute)
	require.NoError(t, err)

	// 32 random bytes, hex encoded
	assert.Len(t, token, 64)
	assert.Equal(t, strings.ToLower(token), token)

	assert.True(t, expiry.After(before.Add(14*time.Minute)))
	assert.True(t, expiry.Before(before.Add(16*time.Minute)))
}

func TestNewToken_Unique(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for range 100 {
		token, _, err := NewToken(time.Minute)
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestTokenCode(t *testing.T) {
	t.Parallel()

	token, _, err := NewToken(time.Minute)
	require.NoError(t, err)

	code := TokenCode(token)
	assert.Len(t, code, 6)
	assert.Equal(t, strings.ToUpper(token[:6]), code)

	// The code is a shorthand of the token itself, not a second secret
	assert.True(t, strings.HasPrefix(strings.ToUpper(token), code))
}
