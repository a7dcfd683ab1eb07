package security

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintAndParseSession(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")

	token, err := MintSession("user-123", secret)
	require.NoError(t, err)

	userID, err := ParseSession(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestParseSession_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := MintSession("user-123", []byte("right-secret"))
	require.NoError(t, err)

	_, err = ParseSession(token, []byte("wrong-secret"))
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestParseSession_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")

	// Mint directly with a past expiry, MintSession always uses the
	// fixed window
	now := time.Now()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		},
		UserID: "user-123",
	})
	tokenStr, err := expired.SignedString(secret)
	require.NoError(t, err)

	_, err = ParseSession(tokenStr, secret)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestParseSession_TamperedExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")

	token, err := MintSession("user-123", secret)
	require.NoError(t, err)

	// Push the embedded expiry a year forward without re-signing. The
	// signature no longer matches and the credential must be rejected.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	claims := map[string]any{}
	require.NoError(t, json.Unmarshal(payload, &claims))
	claims["exp"] = time.Now().Add(365 * 24 * time.Hour).Unix()

	forged, err := json.Marshal(claims)
	require.NoError(t, err)
	parts[1] = base64.RawURLEncoding.EncodeToString(forged)

	_, err = ParseSession(strings.Join(parts, "."), secret)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestParseSession_Malformed(t *testing.T) {
	t.Parallel()

	for _, tokenStr := range []string{"", "not.a.jwt", "garbage"} {
		_, err := ParseSession(tokenStr, []byte("k"))
		assert.ErrorIs(t, err, ErrInvalidSession, "token=%q", tokenStr)
	}
}

func TestParseSession_EmptyUserID(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")

	token, err := MintSession("", secret)
	require.NoError(t, err)

	_, err = ParseSession(token, secret)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
