package security

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

const tokenSize = 32

// NewToken generates an opaque high-entropy token (32 random bytes,
// hex-encoded) with an absolute expiry of now + ttl.
func NewToken(ttl time.Duration) (token string, expiry time.Time, err error) {
	b := make([]byte, tokenSize)
	if _, err = rand.Read(b); err != nil {
		return "", time.Time{}, err
	}

	return hex.EncodeToString(b), time.Now().Add(ttl), nil
}

// TokenCode derives the short verification code shown in mails: the
// first 6 characters of the token, uppercased. It is a display shorthand
// of the same token, resolved by prefix match, not a second credential.
func TokenCode(token string) string {
	if len(token) < 6 {
		return strings.ToUpper(token)
	}
	return strings.ToUpper(token[:6])
}
