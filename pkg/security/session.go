package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long a minted session credential stays valid. The
// server never stores sessions, so there is no revocation before expiry.
const SessionTTL = 7 * 24 * time.Hour

var ErrInvalidSession = errors.New("session credential invalid")

type SessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// MintSession signs a self-contained credential binding userID, valid
// for SessionTTL from now.
func MintSession(userID string, secret []byte) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
		UserID: userID,
	})

	return token.SignedString(secret)
}

// ParseSession validates signature and expiry and returns the embedded
// user ID. Every failure mode collapses into ErrInvalidSession so a
// caller can't tell a forged token from an expired one.
func ParseSession(tokenStr string, secret []byte) (string, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidSession
	}

	return claims.UserID, nil
}
