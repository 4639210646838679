// Package auth provides password hashing and session token issuance for the
// userkeeper server.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
	Name   string `json:"name"`
	UserID string `json:"id"`
}

// TokenIssuer signs and verifies HS256 session tokens with a single secret
// fixed at construction.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl, now: time.Now}
}

// Issue returns a signed token for the given identity with iat and exp set.
func (i *TokenIssuer) Issue(name, userID string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Name:   name,
		UserID: userID,
	})

	s, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Verify parses tokenString and returns its claims. Any failure is reported
// as common.ErrInvalidToken, except an elapsed exp which is
// common.ErrTokenExpired.
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" || claims.Name == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
