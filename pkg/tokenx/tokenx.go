// Package tokenx mints session tokens for authenticated clients. The original
// deployment delegated this to an external identity provider's custom-token
// API; Issuer keeps that collaborator behind an interface and JWTIssuer is the
// self-contained implementation used by default.
package tokenx

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer mints an opaque session token keyed by the user's identity and
// display name.
type Issuer interface {
	IssueToken(ctx context.Context, userID, email, displayName string) (string, error)
}

var ErrInvalidToken = errors.New("tokenx: invalid token")

// SessionClaims is the claim set carried by issued tokens.
type SessionClaims struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	jwt.RegisteredClaims
}

// JWTIssuer issues HS256-signed session tokens.
type JWTIssuer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (i *JWTIssuer) IssueToken(ctx context.Context, userID, email, displayName string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email:       email,
		DisplayName: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.Secret)
}

// Verify parses and validates a token minted by IssueToken. Clients normally
// hand tokens straight to the chat transport, so this mostly serves tests and
// debugging.
func (i *JWTIssuer) Verify(tokenString string) (SessionClaims, error) {
	var claims SessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.Secret, nil
	}, jwt.WithIssuer(i.Issuer))
	if err != nil || !token.Valid {
		return SessionClaims{}, ErrInvalidToken
	}
	return claims, nil
}
