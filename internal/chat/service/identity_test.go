package service

import (
	"context"
	"testing"
	"time"

	"github.com/chronolock/chatd/pkg/tokenx"
	"github.com/stretchr/testify/require"
)

func newTestIssuer() *tokenx.JWTIssuer {
	return &tokenx.JWTIssuer{
		Secret: []byte("test-secret"),
		Issuer: "chatd-test",
		TTL:    time.Hour,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedUser(t, st, "U1", "u1@example.com", "secret")

	issuer := newTestIssuer()
	svc := &IdentityService{Store: st, Tokens: issuer}

	t.Run("missing fields", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "", "secret")
		require.ErrorIs(t, err, ErrMissingFields)

		_, _, err = svc.Login(ctx, "u1@example.com", "")
		require.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost@example.com", "secret")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "u1@example.com", "nope")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("success mints a verifiable token", func(t *testing.T) {
		user, token, err := svc.Login(ctx, "u1@example.com", "secret")
		require.NoError(t, err)
		require.Equal(t, "U1", user.IDNumber)
		require.NotEmpty(t, token)

		claims, err := issuer.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "U1", claims.Subject)
		require.Equal(t, "u1@example.com", claims.Email)
		require.Equal(t, "Test User", claims.DisplayName)
	})
}

func TestGoogleSignIn(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedUser(t, st, "U1", "u1@example.com", "secret")

	svc := &IdentityService{Store: st, Tokens: newTestIssuer()}

	user, err := svc.GoogleSignIn(ctx, "u1@example.com")
	require.NoError(t, err)
	require.Equal(t, "U1", user.IDNumber)

	_, err = svc.GoogleSignIn(ctx, "ghost@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}
