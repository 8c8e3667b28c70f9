package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chronolock/chatd/internal/chat/domain"
	"github.com/chronolock/chatd/internal/chat/store"
	"github.com/chronolock/chatd/pkg/cryptox"
	"github.com/chronolock/chatd/pkg/slogx"
	"github.com/chronolock/chatd/pkg/tokenx"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// IdentityService signs users in and mints session tokens for them.
type IdentityService struct {
	Store  store.Store
	Tokens tokenx.Issuer
}

// Login verifies the email/password pair and returns the matching user
// together with a fresh session token.
func (s *IdentityService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	logger := slogx.FromContext(ctx)

	// 1. Both fields are required.
	if email == "" || password == "" {
		return domain.User{}, "", ErrMissingFields
	}

	// 2. Look the account up by email.
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrUserNotFound
		}
		return domain.User{}, "", fmt.Errorf("lookup user: %w", err)
	}

	// 3. Check the password.
	if err := cryptox.VerifyPassword(password, user.Password); err != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}

	// 4. Mint a session token carrying the user's display name.
	token, err := s.Tokens.IssueToken(ctx, user.IDNumber, user.Email, user.DisplayName())
	if err != nil {
		logger.Error("issue session token", "error", err, "user_id", user.IDNumber)
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	logger.Info("user logged in", "user_id", user.IDNumber)
	return user, token, nil
}

// GoogleSignIn looks up an account by the email reported by the identity
// provider. New accounts are not provisioned here; registration lives
// elsewhere.
func (s *IdentityService) GoogleSignIn(ctx context.Context, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, ErrMissingFields
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}
