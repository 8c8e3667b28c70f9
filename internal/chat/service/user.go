package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chronolock/chatd/internal/chat/store"
	"github.com/chronolock/chatd/pkg/blob"
	"github.com/chronolock/chatd/pkg/cryptox"
	"github.com/chronolock/chatd/pkg/slogx"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailNotFound     = errors.New("email not found")
	ErrIncorrectPassword = errors.New("incorrect current password")
)

// UserService maintains user profiles and credentials.
type UserService struct {
	Store store.Store
	Blobs blob.Store
}

// Update edits a user's profile. Nil password or avatar leave the stored
// values untouched; a replaced avatar file is unlinked best-effort.
func (s *UserService) Update(ctx context.Context, id int64, firstName, lastName, email string, password *string, avatar *AvatarUpload) error {
	logger := slogx.FromContext(ctx)

	current, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	var avatarPath *string
	if avatar != nil {
		path, err := s.Blobs.Save(ctx, avatar.Filename, avatar.Reader)
		if err != nil {
			return fmt.Errorf("store avatar: %w", err)
		}
		avatarPath = &path
	}

	if err := s.Store.Users().UpdateUser(ctx, id, firstName, lastName, email, password, avatarPath); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}

	if avatarPath != nil && current.Avatar != nil {
		if err := s.Blobs.Remove(ctx, *current.Avatar); err != nil {
			logger.Warn("remove replaced avatar", "error", err, "path", *current.Avatar)
		}
	}
	return nil
}

// Delete removes a user. Their avatar file is unlinked best-effort after the
// row is gone.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	logger := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if err := s.Store.Users().DeleteUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	if user.Avatar != nil {
		if err := s.Blobs.Remove(ctx, *user.Avatar); err != nil {
			logger.Warn("remove avatar of deleted user", "error", err, "path", *user.Avatar)
		}
	}

	logger.Info("user deleted", "user_id", id)
	return nil
}

// ForgotPassword confirms the email belongs to an account. Mail dispatch is
// handled out of band.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return ErrMissingFields
	}
	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEmailNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	return nil
}

// ResetPassword overwrites the password of the account behind the email.
func (s *UserService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if newPassword == "" {
		return ErrMissingFields
	}
	// An unknown (or empty) email surfaces as not-found, matching the
	// zero-rows update it would produce anyway.
	err := s.Store.Users().UpdatePasswordByEmail(ctx, email, newPassword)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEmailNotFound
		}
		return fmt.Errorf("reset password: %w", err)
	}
	slogx.FromContext(ctx).Info("password reset", "email", email)
	return nil
}

// ChangePassword swaps the password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return ErrMissingFields
	}

	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(currentPassword, user.Password); err != nil {
		return ErrIncorrectPassword
	}

	if err := s.Store.Users().UpdatePasswordByID(ctx, id, newPassword); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	slogx.FromContext(ctx).Info("password changed", "user_id", id)
	return nil
}
