package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chronolock/chatd/internal/chat/store"
	"github.com/stretchr/testify/require"
)

func TestUpdateUserPreservesPasswordAndAvatar(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := seedUser(t, st, "U1", "u1@example.com", "secret")
	svc := &UserService{Store: st, Blobs: newTestBlobs(t)}

	err := svc.Update(ctx, user.ID, "New", "Name", "new@example.com", nil, nil)
	require.NoError(t, err)

	updated, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "New", updated.FirstName)
	require.Equal(t, "new@example.com", updated.Email)
	require.Equal(t, "secret", updated.Password)
	require.Nil(t, updated.Avatar)
}

func TestUpdateUserReplacesAvatar(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := seedUser(t, st, "U1", "u1@example.com", "secret")
	blobs := newTestBlobs(t)
	svc := &UserService{Store: st, Blobs: blobs}

	err := svc.Update(ctx, user.ID, "Test", "User", user.Email, nil,
		&AvatarUpload{Filename: "me.jpg", Reader: strings.NewReader("v1")})
	require.NoError(t, err)

	before, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, before.Avatar)
	oldOnDisk := filepath.Join(blobs.Dir(), filepath.Base(*before.Avatar))

	err = svc.Update(ctx, user.ID, "Test", "User", user.Email, nil,
		&AvatarUpload{Filename: "me2.jpg", Reader: strings.NewReader("v2")})
	require.NoError(t, err)

	after, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotEqual(t, *before.Avatar, *after.Avatar)

	_, err = os.Stat(oldOnDisk)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestUpdateUserNotFound(t *testing.T) {
	st := newTestStore(t)
	svc := &UserService{Store: st, Blobs: newTestBlobs(t)}

	err := svc.Update(context.Background(), 9999, "A", "B", "a@b.c", nil, nil)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUserRemovesAvatarFile(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := seedUser(t, st, "U1", "u1@example.com", "secret")
	blobs := newTestBlobs(t)
	svc := &UserService{Store: st, Blobs: blobs}

	err := svc.Update(ctx, user.ID, "Test", "User", user.Email, nil,
		&AvatarUpload{Filename: "me.jpg", Reader: strings.NewReader("v1")})
	require.NoError(t, err)

	withAvatar, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	onDisk := filepath.Join(blobs.Dir(), filepath.Base(*withAvatar.Avatar))

	require.NoError(t, svc.Delete(ctx, user.ID))

	_, err = st.Users().GetUserByID(ctx, user.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = os.Stat(onDisk)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedUser(t, st, "U1", "u1@example.com", "secret")
	svc := &UserService{Store: st, Blobs: newTestBlobs(t)}

	require.NoError(t, svc.ForgotPassword(ctx, "u1@example.com"))

	err := svc.ForgotPassword(ctx, "ghost@example.com")
	require.ErrorIs(t, err, ErrEmailNotFound)
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := seedUser(t, st, "U1", "u1@example.com", "old")
	svc := &UserService{Store: st, Blobs: newTestBlobs(t)}

	require.NoError(t, svc.ResetPassword(ctx, "u1@example.com", "fresh"))

	updated, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "fresh", updated.Password)

	err = svc.ResetPassword(ctx, "ghost@example.com", "fresh")
	require.ErrorIs(t, err, ErrEmailNotFound)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := seedUser(t, st, "U1", "u1@example.com", "old")
	svc := &UserService{Store: st, Blobs: newTestBlobs(t)}

	t.Run("wrong current password is rejected", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "wrong", "new")
		require.ErrorIs(t, err, ErrIncorrectPassword)
	})

	t.Run("correct current password swaps the credential", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(ctx, user.ID, "old", "new"))

		err := svc.ChangePassword(ctx, user.ID, "old", "newer")
		require.ErrorIs(t, err, ErrIncorrectPassword)

		require.NoError(t, svc.ChangePassword(ctx, user.ID, "new", "newer"))
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.ChangePassword(ctx, 9999, "old", "new")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}
