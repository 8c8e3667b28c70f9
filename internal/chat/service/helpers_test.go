package service

import (
	"context"
	"testing"

	"github.com/chronolock/chatd/internal/chat/domain"
	"github.com/chronolock/chatd/internal/chat/store"
	"github.com/chronolock/chatd/internal/chat/store/drivers/sqlite"
	"github.com/chronolock/chatd/pkg/blob"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestBlobs(t *testing.T) *blob.FS {
	t.Helper()

	fs, err := blob.NewFS(t.TempDir())
	require.NoError(t, err)
	return fs
}

func seedUser(t *testing.T, st store.Store, idNumber, email, password string) domain.User {
	t.Helper()

	u := domain.User{
		IDNumber:  idNumber,
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  password,
	}
	id, err := st.Users().CreateUser(context.Background(), u)
	require.NoError(t, err)

	u.ID = id
	return u
}
