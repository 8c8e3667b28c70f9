package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chronolock/chatd/internal/chat/domain"
	"github.com/chronolock/chatd/internal/chat/service"
	"github.com/chronolock/chatd/internal/chat/store"
	"github.com/chronolock/chatd/internal/chat/store/drivers/sqlite"
	"github.com/chronolock/chatd/pkg/blob"
	"github.com/chronolock/chatd/pkg/tokenx"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router *Router
	store  store.Store
	blobs  blob.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	blobs, err := blob.NewFS(t.TempDir())
	require.NoError(t, err)
	return newTestEnvWithBlobs(t, blobs)
}

// newTestEnvWithBlobs wires the full router around a caller-supplied blob
// store, for tests that need storage failures.
func newTestEnvWithBlobs(t *testing.T, blobs blob.Store) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens := &tokenx.JWTIssuer{
		Secret: []byte("test-secret"),
		Issuer: "chatd-test",
		TTL:    time.Hour,
	}

	router := NewRouter("test", st, slog.New(slog.DiscardHandler))
	router.IdentityService = &service.IdentityService{Store: st, Tokens: tokens}
	router.GroupService = &service.GroupService{Store: st, Blobs: blobs}
	router.MembershipService = &service.MembershipService{Store: st}
	router.MessageService = &service.MessageService{Store: st}
	router.UserService = &service.UserService{Store: st, Blobs: blobs}
	if fs, ok := blobs.(*blob.FS); ok {
		router.UploadsDir = fs.Dir()
	}
	router.ApplyRoutes()

	return &testEnv{router: router, store: st, blobs: blobs}
}

func (env *testEnv) seedUser(t *testing.T, idNumber, email, password string) domain.User {
	t.Helper()

	u := domain.User{
		IDNumber:  idNumber,
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  password,
	}
	id, err := env.store.Users().CreateUser(context.Background(), u)
	require.NoError(t, err)

	u.ID = id
	return u
}

func (env *testEnv) doJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) doMultipart(t *testing.T, method, path string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
