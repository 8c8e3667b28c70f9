package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "U1", "u1@example.com", "secret")

	t.Run("missing fields", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/auth/login", map[string]any{"email": "u1@example.com"})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, false, body["success"])
		require.Equal(t, "Email and password are required.", body["message"])
	})

	t.Run("unknown email", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/auth/login",
			map[string]any{"email": "ghost@example.com", "password": "secret"})
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "User not found. Please register first.", decodeBody(t, rec)["message"])
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/auth/login",
			map[string]any{"email": "u1@example.com", "password": "nope"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Invalid email or password.", decodeBody(t, rec)["message"])
	})

	t.Run("success strips the password and returns a token", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/auth/login",
			map[string]any{"email": "u1@example.com", "password": "secret"})
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, true, body["success"])
		require.NotEmpty(t, body["sessionToken"])

		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "U1", user["idNumber"])
		require.NotContains(t, user, "password")
	})
}

func TestGoogleSignInEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "U1", "u1@example.com", "secret")

	rec := env.doJSON(t, http.MethodPost, "/auth/googleSignIn",
		map[string]any{"email": "u1@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, true, body["exists"])

	rec = env.doJSON(t, http.MethodPost, "/auth/googleSignIn",
		map[string]any{"email": "ghost@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	require.Equal(t, false, body["exists"])
	require.Equal(t, "User not found. Please register first.", body["message"])
}
