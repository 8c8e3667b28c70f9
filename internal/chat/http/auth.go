package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/chronolock/chatd/internal/chat/domain"
	"github.com/chronolock/chatd/internal/chat/service"
	"github.com/chronolock/chatd/pkg/httpx"
	"github.com/chronolock/chatd/pkg/slogx"
)

type AuthHandler struct {
	IdentityService *service.IdentityService
}

// userPayload is a user row with the password stripped.
type userPayload struct {
	ID          int64     `json:"id"`
	IDNumber    string    `json:"idNumber"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Avatar      *string   `json:"avatar"`
	AccountName string    `json:"accountName"`
	UserType    string    `json:"userType"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toUserPayload(u domain.User) userPayload {
	return userPayload{
		ID:          u.ID,
		IDNumber:    u.IDNumber,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Avatar:      u.Avatar,
		AccountName: u.AccountName,
		UserType:    u.UserType,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success      bool        `json:"success"`
	User         userPayload `json:"user"`
	SessionToken string      `json:"sessionToken"`
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	user, token, err := h.IdentityService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			httpx.WriteFailure(w, http.StatusBadRequest, "Email and password are required.")
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteFailure(w, http.StatusNotFound, "User not found. Please register first.")
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.WriteFailure(w, http.StatusUnauthorized, "Invalid email or password.")
		default:
			log.Error("login failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, struct {
				Success bool   `json:"success"`
				Error   string `json:"error"`
			}{false, "Database error"})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Success:      true,
		User:         toUserPayload(user),
		SessionToken: token,
	})
}

type googleSignInRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) HandleGoogleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req googleSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.IdentityService.GoogleSignIn(ctx, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrMissingFields) {
			// An unknown email is not an error for the probe.
			httpx.WriteJSON(w, http.StatusOK, struct {
				Exists  bool   `json:"exists"`
				Message string `json:"message"`
			}{false, "User not found. Please register first."})
			return
		}
		log.Error("google sign-in probe failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct {
		Exists bool        `json:"exists"`
		User   userPayload `json:"user"`
	}{true, toUserPayload(user)})
}
