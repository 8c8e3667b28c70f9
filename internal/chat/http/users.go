package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/chronolock/chatd/internal/chat/service"
	"github.com/chronolock/chatd/pkg/httpx"
	"github.com/chronolock/chatd/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleUpdate edits a profile from a multipart form. Password and avatar are
// only overwritten when supplied.
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	avatar, closeAvatar, err := formAvatar(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	defer closeAvatar()

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	var password *string
	if p := r.FormValue("password"); p != "" {
		password = &p
	}

	err = h.UserService.Update(ctx, id,
		r.FormValue("firstName"), r.FormValue("lastName"), r.FormValue("email"),
		password, avatar)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error("update user failed", "err", err, "user_id", id)
		httpx.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{"User updated successfully"})
}

func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := h.UserService.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error("delete user failed", "err", err, "user_id", id)
		httpx.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{"User deleted successfully"})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *UsersHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Email is required.")
		return
	}

	if err := h.UserService.ForgotPassword(ctx, req.Email); err != nil {
		if errors.Is(err, service.ErrEmailNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Email not found")
			return
		}
		log.Error("forgot password lookup failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Mail dispatch is handled out of band.
	httpx.WriteJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, "Verification successful"})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

func (h *UsersHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewPassword == "" {
		httpx.WriteError(w, http.StatusBadRequest, "New password is required")
		return
	}

	if err := h.UserService.ResetPassword(ctx, req.Email, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrEmailNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Email not found")
			return
		}
		log.Error("reset password failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, "Password reset successfully"})
}

type changePasswordRequest struct {
	UserID          int64  `json:"userId"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *UsersHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.UserID == 0 || req.CurrentPassword == "" || req.NewPassword == "" {
		httpx.WriteError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	err := h.UserService.ChangePassword(ctx, req.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteError(w, http.StatusNotFound, "User not found.")
		case errors.Is(err, service.ErrIncorrectPassword):
			httpx.WriteError(w, http.StatusUnauthorized, "Incorrect current password.")
		default:
			log.Error("change password failed", "err", err, "user_id", req.UserID)
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error.")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, "Password changed successfully."})
}
