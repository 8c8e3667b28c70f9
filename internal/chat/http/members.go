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

type MembersHandler struct {
	MembershipService *service.MembershipService
}

func (h *MembersHandler) HandleCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	groupID, err := strconv.ParseInt(r.URL.Query().Get("groupId"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid group id")
		return
	}

	count, err := h.MembershipService.Count(ctx, groupID)
	if err != nil {
		slogx.FromContext(ctx).Error("fetch member count failed", "err", err, "group_id", groupID)
		httpx.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct {
		Success bool  `json:"success"`
		Count   int64 `json:"count"`
	}{true, count})
}

func (h *MembersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	groupID, err := strconv.ParseInt(r.URL.Query().Get("groupId"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid group id")
		return
	}

	members, err := h.MembershipService.List(ctx, groupID)
	if err != nil {
		slogx.FromContext(ctx).Error("fetch members failed", "err", err, "group_id", groupID)
		httpx.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		Results any  `json:"results"`
	}{true, members})
}

type joinByKeyRequest struct {
	UserIDNumber string `json:"userIdNumber"`
	GroupKey     string `json:"groupKey"`
}

func (h *MembersHandler) HandleJoinByKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req joinByKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := h.MembershipService.JoinByGroupKey(ctx, req.UserIDNumber, req.GroupKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidGroupKey), errors.Is(err, service.ErrMissingFields):
			httpx.WriteError(w, http.StatusBadRequest, "Invalid group key")
		case errors.Is(err, service.ErrAlreadyMember):
			httpx.WriteError(w, http.StatusBadRequest, "User is already a member of this group")
		default:
			log.Error("join by group key failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, "Member added to the group successfully"})
}

type removeMemberRequest struct {
	GroupID  int64  `json:"groupId"`
	MemberID string `json:"memberId"`
}

func (h *MembersHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req removeMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.MembershipService.Remove(ctx, req.GroupID, req.MemberID); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Member not found.")
			return
		}
		log.Error("remove member failed", "err", err, "group_id", req.GroupID)
		httpx.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, "Member removed successfully."})
}
