package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chronolock/chatd/internal/chat/service"
	"github.com/chronolock/chatd/pkg/httpx"
	"github.com/chronolock/chatd/pkg/slogx"
)

type GroupsHandler struct {
	GroupService *service.GroupService
}

// HandleInsert creates a group from a multipart form carrying userIdNumber,
// name, groupKey, and an optional avatar file.
func (h *GroupsHandler) HandleInsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	avatar, closeAvatar, err := formAvatar(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	defer closeAvatar()

	ownerIDNumber := r.FormValue("userIdNumber")
	name := r.FormValue("name")
	groupKey := r.FormValue("groupKey")

	groupID, err := h.GroupService.CreateGroup(ctx, ownerIDNumber, name, groupKey, avatar)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			httpx.WriteError(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		log.Error("create group failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct {
		Success bool  `json:"success"`
		GroupID int64 `json:"groupId"`
	}{true, groupID})
}

// HandleUpdate renames a group and optionally swaps its avatar. The success
// reply is plain text, which existing clients depend on.
func (h *GroupsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	groupID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "Group not found.")
		return
	}

	avatar, closeAvatar, err := formAvatar(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	defer closeAvatar()

	name := r.FormValue("name")
	groupKey := r.FormValue("groupKey")

	if err := h.GroupService.UpdateGroup(ctx, groupID, name, groupKey, avatar); err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Group not found.")
			return
		}
		log.Error("update group failed", "err", err, "group_id", groupID)
		httpx.WriteText(w, http.StatusInternalServerError, "Failed to update group.")
		return
	}

	httpx.WriteText(w, http.StatusOK, "Group updated successfully.")
}

func (h *GroupsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	groupID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "Group not found.")
		return
	}

	hadAvatar, err := h.GroupService.DeleteGroup(ctx, groupID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			httpx.WriteError(w, http.StatusNotFound, "Group not found.")
		case errors.Is(err, service.ErrAvatarCleanup):
			// The row is already gone at this point.
			log.Error("delete group avatar cleanup failed", "err", err, "group_id", groupID)
			httpx.WriteError(w, http.StatusInternalServerError, "Error deleting avatar file")
		default:
			log.Error("delete group failed", "err", err, "group_id", groupID)
			httpx.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	message := "Group deleted successfully, no avatar to remove."
	if hadAvatar {
		message = "Group and its avatar deleted successfully."
	}
	httpx.WriteJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, message})
}

func (h *GroupsHandler) HandleFetchFiltered(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summaries, err := h.GroupService.ListForUser(ctx, r.PathValue("idNumber"))
	if err != nil {
		slogx.FromContext(ctx).Error("fetch filtered groups failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, summaries)
}

func (h *GroupsHandler) HandleFetchAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summaries, err := h.GroupService.ListAll(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("fetch all groups failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, summaries)
}

func (h *GroupsHandler) HandleFetchAvailable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summaries, err := h.GroupService.ListAvailable(ctx, r.PathValue("idNumber"))
	if err != nil {
		slogx.FromContext(ctx).Error("fetch available groups failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, summaries)
}
