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

type MessagesHandler struct {
	MessageService *service.MessageService
}

type newMessageRequest struct {
	UserID string `json:"userId"`
	Text   string `json:"text"`
}

func (h *MessagesHandler) HandleNewMessage(w http.ResponseWriter, r *http.Request) {
	h.postMessage(w, r, false)
}

func (h *MessagesHandler) HandleNewSystemMessage(w http.ResponseWriter, r *http.Request) {
	h.postMessage(w, r, true)
}

func (h *MessagesHandler) postMessage(w http.ResponseWriter, r *http.Request, system bool) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	groupID, err := strconv.ParseInt(r.PathValue("groupId"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid group id")
		return
	}

	var req newMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	messageID, err := h.MessageService.Post(ctx, groupID, req.UserID, req.Text, system)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			httpx.WriteError(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		log.Error("post message failed", "err", err, "group_id", groupID)
		httpx.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct {
		Success   bool  `json:"success"`
		MessageID int64 `json:"messageId"`
	}{true, messageID})
}

func (h *MessagesHandler) HandleFetch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	groupID, err := strconv.ParseInt(r.PathValue("groupId"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid group id")
		return
	}

	messages, err := h.MessageService.List(ctx, groupID)
	if err != nil {
		slogx.FromContext(ctx).Error("fetch messages failed", "err", err, "group_id", groupID)
		httpx.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, messages)
}

func (h *MessagesHandler) HandleMarkSeen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	groupID, err := strconv.ParseInt(r.PathValue("groupId"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid group id")
		return
	}

	if err := h.MessageService.MarkLatestSeen(ctx, groupID); err != nil {
		slogx.FromContext(ctx).Error("mark message as seen failed", "err", err, "group_id", groupID)
		httpx.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
	}{true})
}
