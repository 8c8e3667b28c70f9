package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "U1", "u1@example.com", "pw")

	rec := env.doMultipart(t, http.MethodPost, "/groups/insertGroup", map[string]string{
		"userIdNumber": "U1", "name": "Team A", "groupKey": "abc123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	groupID := int64(decodeBody(t, rec)["groupId"].(float64))

	t.Run("new message", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost,
			fmt.Sprintf("/messages/group/%d/newMessage", groupID),
			map[string]any{"userId": "U1", "text": "hello"})
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, true, body["success"])
		require.Greater(t, body["messageId"].(float64), float64(0))
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost,
			fmt.Sprintf("/messages/group/%d/newMessage", groupID),
			map[string]any{"userId": "U1", "text": ""})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Missing required fields", decodeBody(t, rec)["error"])
	})

	t.Run("new system message", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost,
			fmt.Sprintf("/messages/group/%d/newSystemMessage", groupID),
			map[string]any{"userId": "U1", "text": "U1 joined"})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, true, decodeBody(t, rec)["success"])
	})

	t.Run("fetch returns newest first with sender profile", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodGet,
			fmt.Sprintf("/messages/group/%d/fetchMessages", groupID), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var rows []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
		require.Len(t, rows, 2)
		require.Equal(t, "U1 joined", rows[0]["text"])
		require.EqualValues(t, 1, rows[0]["isSystem"])
		require.Equal(t, "Test", rows[0]["firstName"])
		require.Equal(t, "hello", rows[1]["text"])
	})

	t.Run("mark latest as seen", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost,
			fmt.Sprintf("/messages/group/%d/markMessageAsSeen", groupID), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, true, decodeBody(t, rec)["success"])

		rec = env.doJSON(t, http.MethodGet,
			fmt.Sprintf("/messages/group/%d/fetchMessages", groupID), nil)
		var rows []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
		require.EqualValues(t, 1, rows[0]["isSeen"])
		require.EqualValues(t, 0, rows[1]["isSeen"])
	})
}

func TestMemberJoinAndRemoveEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "U1", "u1@example.com", "pw")
	env.seedUser(t, "U2", "u2@example.com", "pw")

	rec := env.doMultipart(t, http.MethodPost, "/groups/insertGroup", map[string]string{
		"userIdNumber": "U1", "name": "Team A", "groupKey": "abc123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	groupID := int64(decodeBody(t, rec)["groupId"].(float64))

	rec = env.doJSON(t, http.MethodPost, "/group-members/insertMemberByGroupKey",
		map[string]any{"userIdNumber": "U2", "groupKey": "bad-key"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid group key", decodeBody(t, rec)["error"])

	rec = env.doJSON(t, http.MethodPost, "/group-members/insertMemberByGroupKey",
		map[string]any{"userIdNumber": "U2", "groupKey": "abc123"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Member added to the group successfully", decodeBody(t, rec)["message"])

	rec = env.doJSON(t, http.MethodPost, "/group-members/insertMemberByGroupKey",
		map[string]any{"userIdNumber": "U2", "groupKey": "abc123"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "User is already a member of this group", decodeBody(t, rec)["error"])

	rec = env.doJSON(t, http.MethodGet,
		fmt.Sprintf("/group-members/fetchMemberCount/?groupId=%d", groupID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 2, decodeBody(t, rec)["count"])

	rec = env.doJSON(t, http.MethodDelete, "/group-members/deleteMember",
		map[string]any{"groupId": groupID, "memberId": "U2"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Member removed successfully.", decodeBody(t, rec)["message"])

	rec = env.doJSON(t, http.MethodDelete, "/group-members/deleteMember",
		map[string]any{"groupId": groupID, "memberId": "U2"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Member not found.", decodeBody(t, rec)["error"])
}
