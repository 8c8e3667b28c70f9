package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPostAndListMessages(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedUser(t, st, "U1", "u1@example.com", "pw")

	groups := &GroupService{Store: st, Blobs: newTestBlobs(t)}
	groupID, err := groups.CreateGroup(ctx, "U1", "Team A", "abc123", nil)
	require.NoError(t, err)

	svc := &MessageService{Store: st}

	first, err := svc.Post(ctx, groupID, "U1", "hello", false)
	require.NoError(t, err)
	second, err := svc.Post(ctx, groupID, "U1", "announcement", true)
	require.NoError(t, err)

	messages, err := svc.List(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// Newest first; equal timestamps fall back to message id.
	require.Equal(t, second, messages[0].ID)
	require.EqualValues(t, 1, messages[0].System)
	require.Equal(t, first, messages[1].ID)
	require.EqualValues(t, 0, messages[1].System)
	require.Equal(t, "Test", messages[0].FirstName)
}

func TestPostMessageRequiresText(t *testing.T) {
	st := newTestStore(t)
	svc := &MessageService{Store: st}

	_, err := svc.Post(context.Background(), 1, "U1", "", false)
	require.ErrorIs(t, err, ErrMissingFields)
}

func TestMarkLatestSeenTargetsNewestMessage(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedUser(t, st, "U1", "u1@example.com", "pw")

	groups := &GroupService{Store: st, Blobs: newTestBlobs(t)}
	groupID, err := groups.CreateGroup(ctx, "U1", "Team A", "abc123", nil)
	require.NoError(t, err)

	svc := &MessageService{Store: st}

	first, err := svc.Post(ctx, groupID, "U1", "one", false)
	require.NoError(t, err)
	second, err := svc.Post(ctx, groupID, "U1", "two", false)
	require.NoError(t, err)

	require.NoError(t, svc.MarkLatestSeen(ctx, groupID))

	m1, err := st.Messages().GetMessage(ctx, first)
	require.NoError(t, err)
	require.EqualValues(t, 0, m1.Seen)

	m2, err := st.Messages().GetMessage(ctx, second)
	require.NoError(t, err)
	require.EqualValues(t, 1, m2.Seen)
}

func TestMarkLatestSeenOnEmptyGroupIsNoop(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedUser(t, st, "U1", "u1@example.com", "pw")

	groups := &GroupService{Store: st, Blobs: newTestBlobs(t)}
	groupID, err := groups.CreateGroup(ctx, "U1", "Team A", "abc123", nil)
	require.NoError(t, err)

	svc := &MessageService{Store: st}
	require.NoError(t, svc.MarkLatestSeen(ctx, groupID))
}

func TestGroupListingsCarryLatestMessage(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedUser(t, st, "U1", "u1@example.com", "pw")

	groups := &GroupService{Store: st, Blobs: newTestBlobs(t)}
	quiet, err := groups.CreateGroup(ctx, "U1", "Quiet", "key-quiet", nil)
	require.NoError(t, err)
	busy, err := groups.CreateGroup(ctx, "U1", "Busy", "key-busy", nil)
	require.NoError(t, err)

	svc := &MessageService{Store: st}
	_, err = svc.Post(ctx, busy, "U1", "latest word", false)
	require.NoError(t, err)

	summaries, err := groups.ListForUser(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Groups with messages come first; silent groups sort last.
	require.Equal(t, busy, summaries[0].GroupID)
	require.NotNil(t, summaries[0].LatestMessage)
	require.Equal(t, "latest word", *summaries[0].LatestMessage)
	require.NotNil(t, summaries[0].Sender)
	require.Equal(t, "Test", *summaries[0].Sender)

	require.Equal(t, quiet, summaries[1].GroupID)
	require.Nil(t, summaries[1].LatestMessage)
	require.Nil(t, summaries[1].MessageTime)
}
