package service

import (
	"context"
	"fmt"

	"github.com/chronolock/chatd/internal/chat/domain"
	"github.com/chronolock/chatd/internal/chat/store"
	"github.com/chronolock/chatd/pkg/slogx"
)

// MessageService posts and reads chat messages inside a group.
type MessageService struct {
	Store store.Store
}

// Post appends a message to the group's timeline. System messages carry no
// author semantics beyond the flag; the caller decides what userID to record.
func (s *MessageService) Post(ctx context.Context, groupID int64, userID, text string, system bool) (int64, error) {
	if text == "" {
		return 0, ErrMissingFields
	}

	var systemFlag int64
	if system {
		systemFlag = 1
	}
	id, err := s.Store.Messages().CreateMessage(ctx, groupID, userID, text, systemFlag)
	if err != nil {
		return 0, fmt.Errorf("create message: %w", err)
	}

	slogx.FromContext(ctx).Info("message posted",
		"group_id", groupID, "message_id", id, "system", system)
	return id, nil
}

// List returns the group's messages, newest first, joined with sender
// profiles.
func (s *MessageService) List(ctx context.Context, groupID int64) ([]domain.MessageView, error) {
	return s.Store.Messages().ListByGroup(ctx, groupID)
}

// MarkLatestSeen flags the group's most recent message as seen. A group with
// no messages is a no-op.
func (s *MessageService) MarkLatestSeen(ctx context.Context, groupID int64) error {
	if err := s.Store.Messages().MarkLatestSeen(ctx, groupID); err != nil {
		return fmt.Errorf("mark latest seen: %w", err)
	}
	return nil
}
