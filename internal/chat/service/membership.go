package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chronolock/chatd/internal/chat/domain"
	"github.com/chronolock/chatd/internal/chat/store"
	"github.com/chronolock/chatd/pkg/slogx"
)

var (
	ErrInvalidGroupKey = errors.New("invalid group key")
	ErrAlreadyMember   = errors.New("user is already a member of this group")
	ErrMemberNotFound  = errors.New("member not found")
)

// MembershipService manages who belongs to which group.
type MembershipService struct {
	Store store.Store
}

// Count returns the number of members in a group.
func (s *MembershipService) Count(ctx context.Context, groupID int64) (int64, error) {
	return s.Store.Members().CountMembers(ctx, groupID)
}

// List returns the group's members joined with their user profiles.
func (s *MembershipService) List(ctx context.Context, groupID int64) ([]domain.MemberInfo, error) {
	return s.Store.Members().ListMembers(ctx, groupID)
}

// JoinByGroupKey enrols a user into the group matching the invite key. The
// membership table's unique constraint backstops the pre-check under
// concurrent joins.
func (s *MembershipService) JoinByGroupKey(ctx context.Context, idNumber, groupKey string) (int64, error) {
	logger := slogx.FromContext(ctx)

	if idNumber == "" || groupKey == "" {
		return 0, ErrMissingFields
	}

	// 1. The invite key identifies the group.
	group, err := s.Store.Groups().GetGroupByKey(ctx, groupKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrInvalidGroupKey
		}
		return 0, fmt.Errorf("lookup group by key: %w", err)
	}

	// 2. Joining twice is a conflict, not a no-op.
	member, err := s.Store.Members().IsMember(ctx, group.ID, idNumber)
	if err != nil {
		return 0, fmt.Errorf("check membership: %w", err)
	}
	if member {
		return 0, ErrAlreadyMember
	}

	if _, err := s.Store.Members().AddMember(ctx, group.ID, idNumber); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return 0, ErrAlreadyMember
		}
		return 0, fmt.Errorf("add member: %w", err)
	}

	logger.Info("member joined", "group_id", group.ID, "user", idNumber)
	return group.ID, nil
}

// Remove takes a user out of a group.
func (s *MembershipService) Remove(ctx context.Context, groupID int64, idNumber string) error {
	err := s.Store.Members().RemoveMember(ctx, groupID, idNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("remove member: %w", err)
	}
	return nil
}
