package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chronolock/chatd/internal/chat/domain"
	"github.com/chronolock/chatd/internal/chat/store"
	"github.com/chronolock/chatd/pkg/blob"
	"github.com/chronolock/chatd/pkg/slogx"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrAvatarCleanup = errors.New("avatar cleanup failed")
)

// GroupService manages chat groups and their avatar images.
type GroupService struct {
	Store store.Store
	Blobs blob.Store
}

// CreateGroup creates a group and enrols the creator as its first member in a
// single transaction. An optional avatar is stored before the transaction and
// removed again if the transaction fails.
func (s *GroupService) CreateGroup(ctx context.Context, ownerIDNumber, name, groupKey string, avatar *AvatarUpload) (int64, error) {
	logger := slogx.FromContext(ctx)

	// 1. All three identity fields are required.
	if ownerIDNumber == "" || name == "" || groupKey == "" {
		return 0, ErrMissingFields
	}

	// 2. Persist the avatar first so the row can reference its path.
	var avatarPath *string
	if avatar != nil {
		path, err := s.Blobs.Save(ctx, avatar.Filename, avatar.Reader)
		if err != nil {
			return 0, fmt.Errorf("store avatar: %w", err)
		}
		avatarPath = &path
	}

	// 3. Group row and owner membership commit together.
	var groupID int64
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		id, err := tx.Groups().CreateGroup(ctx, name, groupKey, avatarPath)
		if err != nil {
			return fmt.Errorf("create group: %w", err)
		}
		if _, err := tx.Members().AddMember(ctx, id, ownerIDNumber); err != nil {
			return fmt.Errorf("add owner: %w", err)
		}
		groupID = id
		return nil
	})
	if err != nil {
		if avatarPath != nil {
			if rmErr := s.Blobs.Remove(ctx, *avatarPath); rmErr != nil {
				logger.Warn("remove orphaned avatar", "error", rmErr, "path", *avatarPath)
			}
		}
		return 0, err
	}

	logger.Info("group created", "group_id", groupID, "owner", ownerIDNumber)
	return groupID, nil
}

// UpdateGroup renames a group and optionally replaces its avatar. The old
// avatar file is removed only after the row points at the new one; a failed
// unlink is logged, not surfaced.
func (s *GroupService) UpdateGroup(ctx context.Context, id int64, name, groupKey string, avatar *AvatarUpload) error {
	logger := slogx.FromContext(ctx)

	current, err := s.Store.Groups().GetGroupByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("lookup group: %w", err)
	}

	var avatarPath *string
	if avatar != nil {
		path, err := s.Blobs.Save(ctx, avatar.Filename, avatar.Reader)
		if err != nil {
			return fmt.Errorf("store avatar: %w", err)
		}
		avatarPath = &path
	}

	if err := s.Store.Groups().UpdateGroup(ctx, id, name, groupKey, avatarPath); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("update group: %w", err)
	}

	if avatarPath != nil && current.Avatar != nil {
		if err := s.Blobs.Remove(ctx, *current.Avatar); err != nil {
			logger.Warn("remove replaced avatar", "error", err, "path", *current.Avatar)
		}
	}
	return nil
}

// DeleteGroup removes a group; memberships and messages cascade with it. The
// returned flag reports whether an avatar file existed. An unlink failure
// after the row is gone surfaces as ErrAvatarCleanup.
func (s *GroupService) DeleteGroup(ctx context.Context, id int64) (bool, error) {
	group, err := s.Store.Groups().GetGroupByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrGroupNotFound
		}
		return false, fmt.Errorf("lookup group: %w", err)
	}

	if err := s.Store.Groups().DeleteGroup(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrGroupNotFound
		}
		return false, fmt.Errorf("delete group: %w", err)
	}

	if group.Avatar == nil {
		return false, nil
	}
	if err := s.Blobs.Remove(ctx, *group.Avatar); err != nil {
		return true, fmt.Errorf("%w: %v", ErrAvatarCleanup, err)
	}
	return true, nil
}

// ListForUser returns the groups the user belongs to, newest activity first.
func (s *GroupService) ListForUser(ctx context.Context, idNumber string) ([]domain.GroupSummary, error) {
	return s.Store.Groups().ListForUser(ctx, idNumber)
}

// ListAll returns every group.
func (s *GroupService) ListAll(ctx context.Context) ([]domain.GroupSummary, error) {
	return s.Store.Groups().ListAll(ctx)
}

// ListAvailable returns the groups the user has not joined yet.
func (s *GroupService) ListAvailable(ctx context.Context, idNumber string) ([]domain.GroupSummary, error) {
	return s.Store.Groups().ListAvailable(ctx, idNumber)
}
