package store

import (
	"context"
	"errors"

	"github.com/chronolock/chatd/internal/chat/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable; services never touch SQL directly.
type Store interface {
	Users() Users
	Groups() Groups
	Members() Members
	Messages() Messages

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle the group-create atomic unit.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying pool.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByEmail is used by login, google sign-in and the password flows.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByID returns a user by primary key.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// CreateUser inserts a new account row and returns its id. Accounts are
	// provisioned out of band; this exists for seeding and tests.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// UpdateUser overwrites the profile fields and bumps updated_at.
	// Password and avatar follow COALESCE semantics: a nil value preserves
	// the stored one. Returns ErrNotFound when no row matched.
	UpdateUser(ctx context.Context, id int64, firstName, lastName, email string, password, avatar *string) error

	// UpdatePasswordByEmail sets the password for the account with the given
	// email. Returns ErrNotFound when the email is unknown.
	UpdatePasswordByEmail(ctx context.Context, email, password string) error

	// UpdatePasswordByID sets the password for the account by primary key.
	UpdatePasswordByID(ctx context.Context, id int64, password string) error

	// DeleteUser removes the row. Membership rows cascade per schema.
	DeleteUser(ctx context.Context, id int64) error
}

type Groups interface {
	// CreateGroup inserts a group row and returns its id.
	CreateGroup(ctx context.Context, name, key string, avatar *string) (int64, error)

	// GetGroupByID returns a group by primary key.
	GetGroupByID(ctx context.Context, id int64) (domain.Group, error)

	// GetGroupByKey resolves a join token to its group.
	GetGroupByKey(ctx context.Context, key string) (domain.Group, error)

	// UpdateGroup overwrites name and key; avatar follows COALESCE semantics.
	UpdateGroup(ctx context.Context, id int64, name, key string, avatar *string) error

	// DeleteGroup removes the row. Membership and message rows cascade.
	DeleteGroup(ctx context.Context, id int64) error

	// ListForUser returns the groups the user belongs to, annotated with
	// their latest message, most recently active first.
	ListForUser(ctx context.Context, idNumber string) ([]domain.GroupSummary, error)

	// ListAll returns every group with the same annotation and ordering.
	ListAll(ctx context.Context) ([]domain.GroupSummary, error)

	// ListAvailable returns the groups the user does NOT belong to.
	ListAvailable(ctx context.Context, idNumber string) ([]domain.GroupSummary, error)
}

type Members interface {
	// CountMembers returns the member count for a group.
	CountMembers(ctx context.Context, groupID int64) (int64, error)

	// ListMembers returns the members of a group joined with their profiles.
	ListMembers(ctx context.Context, groupID int64) ([]domain.MemberInfo, error)

	// IsMember reports whether the user already belongs to the group.
	IsMember(ctx context.Context, groupID int64, idNumber string) (bool, error)

	// AddMember inserts a membership row. Returns ErrAlreadyExists when the
	// unique (group_id, idNumber) index rejects a duplicate.
	AddMember(ctx context.Context, groupID int64, idNumber string) (int64, error)

	// RemoveMember deletes the membership row. Returns ErrNotFound when
	// nothing matched.
	RemoveMember(ctx context.Context, groupID int64, idNumber string) error
}

type Messages interface {
	// CreateMessage appends a message and returns its id. system is the
	// 0/1 platform-generated flag.
	CreateMessage(ctx context.Context, groupID int64, userID, text string, system int64) (int64, error)

	// GetMessage returns a message by id.
	GetMessage(ctx context.Context, id int64) (domain.Message, error)

	// ListByGroup returns all messages of a group joined with sender
	// profiles, newest first.
	ListByGroup(ctx context.Context, groupID int64) ([]domain.MessageView, error)

	// MarkLatestSeen flips isSeen on the single most recent message of the
	// group (highest created_at, message id breaks ties). A group with no
	// messages is a no-op, not an error.
	MarkLatestSeen(ctx context.Context, groupID int64) error
}
