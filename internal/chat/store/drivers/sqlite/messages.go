package sqlite

import (
	"context"
	"database/sql"

	"github.com/chronolock/chatd/internal/chat/domain"
)

type messagesRepo struct {
	db dbtx
}

func (r *messagesRepo) CreateMessage(ctx context.Context, groupID int64, userID, text string, system int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (group_id, user_id, text, isSystem) VALUES (?, ?, ?, ?)`,
		groupID, userID, text, system)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *messagesRepo) GetMessage(ctx context.Context, id int64) (domain.Message, error) {
	var m domain.Message
	err := r.db.QueryRowContext(ctx,
		`SELECT id, group_id, user_id, text, created_at, isSeen, isSystem
		 FROM messages WHERE id = ?`, id).
		Scan(&m.ID, &m.GroupID, &m.UserID, &m.Text, &m.CreatedAt, &m.Seen, &m.System)
	if err != nil {
		return domain.Message{}, mapNotFound(err)
	}
	return m, nil
}

func (r *messagesRepo) ListByGroup(ctx context.Context, groupID int64) ([]domain.MessageView, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT
		     m.id, m.group_id, m.text, m.created_at, m.user_id, m.isSeen, m.isSystem,
		     u.firstName, u.lastName, u.avatar AS user_avatar
		 FROM messages m
		 JOIN users u ON u.idNumber = m.user_id
		 WHERE m.group_id = ?
		 ORDER BY m.created_at DESC, m.id DESC`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.MessageView{}
	for rows.Next() {
		var m domain.MessageView
		var avatar sql.NullString
		if err := rows.Scan(
			&m.ID, &m.GroupID, &m.Text, &m.CreatedAt, &m.UserID, &m.Seen, &m.System,
			&m.FirstName, &m.LastName, &avatar,
		); err != nil {
			return nil, err
		}
		m.UserAvatar = mapNullString(avatar)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// MarkLatestSeen targets exactly one row: the group's most recent message,
// with the message id breaking created_at ties. Zero affected rows (empty
// group) is not an error.
func (r *messagesRepo) MarkLatestSeen(ctx context.Context, groupID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE messages
		 SET isSeen = 1
		 WHERE id = (
		     SELECT id FROM messages
		     WHERE group_id = ?
		     ORDER BY created_at DESC, id DESC
		     LIMIT 1
		 )`, groupID)
	return err
}
