package sqlite

import (
	"context"
	"database/sql"

	"github.com/chronolock/chatd/internal/chat/domain"
)

type groupsRepo struct {
	db dbtx
}

func (r *groupsRepo) CreateGroup(ctx context.Context, name, key string, avatar *string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO groups (group_name, group_key, avatar) VALUES (?, ?, ?)`,
		name, key, mapOptionalString(avatar))
	if err != nil {
		return 0, mapUnique(err)
	}
	return res.LastInsertId()
}

func scanGroup(row *sql.Row) (domain.Group, error) {
	var g domain.Group
	var avatar sql.NullString
	if err := row.Scan(&g.ID, &g.Name, &g.Key, &avatar); err != nil {
		return domain.Group{}, mapNotFound(err)
	}
	g.Avatar = mapNullString(avatar)
	return g, nil
}

func (r *groupsRepo) GetGroupByID(ctx context.Context, id int64) (domain.Group, error) {
	return scanGroup(r.db.QueryRowContext(ctx,
		`SELECT group_id, group_name, group_key, avatar FROM groups WHERE group_id = ?`, id))
}

func (r *groupsRepo) GetGroupByKey(ctx context.Context, key string) (domain.Group, error) {
	return scanGroup(r.db.QueryRowContext(ctx,
		`SELECT group_id, group_name, group_key, avatar FROM groups WHERE group_key = ?`, key))
}

func (r *groupsRepo) UpdateGroup(ctx context.Context, id int64, name, key string, avatar *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE groups
		 SET group_name = ?, group_key = ?, avatar = COALESCE(?, avatar)
		 WHERE group_id = ?`,
		name, key, mapOptionalString(avatar), id)
	if err != nil {
		return mapUnique(err)
	}
	return requireAffected(res)
}

func (r *groupsRepo) DeleteGroup(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE group_id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// groupSummaryHead/Tail sandwich the per-listing clause. The lm subquery picks
// each group's most recent message; ties on created_at resolve to the highest
// message id. Ordering by message_time DESC leaves message-less groups last
// because sqlite sorts NULL below everything on DESC.
const groupSummaryHead = `
	SELECT
	    g.avatar,
	    g.group_id,
	    g.group_name,
	    g.group_key,
	    lm.text       AS latest_message,
	    lm.created_at AS message_time,
	    lm.isSeen     AS latest_message_isSeen,
	    u.firstName   AS sender
	FROM groups g
	LEFT JOIN (
	    SELECT m.group_id, m.text, m.created_at, m.user_id, m.isSeen,
	           ROW_NUMBER() OVER (
	               PARTITION BY m.group_id
	               ORDER BY m.created_at DESC, m.id DESC
	           ) AS rn
	    FROM messages m
	) lm ON lm.group_id = g.group_id AND lm.rn = 1
	LEFT JOIN users u ON u.idNumber = lm.user_id
`

const groupSummaryTail = ` ORDER BY message_time DESC`

func (r *groupsRepo) ListForUser(ctx context.Context, idNumber string) ([]domain.GroupSummary, error) {
	return r.listSummaries(ctx,
		groupSummaryHead+
			` JOIN group_members gm ON gm.group_id = g.group_id
			  WHERE gm.idNumber = ?`+
			groupSummaryTail,
		idNumber)
}

func (r *groupsRepo) ListAll(ctx context.Context) ([]domain.GroupSummary, error) {
	return r.listSummaries(ctx, groupSummaryHead+groupSummaryTail)
}

func (r *groupsRepo) ListAvailable(ctx context.Context, idNumber string) ([]domain.GroupSummary, error) {
	return r.listSummaries(ctx,
		groupSummaryHead+
			` WHERE g.group_id NOT IN (
			      SELECT group_id FROM group_members WHERE idNumber = ?
			  )`+
			groupSummaryTail,
		idNumber)
}

func (r *groupsRepo) listSummaries(ctx context.Context, query string, args ...any) ([]domain.GroupSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []domain.GroupSummary{}
	for rows.Next() {
		var s domain.GroupSummary
		var avatar, text, sender sql.NullString
		var messageTime sql.NullTime
		var seen sql.NullInt64
		if err := rows.Scan(
			&avatar, &s.GroupID, &s.GroupName, &s.GroupKey,
			&text, &messageTime, &seen, &sender,
		); err != nil {
			return nil, err
		}
		s.Avatar = mapNullString(avatar)
		s.LatestMessage = mapNullString(text)
		s.Sender = mapNullString(sender)
		if messageTime.Valid {
			t := messageTime.Time
			s.MessageTime = &t
		}
		if seen.Valid {
			v := seen.Int64
			s.LatestSeen = &v
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
