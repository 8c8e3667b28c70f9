package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/chronolock/chatd/internal/chat/domain"
)

type membersRepo struct {
	db dbtx
}

func (r *membersRepo) CountMembers(ctx context.Context, groupID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM group_members WHERE group_id = ?`, groupID).Scan(&count)
	return count, err
}

func (r *membersRepo) ListMembers(ctx context.Context, groupID int64) ([]domain.MemberInfo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT gm.id, g.group_id, u.idNumber, u.firstName, u.lastName, u.avatar, u.userType
		 FROM group_members gm
		 JOIN groups g ON g.group_id = gm.group_id
		 JOIN users u ON u.idNumber = gm.idNumber
		 WHERE g.group_id = ?`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []domain.MemberInfo{}
	for rows.Next() {
		var m domain.MemberInfo
		var avatar sql.NullString
		if err := rows.Scan(&m.ID, &m.GroupID, &m.IDNumber, &m.FirstName, &m.LastName, &avatar, &m.UserType); err != nil {
			return nil, err
		}
		m.Avatar = mapNullString(avatar)
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *membersRepo) IsMember(ctx context.Context, groupID int64, idNumber string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM group_members WHERE group_id = ? AND idNumber = ?`,
		groupID, idNumber).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *membersRepo) AddMember(ctx context.Context, groupID int64, idNumber string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO group_members (idNumber, group_id) VALUES (?, ?)`,
		idNumber, groupID)
	if err != nil {
		return 0, mapUnique(err)
	}
	return res.LastInsertId()
}

func (r *membersRepo) RemoveMember(ctx context.Context, groupID int64, idNumber string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = ? AND idNumber = ?`,
		groupID, idNumber)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
