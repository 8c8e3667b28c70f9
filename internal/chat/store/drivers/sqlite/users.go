package sqlite

import (
	"context"
	"database/sql"

	"github.com/chronolock/chatd/internal/chat/domain"
	"github.com/chronolock/chatd/internal/chat/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, idNumber, firstName, lastName, email, password, avatar, accountName, userType, created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var avatar sql.NullString
	err := row.Scan(
		&u.ID, &u.IDNumber, &u.FirstName, &u.LastName, &u.Email, &u.Password,
		&avatar, &u.AccountName, &u.UserType, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Avatar = mapNullString(avatar)
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (idNumber, firstName, lastName, email, password, avatar, accountName, userType)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.IDNumber, u.FirstName, u.LastName, u.Email, u.Password,
		mapOptionalString(u.Avatar), u.AccountName, u.UserType,
	)
	if err != nil {
		return 0, mapUnique(err)
	}
	return res.LastInsertId()
}

func (r *usersRepo) UpdateUser(
	ctx context.Context,
	id int64,
	firstName, lastName, email string,
	password, avatar *string,
) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET firstName = ?,
		     lastName = ?,
		     email = ?,
		     password = COALESCE(?, password),
		     avatar = COALESCE(?, avatar),
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		firstName, lastName, email,
		mapOptionalString(password), mapOptionalString(avatar), id,
	)
	if err != nil {
		return mapUnique(err)
	}
	return requireAffected(res)
}

func (r *usersRepo) UpdatePasswordByEmail(ctx context.Context, email, password string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password = ?, updated_at = CURRENT_TIMESTAMP WHERE email = ?`,
		password, email)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) UpdatePasswordByID(ctx context.Context, id int64, password string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		password, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// requireAffected maps a zero-row write to ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
