package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cortexhq/cortex/internal/cortex/domain"
	"github.com/cortexhq/cortex/internal/cortex/store"
)

type usersRepo struct {
	db *sql.DB
}

const userColumns = `id, name, email, password_hash, roles, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	var roles string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &roles, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, err
	}
	u.Roles = splitRoles(roles)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) ListUsers(ctx context.Context, f store.UserFilter) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var conds []string
	var args []any

	// Roles are space-delimited in storage; pad both sides so a LIKE match
	// can't hit a substring of another role name.
	if len(f.Roles) > 0 {
		var roleConds []string
		for _, role := range f.Roles {
			roleConds = append(roleConds, `(' ' || roles || ' ') LIKE ?`)
			args = append(args, "% "+role+" %")
		}
		conds = append(conds, "("+strings.Join(roleConds, " OR ")+")")
	}

	if f.Query != "" {
		conds = append(conds, `(name LIKE ? COLLATE NOCASE OR email LIKE ? COLLATE NOCASE)`)
		pattern := "%" + f.Query + "%"
		args = append(args, pattern, pattern)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, roles, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, joinRoles(u.Roles), now, now)
	return mapConflict(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, roles = ?, password_hash = ?, updated_at = ?
		 WHERE id = ?`,
		u.Name, u.Email, joinRoles(u.Roles), u.PasswordHash, time.Now().UTC(), u.ID)
	if err != nil {
		return mapConflict(err)
	}
	return requireRowChanged(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) (domain.User, error) {
	u, err := r.GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func requireRowChanged(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
