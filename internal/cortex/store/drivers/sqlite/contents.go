package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/cortexhq/cortex/internal/cortex/domain"
	"github.com/cortexhq/cortex/internal/cortex/store"
)

type contentsRepo struct {
	db *sql.DB
}

const contentColumns = `id, title, type, state, body, publish_time, created_at, updated_at`

func scanContent(row interface{ Scan(...any) error }) (domain.Content, error) {
	var c domain.Content
	var publishTime sql.NullTime
	err := row.Scan(&c.ID, &c.Title, &c.Type, &c.State, &c.Body, &publishTime, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Content{}, err
	}
	if publishTime.Valid {
		t := publishTime.Time
		c.PublishTime = &t
	}
	return c, nil
}

func publishTimeArg(c domain.Content) sql.NullTime {
	if c.PublishTime == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *c.PublishTime, Valid: true}
}

func (r *contentsRepo) GetContentByID(ctx context.Context, id string) (domain.Content, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM contents WHERE id = ?`, id)
	c, err := scanContent(row)
	if err != nil {
		return domain.Content{}, mapNotFound(err)
	}
	return c, nil
}

func (r *contentsRepo) ListContents(ctx context.Context, f store.ContentFilter) ([]domain.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents`
	var conds []string
	var args []any

	if f.Type != "" {
		conds = append(conds, `type = ?`)
		args = append(args, f.Type)
	}
	if f.State != "" {
		conds = append(conds, `state = ?`)
		args = append(args, f.State)
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

	var contents []domain.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}

func (r *contentsRepo) CreateContent(ctx context.Context, c domain.Content) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contents (id, title, type, state, body, publish_time, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.Type, c.State, c.Body, publishTimeArg(c), now, now)
	return mapConflict(err)
}

func (r *contentsRepo) UpdateContent(ctx context.Context, c domain.Content) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE contents SET title = ?, type = ?, state = ?, body = ?, publish_time = ?, updated_at = ?
		 WHERE id = ?`,
		c.Title, c.Type, c.State, c.Body, publishTimeArg(c), time.Now().UTC(), c.ID)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func (r *contentsRepo) DeleteContent(ctx context.Context, id string) (domain.Content, error) {
	c, err := r.GetContentByID(ctx, id)
	if err != nil {
		return domain.Content{}, err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM contents WHERE id = ?`, id); err != nil {
		return domain.Content{}, err
	}
	return c, nil
}
