package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/cortexhq/cortex/internal/cortex/domain"
)

type termsRepo struct {
	db *sql.DB
}

const termColumns = `id, name, definition, created_at, updated_at`

func scanTerm(row interface{ Scan(...any) error }) (domain.Term, error) {
	var t domain.Term
	err := row.Scan(&t.ID, &t.Name, &t.Definition, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Term{}, err
	}
	return t, nil
}

func (r *termsRepo) GetTermByID(ctx context.Context, id string) (domain.Term, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+termColumns+` FROM terms WHERE id = ?`, id)
	t, err := scanTerm(row)
	if err != nil {
		return domain.Term{}, mapNotFound(err)
	}
	return t, nil
}

func (r *termsRepo) ListTerms(ctx context.Context) ([]domain.Term, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+termColumns+` FROM terms ORDER BY name COLLATE NOCASE ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []domain.Term
	for rows.Next() {
		t, err := scanTerm(rows)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

func (r *termsRepo) CreateTerm(ctx context.Context, t domain.Term) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO terms (id, name, definition, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Definition, now, now)
	return mapConflict(err)
}

func (r *termsRepo) UpdateTerm(ctx context.Context, t domain.Term) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE terms SET name = ?, definition = ?, updated_at = ? WHERE id = ?`,
		t.Name, t.Definition, time.Now().UTC(), t.ID)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func (r *termsRepo) DeleteTerm(ctx context.Context, id string) (domain.Term, error) {
	t, err := r.GetTermByID(ctx, id)
	if err != nil {
		return domain.Term{}, err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM terms WHERE id = ?`, id); err != nil {
		return domain.Term{}, err
	}
	return t, nil
}
