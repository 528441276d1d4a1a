package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/cortexhq/cortex/internal/cortex/domain"
)

type eventsRepo struct {
	db *sql.DB
}

const eventColumns = `id, title, description, location, start_time, end_time, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (domain.Event, error) {
	var e domain.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Location,
		&e.StartTime, &e.EndTime, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.Event{}, err
	}
	return e, nil
}

func (r *eventsRepo) GetEventByID(ctx context.Context, id string) (domain.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, mapNotFound(err)
	}
	return e, nil
}

func (r *eventsRepo) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY start_time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventsRepo) CreateEvent(ctx context.Context, e domain.Event) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (id, title, description, location, start_time, end_time, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Description, e.Location, e.StartTime, e.EndTime, now, now)
	return mapConflict(err)
}

func (r *eventsRepo) UpdateEvent(ctx context.Context, e domain.Event) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET title = ?, description = ?, location = ?, start_time = ?, end_time = ?, updated_at = ?
		 WHERE id = ?`,
		e.Title, e.Description, e.Location, e.StartTime, e.EndTime, time.Now().UTC(), e.ID)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func (r *eventsRepo) DeleteEvent(ctx context.Context, id string) (domain.Event, error) {
	e, err := r.GetEventByID(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return domain.Event{}, err
	}
	return e, nil
}
