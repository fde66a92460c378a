package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/usm-dti/event-tracker-api/internal/models"
)

// eventRow mirrors the events table; created_at backs the newest-first
// collection order that blob backends get from prepending.
type eventRow struct {
	models.Event
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// EventRepository is the Postgres-backed event store.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an event repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, description, campus, category, public, organizer_unit, specific_department,
start_date, end_date, start_time, end_time, status, image_url, created_at, updated_at`

// List returns all events newest first.
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events ORDER BY created_at DESC`, eventColumns)
	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	events := make([]models.Event, len(rows))
	for i, row := range rows {
		events[i] = row.Event
	}
	return events, nil
}

// GetByID fetches a single event; a missing id yields (nil, nil).
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)
	var row eventRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}
	event := row.Event
	return &event, nil
}

// Create inserts an event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	now := time.Now().UTC()
	row := eventRow{Event: *event, CreatedAt: now, UpdatedAt: now}
	query := `INSERT INTO events (id, title, description, campus, category, public, organizer_unit, specific_department,
start_date, end_date, start_time, end_time, status, image_url, created_at, updated_at)
VALUES (:id, :title, :description, :campus, :category, :public, :organizer_unit, :specific_department,
:start_date, :end_date, :start_time, :end_time, :status, :image_url, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update replaces the fields of the record matching the event's id. Returns
// false when no row matched.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) (bool, error) {
	row := eventRow{Event: *event, UpdatedAt: time.Now().UTC()}
	query := `UPDATE events SET title = :title, description = :description, campus = :campus, category = :category,
public = :public, organizer_unit = :organizer_unit, specific_department = :specific_department,
start_date = :start_date, end_date = :end_date, start_time = :start_time, end_time = :end_time,
status = :status, image_url = :image_url, updated_at = :updated_at
WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return false, fmt.Errorf("update event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update event rows affected: %w", err)
	}
	return affected > 0, nil
}

// Delete removes the record matching id. Returns false when no row matched.
func (r *EventRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete event rows affected: %w", err)
	}
	return affected > 0, nil
}
