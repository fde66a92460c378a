package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usm-dti/event-tracker-api/internal/models"
)

func newMockRepo(t *testing.T) (*EventRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewEventRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func eventRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "title", "description", "campus", "category", "public",
		"organizer_unit", "specific_department", "start_date", "end_date",
		"start_time", "end_time", "status", "image_url", "created_at", "updated_at",
	}).AddRow(
		"ev-1", "Feria de Software", "Proyectos de titulación", "Casa Central",
		models.CategoryAcademico, models.AudienceComunidad,
		"Departamento de Informática", "", "2026-11-20", "2026-11-21",
		"10:00", "18:00", models.StatusProgramado, "", now, now,
	)
}

func TestEventRepositoryList(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT .+ FROM events ORDER BY created_at DESC`).WillReturnRows(eventRows())

	events, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ev-1", events[0].ID)
	assert.Equal(t, models.CategoryAcademico, events[0].Category)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryGetByIDMissing(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT .+ FROM events WHERE id = \$1`).
		WithArgs("ev-missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	event, err := repo.GetByID(context.Background(), "ev-missing")
	require.NoError(t, err)
	assert.Nil(t, event)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT .+ FROM events WHERE id = \$1`).
		WithArgs("ev-1").
		WillReturnRows(eventRows())

	event, err := repo.GetByID(context.Background(), "ev-1")
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "Feria de Software", event.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`INSERT INTO events`).WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.Event{
		ID:       "ev-2",
		Title:    "Torneo",
		Category: models.CategoryDeportivo,
		Public:   models.AudienceEstudiantes,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryUpdateReportsMatch(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`UPDATE events SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	found, err := repo.Update(context.Background(), &models.Event{ID: "ev-1", Title: "Feria 2026"})
	require.NoError(t, err)
	assert.True(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryUpdateUnknownID(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`UPDATE events SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	found, err := repo.Update(context.Background(), &models.Event{ID: "ev-missing"})
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryDelete(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
		WithArgs("ev-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	found, err := repo.Delete(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.True(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryDeleteUnknownID(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
		WithArgs("ev-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	found, err := repo.Delete(context.Background(), "ev-missing")
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}
