package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/usm-dti/event-tracker-api/internal/models"
	appErrors "github.com/usm-dti/event-tracker-api/pkg/errors"
)

type fakeEventStore struct {
	events     []models.Event
	created    []models.Event
	updated    []models.Event
	deletedIDs []string
}

func (f *fakeEventStore) List(context.Context) ([]models.Event, error) {
	return append([]models.Event(nil), f.events...), nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id string) (*models.Event, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			event := f.events[i]
			return &event, nil
		}
	}
	return nil, nil
}

func (f *fakeEventStore) Create(_ context.Context, event *models.Event) error {
	f.created = append(f.created, *event)
	f.events = append([]models.Event{*event}, f.events...)
	return nil
}

func (f *fakeEventStore) Update(_ context.Context, event *models.Event) (bool, error) {
	for i := range f.events {
		if f.events[i].ID == event.ID {
			f.events[i] = *event
			f.updated = append(f.updated, *event)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEventStore) Delete(_ context.Context, id string) (bool, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			f.deletedIDs = append(f.deletedIDs, id)
			return true, nil
		}
	}
	return false, nil
}

type toastRecorder struct {
	pushed []models.Toast
}

func (r *toastRecorder) Push(message, severity string) models.Toast {
	toast := models.Toast{ID: "t", Message: message, Type: severity}
	r.pushed = append(r.pushed, toast)
	return toast
}

func validRequest() EventRequest {
	return EventRequest{
		Title:         "Feria de Software",
		Description:   "Proyectos de titulación",
		Category:      models.CategoryAcademico,
		Public:        models.AudienceComunidad,
		OrganizerUnit: "Departamento de Informática",
		StartDate:     "2026-11-20",
		EndDate:       "2026-11-21",
	}
}

func newTestEventService(store *fakeEventStore) (*EventService, *toastRecorder) {
	toasts := &toastRecorder{}
	svc := NewEventService(store, toasts, nil, zap.NewNop(), 5)
	return svc, toasts
}

func TestEventServiceCreateAssignsIDAndToasts(t *testing.T) {
	store := &fakeEventStore{}
	svc, toasts := newTestEventService(store)

	event, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	require.Len(t, store.created, 1)

	require.Len(t, toasts.pushed, 1)
	assert.Equal(t, "Evento creado con éxito", toasts.pushed[0].Message)
	assert.Equal(t, models.ToastSuccess, toasts.pushed[0].Type)
}

func TestEventServiceCreateAssignsUniqueIDs(t *testing.T) {
	store := &fakeEventStore{}
	svc, _ := newTestEventService(store)

	first, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestEventServiceCreateRejectsInvertedDates(t *testing.T) {
	store := &fakeEventStore{}
	svc, toasts := newTestEventService(store)

	req := validRequest()
	req.StartDate = "2026-11-21"
	req.EndDate = "2026-11-20"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.created)

	require.Len(t, toasts.pushed, 1)
	assert.Equal(t, "La fecha de fin debe ser posterior a la de inicio", toasts.pushed[0].Message)
	assert.Equal(t, models.ToastError, toasts.pushed[0].Type)
}

func TestEventServiceCreateAllowsSingleDayEvent(t *testing.T) {
	svc, _ := newTestEventService(&fakeEventStore{})

	req := validRequest()
	req.EndDate = req.StartDate

	_, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestEventServiceCreateRejectsUnknownTaxonomy(t *testing.T) {
	svc, toasts := newTestEventService(&fakeEventStore{})

	req := validRequest()
	req.Category = "Misterioso"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, toasts.pushed)
}

func TestEventServiceCreateRejectsBadDateFormat(t *testing.T) {
	svc, _ := newTestEventService(&fakeEventStore{})

	req := validRequest()
	req.StartDate = "20/11/2026"

	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)
}

func TestEventServiceUpdateKeepsID(t *testing.T) {
	store := &fakeEventStore{events: []models.Event{{ID: "ev-1", Title: "Original"}}}
	svc, toasts := newTestEventService(store)

	event, err := svc.Update(context.Background(), "ev-1", validRequest())
	require.NoError(t, err)
	assert.Equal(t, "ev-1", event.ID)
	assert.Equal(t, "Feria de Software", event.Title)

	require.Len(t, toasts.pushed, 1)
	assert.Equal(t, "Evento actualizado con éxito", toasts.pushed[0].Message)
}

func TestEventServiceUpdateStaleIDNoToast(t *testing.T) {
	store := &fakeEventStore{}
	svc, toasts := newTestEventService(store)

	_, err := svc.Update(context.Background(), "ev-gone", validRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, toasts.pushed)
}

func TestEventServiceDeleteRequiresMatchingTitle(t *testing.T) {
	store := &fakeEventStore{events: []models.Event{{ID: "ev-1", Title: "Feria de Software"}}}
	svc, toasts := newTestEventService(store)

	err := svc.Delete(context.Background(), "ev-1", "Otra cosa")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.deletedIDs)
	assert.Empty(t, toasts.pushed)
}

func TestEventServiceDelete(t *testing.T) {
	store := &fakeEventStore{events: []models.Event{{ID: "ev-1", Title: "Feria de Software"}}}
	svc, toasts := newTestEventService(store)

	require.NoError(t, svc.Delete(context.Background(), "ev-1", "Feria de Software"))
	assert.Equal(t, []string{"ev-1"}, store.deletedIDs)

	require.Len(t, toasts.pushed, 1)
	assert.Equal(t, "Evento eliminado", toasts.pushed[0].Message)
	assert.Equal(t, models.ToastInfo, toasts.pushed[0].Type)
}

func TestEventServiceDeleteStaleIDIsSilentNoOp(t *testing.T) {
	store := &fakeEventStore{}
	svc, toasts := newTestEventService(store)

	err := svc.Delete(context.Background(), "ev-gone", "cualquier título")
	require.NoError(t, err)
	assert.Empty(t, toasts.pushed)
}

func TestEventServiceGetMissing(t *testing.T) {
	svc, _ := newTestEventService(&fakeEventStore{})

	_, err := svc.Get(context.Background(), "ev-gone")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEventServiceUpcomingUsesInjectedClock(t *testing.T) {
	store := &fakeEventStore{events: []models.Event{
		{ID: "ev-past", StartDate: "2026-01-01", EndDate: "2026-01-02"},
		{ID: "ev-live", StartDate: "2026-05-01", EndDate: "2026-05-10"},
	}}
	svc, _ := newTestEventService(store)
	svc.now = func() time.Time { return time.Date(2026, 5, 5, 12, 0, 0, 0, time.UTC) }

	events, err := svc.Upcoming(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ev-live", events[0].ID)
}

func TestEventServiceListAppliesFilter(t *testing.T) {
	store := &fakeEventStore{events: sampleEvents()}
	svc, _ := newTestEventService(store)

	events, err := svc.List(context.Background(), models.FilterCriteria{Category: models.CategoryCultural})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ev-c", events[0].ID)
}
