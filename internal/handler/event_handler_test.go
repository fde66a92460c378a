package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usm-dti/event-tracker-api/internal/models"
	"github.com/usm-dti/event-tracker-api/internal/service"
	appErrors "github.com/usm-dti/event-tracker-api/pkg/errors"
	"github.com/usm-dti/event-tracker-api/pkg/response"
)

type eventServiceMock struct {
	listResp     []models.Event
	listErr      error
	lastCriteria models.FilterCriteria
	upcomingResp []models.Event
	lastLimit    int
	optionsResp  models.EventOptions
	calendarResp []models.CalendarDay
	calendarErr  error
	getResp      *models.Event
	getErr       error
	createResp   *models.Event
	createErr    error
	updateResp   *models.Event
	updateErr    error
	deleteErr    error
	lastID       string
	lastConfirm  string
	lastRequest  service.EventRequest
}

func (m *eventServiceMock) List(_ context.Context, criteria models.FilterCriteria) ([]models.Event, error) {
	m.lastCriteria = criteria
	return m.listResp, m.listErr
}

func (m *eventServiceMock) Upcoming(_ context.Context, limit int) ([]models.Event, error) {
	m.lastLimit = limit
	return m.upcomingResp, nil
}

func (m *eventServiceMock) Options(context.Context) (models.EventOptions, error) {
	return m.optionsResp, nil
}

func (m *eventServiceMock) Calendar(_ context.Context, month string) ([]models.CalendarDay, error) {
	return m.calendarResp, m.calendarErr
}

func (m *eventServiceMock) Get(_ context.Context, id string) (*models.Event, error) {
	m.lastID = id
	return m.getResp, m.getErr
}

func (m *eventServiceMock) Create(_ context.Context, req service.EventRequest) (*models.Event, error) {
	m.lastRequest = req
	return m.createResp, m.createErr
}

func (m *eventServiceMock) Update(_ context.Context, id string, req service.EventRequest) (*models.Event, error) {
	m.lastID = id
	m.lastRequest = req
	return m.updateResp, m.updateErr
}

func (m *eventServiceMock) Delete(_ context.Context, id, confirmTitle string) error {
	m.lastID = id
	m.lastConfirm = confirmTitle
	return m.deleteErr
}

func newEventRouter(mock *eventServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewEventHandler(mock, nil)
	r.GET("/events", h.List)
	r.GET("/events/upcoming", h.Upcoming)
	r.GET("/events/options", h.Options)
	r.GET("/events/calendar", h.Calendar)
	r.GET("/events/:id", h.Get)
	r.POST("/events", h.Create)
	r.PUT("/events/:id", h.Update)
	r.DELETE("/events/:id", h.Delete)
	return r
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestEventHandlerListBindsCriteria(t *testing.T) {
	mock := &eventServiceMock{listResp: []models.Event{{ID: "ev-1"}}}
	r := newEventRouter(mock)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/events?query=feria&category=Cultural&public=Todos&date=2026-09-15", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.FilterCriteria{
		Query:        "feria",
		Category:     "Cultural",
		Public:       "Todos",
		SelectedDate: "2026-09-15",
	}, mock.lastCriteria)

	envelope := decodeEnvelope(t, w)
	assert.EqualValues(t, 1, envelope.Meta["count"])
}

func TestEventHandlerListRejectsBadDate(t *testing.T) {
	r := newEventRouter(&eventServiceMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/events?date=ayer", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventHandlerUpcomingParsesLimit(t *testing.T) {
	mock := &eventServiceMock{}
	r := newEventRouter(mock)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/events/upcoming?limit=3", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, mock.lastLimit)
}

func TestEventHandlerUpcomingRejectsBadLimit(t *testing.T) {
	r := newEventRouter(&eventServiceMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/events/upcoming?limit=muchos", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventHandlerGetNotFound(t *testing.T) {
	mock := &eventServiceMock{getErr: appErrors.ErrNotFound}
	r := newEventRouter(mock)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/events/ev-gone", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ev-gone", mock.lastID)
}

func TestEventHandlerCreate(t *testing.T) {
	mock := &eventServiceMock{createResp: &models.Event{ID: "ev-new", Title: "Feria"}}
	r := newEventRouter(mock)

	payload := map[string]string{
		"title":         "Feria",
		"description":   "desc",
		"category":      "Académico",
		"public":        "Estudiantes",
		"organizerUnit": "DTI",
		"startDate":     "2026-11-20",
		"endDate":       "2026-11-21",
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Feria", mock.lastRequest.Title)
}

func TestEventHandlerCreateRejectsMalformedJSON(t *testing.T) {
	r := newEventRouter(&eventServiceMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/events", bytes.NewReader([]byte("{nope")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventHandlerCreateSurfacesValidationError(t *testing.T) {
	mock := &eventServiceMock{createErr: appErrors.Clone(appErrors.ErrValidation, "endDate must be on or after startDate")}
	r := newEventRouter(mock)

	body, _ := json.Marshal(map[string]string{"title": "x"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrValidation.Code, envelope.Error.Code)
}

func TestEventHandlerUpdatePassesID(t *testing.T) {
	mock := &eventServiceMock{updateResp: &models.Event{ID: "ev-1"}}
	r := newEventRouter(mock)

	body, _ := json.Marshal(map[string]string{"title": "Nuevo"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/events/ev-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ev-1", mock.lastID)
}

func TestEventHandlerDeletePassesConfirmation(t *testing.T) {
	mock := &eventServiceMock{}
	r := newEventRouter(mock)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/events/ev-1?confirm=Feria+de+Software", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "ev-1", mock.lastID)
	assert.Equal(t, "Feria de Software", mock.lastConfirm)
}

func TestEventHandlerDeleteConfirmationMismatch(t *testing.T) {
	mock := &eventServiceMock{deleteErr: appErrors.ErrPreconditionFailed}
	r := newEventRouter(mock)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/events/ev-1?confirm=otro", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
}
