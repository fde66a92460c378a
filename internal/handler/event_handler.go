package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/usm-dti/event-tracker-api/internal/models"
	"github.com/usm-dti/event-tracker-api/internal/service"
	appErrors "github.com/usm-dti/event-tracker-api/pkg/errors"
	"github.com/usm-dti/event-tracker-api/pkg/response"
)

type eventService interface {
	List(ctx context.Context, criteria models.FilterCriteria) ([]models.Event, error)
	Upcoming(ctx context.Context, limit int) ([]models.Event, error)
	Options(ctx context.Context) (models.EventOptions, error)
	Calendar(ctx context.Context, month string) ([]models.CalendarDay, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, req service.EventRequest) (*models.Event, error)
	Update(ctx context.Context, id string, req service.EventRequest) (*models.Event, error)
	Delete(ctx context.Context, id, confirmTitle string) error
}

// EventHandler exposes the event CRUD and read-model endpoints.
type EventHandler struct {
	service eventService
	metrics *service.MetricsService
}

// NewEventHandler constructs the handler. metrics may be nil.
func NewEventHandler(svc eventService, metrics *service.MetricsService) *EventHandler {
	return &EventHandler{service: svc, metrics: metrics}
}

// List godoc
// @Summary List events
// @Description Lists events newest first, filtered by title substring, category, audience and date
// @Tags Events
// @Produce json
// @Param query query string false "Title substring, case-insensitive"
// @Param category query string false "Category, or Todos"
// @Param public query string false "Audience, or Todos"
// @Param date query string false "Only events covering this date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	var criteria models.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid filter parameters"))
		return
	}
	if criteria.SelectedDate != "" {
		if _, err := time.Parse("2006-01-02", criteria.SelectedDate); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be formatted YYYY-MM-DD"))
			return
		}
	}

	events, err := h.service.List(c.Request.Context(), criteria)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, map[string]interface{}{"count": len(events)})
}

// Upcoming godoc
// @Summary Upcoming events
// @Description Next events not yet finished, earliest start first
// @Tags Events
// @Produce json
// @Param limit query int false "Maximum results"
// @Success 200 {object} response.Envelope
// @Router /events/upcoming [get]
func (h *EventHandler) Upcoming(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	events, err := h.service.Upcoming(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// Options godoc
// @Summary Filter options
// @Description Categories and audiences present in the collection
// @Tags Events
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /events/options [get]
func (h *EventHandler) Options(c *gin.Context) {
	options, err := h.service.Options(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options, nil)
}

// Calendar godoc
// @Summary Month occupancy
// @Description Days of the month covered by at least one event
// @Tags Events
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /events/calendar [get]
func (h *EventHandler) Calendar(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	days, err := h.service.Calendar(c.Request.Context(), month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, days, nil)
}

// Get godoc
// @Summary Get event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Create godoc
// @Summary Create event
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body service.EventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req service.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid event payload"))
		return
	}

	event, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordEventMutation("create")
	response.Created(c, event)
}

// Update godoc
// @Summary Update event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body service.EventRequest true "Event payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	var req service.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid event payload"))
		return
	}

	event, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordEventMutation("update")
	response.JSON(c, http.StatusOK, event, nil)
}

// Delete godoc
// @Summary Delete event
// @Description Removes the event after title confirmation. Deleting an id that no longer exists is a no-op.
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Param confirm query string true "Exact event title, as confirmation"
// @Success 204 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), c.Query("confirm")); err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordEventMutation("delete")
	response.NoContent(c)
}
