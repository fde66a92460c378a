package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/usm-dti/event-tracker-api/internal/models"
	appErrors "github.com/usm-dti/event-tracker-api/pkg/errors"
)

// EventStore is the persistence contract the CRUD controller depends on.
// Update and Delete report whether the id matched an existing record.
type EventStore interface {
	List(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type toastPusher interface {
	Push(message, severity string) models.Toast
}

// EventService is the CRUD controller over the event store. It owns the one
// validation rule of the domain (end date not before start date) and emits
// the user-facing toasts for every state change.
type EventService struct {
	store         EventStore
	toasts        toastPusher
	validator     *validator.Validate
	logger        *zap.Logger
	now           func() time.Time
	upcomingLimit int
}

// NewEventService constructs the service.
func NewEventService(store EventStore, toasts toastPusher, validate *validator.Validate, logger *zap.Logger, upcomingLimit int) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if upcomingLimit <= 0 {
		upcomingLimit = 5
	}
	svc := &EventService{
		store:         store,
		toasts:        toasts,
		validator:     validate,
		logger:        logger,
		now:           time.Now,
		upcomingLimit: upcomingLimit,
	}
	_ = svc.validator.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case models.CategoryAcademico, models.CategoryCultural, models.CategoryDeportivo, models.CategoryAdministrativo:
			return true
		default:
			return false
		}
	})
	_ = svc.validator.RegisterValidation("audience", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case models.AudienceEstudiantes, models.AudienceAcademicos, models.AudienceFuncionarios, models.AudienceComunidad:
			return true
		default:
			return false
		}
	})
	return svc
}

// EventRequest describes the create/update payload. Field names follow the
// persisted blob's camelCase contract.
type EventRequest struct {
	Title              string `json:"title" validate:"required"`
	Description        string `json:"description" validate:"required"`
	Campus             string `json:"campus"`
	Category           string `json:"category" validate:"required,category"`
	Public             string `json:"public" validate:"required,audience"`
	OrganizerUnit      string `json:"organizerUnit" validate:"required"`
	SpecificDepartment string `json:"specificDepartment"`
	StartDate          string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate            string `json:"endDate" validate:"required,datetime=2006-01-02"`
	StartTime          string `json:"startTime"`
	EndTime            string `json:"endTime"`
	Status             string `json:"status" validate:"omitempty,oneof=Programado 'En curso' Finalizado"`
	ImageURL           string `json:"imageUrl" validate:"omitempty,url"`
}

// List returns the filtered collection, preserving store order.
func (s *EventService) List(ctx context.Context, criteria models.FilterCriteria) ([]models.Event, error) {
	events, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return FilterEvents(events, criteria), nil
}

// Upcoming returns the next events not yet fully elapsed, earliest first.
// A non-positive limit falls back to the configured one.
func (s *EventService) Upcoming(ctx context.Context, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = s.upcomingLimit
	}
	events, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	today := s.now().Format("2006-01-02")
	return UpcomingEvents(events, today, limit), nil
}

// Options derives the categorical filter choices from the collection.
func (s *EventService) Options(ctx context.Context) (models.EventOptions, error) {
	events, err := s.store.List(ctx)
	if err != nil {
		return models.EventOptions{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return EventOptions(events), nil
}

// Calendar returns the month's per-day event occupancy.
func (s *EventService) Calendar(ctx context.Context, month string) ([]models.CalendarDay, error) {
	events, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	days, err := MonthOccupancy(events, month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "month must be formatted YYYY-MM")
	}
	return days, nil
}

// Get returns a single event by id.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get event")
	}
	if event == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return event, nil
}

// Create validates the payload, assigns a fresh id and prepends the record.
func (s *EventService) Create(ctx context.Context, req EventRequest) (*models.Event, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	event := req.toEvent(uuid.NewString())
	if err := s.store.Create(ctx, &event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}
	s.logger.Info("event created", zap.String("event_id", event.ID), zap.String("title", event.Title))
	s.toasts.Push("Evento creado con éxito", models.ToastSuccess)
	return &event, nil
}

// Update replaces the record matching id, preserving the id. A stale id is a
// structural no-op: nothing changes and no toast is emitted.
func (s *EventService) Update(ctx context.Context, id string, req EventRequest) (*models.Event, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	event := req.toEvent(id)
	found, err := s.store.Update(ctx, &event)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update event")
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	s.toasts.Push("Evento actualizado con éxito", models.ToastSuccess)
	return &event, nil
}

// Delete removes the record matching id after an explicit confirmation: the
// supplied title must equal the target's display title. A stale id is a
// silent no-op.
func (s *EventService) Delete(ctx context.Context, id, confirmTitle string) error {
	event, err := s.store.GetByID(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	if event == nil {
		return nil
	}
	if confirmTitle != event.Title {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "confirmation title does not match the event")
	}
	if _, err := s.store.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}
	s.logger.Info("event deleted", zap.String("event_id", id))
	s.toasts.Push("Evento eliminado", models.ToastInfo)
	return nil
}

func (s *EventService) validate(req EventRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if req.EndDate < req.StartDate {
		s.toasts.Push("La fecha de fin debe ser posterior a la de inicio", models.ToastError)
		return appErrors.Clone(appErrors.ErrValidation, "endDate must be on or after startDate")
	}
	return nil
}

func (r EventRequest) toEvent(id string) models.Event {
	return models.Event{
		ID:                 id,
		Title:              r.Title,
		Description:        r.Description,
		Campus:             r.Campus,
		Category:           r.Category,
		Public:             r.Public,
		OrganizerUnit:      r.OrganizerUnit,
		SpecificDepartment: r.SpecificDepartment,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		StartTime:          r.StartTime,
		EndTime:            r.EndTime,
		Status:             r.Status,
		ImageURL:           r.ImageURL,
	}
}
