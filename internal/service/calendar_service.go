package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/store"
	"github.com/escolalink/escola-api/internal/views"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

// CalendarEventRequest holds payload for creating and updating events.
type CalendarEventRequest struct {
	Title     string  `json:"title" validate:"required"`
	Date      string  `json:"date" validate:"required"`
	Type      string  `json:"type" validate:"required,oneof=Holiday Event Exam Deadline"`
	ClassID   *string `json:"class_id,omitempty"`
	SubjectID *string `json:"subject_id,omitempty"`
}

// CalendarService handles calendar use-cases.
type CalendarService struct {
	store     *store.Store
	views     *views.Views
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCalendarService constructs the calendar service.
func NewCalendarService(st *store.Store, vw *views.Views, validate *validator.Validate, logger *zap.Logger) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{store: st, views: vw, validator: validate, logger: logger}
}

// List returns all calendar events.
func (s *CalendarService) List(ctx context.Context) ([]models.CalendarEvent, error) {
	events, _ := s.store.Events()
	return events, nil
}

// Upcoming returns the next events, truncated to limit.
func (s *CalendarService) Upcoming(ctx context.Context, limit int) ([]models.CalendarEvent, error) {
	return s.views.UpcomingEvents(limit), nil
}

// UpcomingForStudent filters upcoming events for a student: exams of other
// classes are excluded.
func (s *CalendarService) UpcomingForStudent(ctx context.Context, studentID string, limit int) ([]models.CalendarEvent, error) {
	if _, ok := s.store.FindStudent(studentID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return s.views.UpcomingEventsForStudent(studentID, limit), nil
}

// Create registers a new event.
func (s *CalendarService) Create(ctx context.Context, req CalendarEventRequest) (*models.CalendarEvent, error) {
	event, err := s.toEvent(req)
	if err != nil {
		return nil, err
	}
	added := s.store.AddEvent(*event)
	return &added, nil
}

// Update modifies an existing event, keeping its creation timestamp.
func (s *CalendarService) Update(ctx context.Context, id string, req CalendarEventRequest) (*models.CalendarEvent, error) {
	existing, ok := s.store.FindEvent(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	event, err := s.toEvent(req)
	if err != nil {
		return nil, err
	}
	event.ID = id
	event.CreatedAt = existing.CreatedAt
	if !s.store.UpdateEvent(*event) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return event, nil
}

// Delete removes an event.
func (s *CalendarService) Delete(ctx context.Context, id string) error {
	if !s.store.RemoveEvent(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return nil
}

func (s *CalendarService) toEvent(req CalendarEventRequest) (*models.CalendarEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use the YYYY-MM-DD format")
	}
	eventType := models.EventType(req.Type)
	if eventType == models.EventExam && req.ClassID != nil {
		if _, ok := s.store.FindClass(*req.ClassID); !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "class does not exist")
		}
	}
	return &models.CalendarEvent{
		Title:     req.Title,
		Date:      date,
		Type:      eventType,
		ClassID:   req.ClassID,
		SubjectID: req.SubjectID,
	}, nil
}
