package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/store"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

// AnnouncementRequest holds payload for notices.
type AnnouncementRequest struct {
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body" validate:"required"`
	Audience string `json:"audience" validate:"required,oneof=ALL ADMIN DIRECTION SECRETARIAT TEACHER GUARDIAN STUDENT"`
}

// AnnouncementService handles notice use-cases.
type AnnouncementService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAnnouncementService constructs the announcement service.
func NewAnnouncementService(st *store.Store, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{store: st, validator: validate, logger: logger}
}

// List returns notices, optionally narrowed to one audience. Audience "ALL"
// notices always pass the filter.
func (s *AnnouncementService) List(ctx context.Context, audience string) ([]models.Announcement, error) {
	notices, _ := s.store.Announcements()
	if audience == "" {
		return notices, nil
	}
	filtered := make([]models.Announcement, 0, len(notices))
	for _, n := range notices {
		if n.Audience == "ALL" || n.Audience == audience {
			filtered = append(filtered, n)
		}
	}
	return filtered, nil
}

// Create publishes a notice.
func (s *AnnouncementService) Create(ctx context.Context, req AnnouncementRequest) (*models.Announcement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement payload")
	}
	notice := s.store.AddAnnouncement(models.Announcement{Title: req.Title, Body: req.Body, Audience: req.Audience})
	return &notice, nil
}

// Update modifies a notice.
func (s *AnnouncementService) Update(ctx context.Context, id string, req AnnouncementRequest) (*models.Announcement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement payload")
	}
	notices, _ := s.store.Announcements()
	for _, n := range notices {
		if n.ID != id {
			continue
		}
		n.Title = req.Title
		n.Body = req.Body
		n.Audience = req.Audience
		s.store.UpdateAnnouncement(n)
		return &n, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "announcement not found")
}

// Delete removes a notice.
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	if !s.store.RemoveAnnouncement(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "announcement not found")
	}
	return nil
}
