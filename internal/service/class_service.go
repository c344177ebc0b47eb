package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/repository"
	"github.com/escolalink/escola-api/internal/store"
	"github.com/escolalink/escola-api/internal/views"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

// ClassRequest holds payload for creating and updating classes.
type ClassRequest struct {
	Name      string `json:"name" validate:"required"`
	Year      string `json:"year" validate:"required"`
	TeacherID string `json:"teacher_id"`
}

// ClassService handles class use-cases. Reads go through the derived view
// builder so responses always carry the teacher name and live student count.
type ClassService struct {
	store     *store.Store
	views     *views.Views
	backend   *repository.Backend
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs the class service.
func NewClassService(st *store.Store, vw *views.Views, backend *repository.Backend, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{store: st, views: vw, backend: backend, validator: validate, logger: logger}
}

func (s *ClassService) refresh(ctx context.Context) error {
	if !s.backend.Configured() {
		return nil
	}
	classes, err := s.backend.Classes.List(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, "failed to load classes from backend")
	}
	s.store.ResetClasses(classes)
	return nil
}

// List returns every class with derived details.
func (s *ClassService) List(ctx context.Context) ([]models.ClassDetail, error) {
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	return s.views.ClassesWithDetails(), nil
}

// Get returns one class with derived details and its curriculum.
func (s *ClassService) Get(ctx context.Context, id string) (*models.ClassDetail, []models.CurriculumRow, error) {
	if err := s.refresh(ctx); err != nil {
		return nil, nil, err
	}
	for _, detail := range s.views.ClassesWithDetails() {
		if detail.ID == id {
			return &detail, s.views.CurriculumForClass(id), nil
		}
	}
	return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
}

// Create registers a new class.
func (s *ClassService) Create(ctx context.Context, req ClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	if req.TeacherID != "" {
		if _, ok := s.store.FindTeacher(req.TeacherID); !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "teacher does not exist")
		}
	}
	class := s.store.AddClass(models.Class{Name: req.Name, Year: req.Year, TeacherID: req.TeacherID})
	if s.backend.Configured() {
		if err := s.backend.Classes.Insert(ctx, class); err != nil {
			s.logger.Error("backend insert failed", zap.String("class_id", class.ID), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, "failed to persist class")
		}
	}
	return &class, nil
}

// Update modifies an existing class.
func (s *ClassService) Update(ctx context.Context, id string, req ClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	class, ok := s.store.FindClass(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	if req.TeacherID != "" {
		if _, ok := s.store.FindTeacher(req.TeacherID); !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "teacher does not exist")
		}
	}
	class.Name = req.Name
	class.Year = req.Year
	class.TeacherID = req.TeacherID
	s.store.UpdateClass(class)
	if s.backend.Configured() {
		if err := s.backend.Classes.Update(ctx, class); err != nil {
			s.logger.Error("backend update failed", zap.String("class_id", id), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, "failed to persist class")
		}
	}
	return &class, nil
}

// Delete removes a class. The store gateway rejects the delete while
// students are enrolled or curriculum entries reference the class.
func (s *ClassService) Delete(ctx context.Context, id string) error {
	return s.store.RemoveClass(id)
}
