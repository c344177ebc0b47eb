package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/repository"
	"github.com/escolalink/escola-api/internal/store"
	"github.com/escolalink/escola-api/internal/views"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

// CreateStudentRequest holds payload for registering students.
type CreateStudentRequest struct {
	Name     string `json:"name" validate:"required"`
	ClassID  string `json:"class_id" validate:"required"`
	Age      int    `json:"age" validate:"gte=0"`
	Guardian string `json:"guardian"`
	Phone    string `json:"phone"`
}

// UpdateStudentRequest holds payload for updating students.
type UpdateStudentRequest struct {
	Name     string              `json:"name" validate:"required"`
	ClassID  string              `json:"class_id" validate:"required"`
	Age      int                 `json:"age" validate:"gte=0"`
	Guardian string              `json:"guardian"`
	Phone    string              `json:"phone"`
	Status   models.EntityStatus `json:"status" validate:"required,oneof=Active Inactive"`
}

// StudentService handles student use-cases. Reads refresh the store from the
// backend when one is configured; writes go through the store gateway first
// and are then mirrored to the backend.
type StudentService struct {
	store     *store.Store
	backend   *repository.Backend
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(st *store.Store, backend *repository.Backend, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{store: st, backend: backend, validator: validate, logger: logger}
}

// refresh pulls the authoritative rows into the store. Backend errors leave
// the last known contents in place; the caller decides whether to surface
// them.
func (s *StudentService) refresh(ctx context.Context) error {
	if !s.backend.Configured() {
		return nil
	}
	students, err := s.backend.Students.List(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, "failed to load students from backend")
	}
	s.store.ResetStudents(students)
	return nil
}

// List returns students matching the filter with pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	if err := s.refresh(ctx); err != nil {
		return nil, nil, err
	}
	students, _ := s.store.Students()

	filtered := make([]models.Student, 0, len(students))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, st := range students {
		if filter.ClassID != "" && st.ClassID != filter.ClassID {
			continue
		}
		if filter.Status != nil && st.Status != *filter.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(st.Name), search) &&
			!strings.Contains(strings.ToLower(st.Guardian), search) {
			continue
		}
		filtered = append(filtered, st)
	}

	page, size := normalisePage(filter.Page, filter.PageSize)
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: len(filtered)}
	return paginate(filtered, page, size), pagination, nil
}

// Get returns a student with the resolved class name.
func (s *StudentService) Get(ctx context.Context, id string) (*models.StudentDetail, error) {
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	student, ok := s.store.FindStudent(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	detail := models.StudentDetail{Student: student, ClassName: views.PlaceholderName}
	if class, ok := s.store.FindClass(student.ClassID); ok {
		detail.ClassName = class.Name
	}
	return &detail, nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if _, ok := s.store.FindClass(req.ClassID); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class does not exist")
	}
	student := s.store.AddStudent(models.Student{
		Name:     req.Name,
		ClassID:  req.ClassID,
		Age:      req.Age,
		Guardian: req.Guardian,
		Phone:    req.Phone,
		Status:   models.StatusActive,
	})
	if s.backend.Configured() {
		if err := s.backend.Students.Insert(ctx, student); err != nil {
			s.logger.Error("backend insert failed", zap.String("student_id", student.ID), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, "failed to persist student")
		}
	}
	return &student, nil
}

// Update modifies an existing student record.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	existing, ok := s.store.FindStudent(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	existing.Name = req.Name
	existing.ClassID = req.ClassID
	existing.Age = req.Age
	existing.Guardian = req.Guardian
	existing.Phone = req.Phone
	existing.Status = req.Status
	s.store.UpdateStudent(existing)
	if s.backend.Configured() {
		if err := s.backend.Students.Update(ctx, existing); err != nil {
			s.logger.Error("backend update failed", zap.String("student_id", id), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, "failed to persist student")
		}
	}
	return &existing, nil
}

// Deactivate flips the student to inactive. Student records are never hard
// deleted.
func (s *StudentService) Deactivate(ctx context.Context, id string) error {
	student, ok := s.store.FindStudent(id)
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	student.Status = models.StatusInactive
	s.store.UpdateStudent(student)
	if s.backend.Configured() {
		if err := s.backend.Students.Update(ctx, student); err != nil {
			s.logger.Error("backend deactivate failed", zap.String("student_id", id), zap.Error(err))
			return appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, "failed to persist student")
		}
	}
	return nil
}

func normalisePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return page, size
}

func paginate[T any](items []T, page, size int) []T {
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
