package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/store"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

// TeacherRequest holds payload for creating and updating teachers.
type TeacherRequest struct {
	Name           string              `json:"name" validate:"required"`
	Email          string              `json:"email" validate:"required,email"`
	Phone          string              `json:"phone"`
	Qualifications string              `json:"qualifications"`
	Status         models.EntityStatus `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

// StaffRequest holds payload for creating and updating staff members.
type StaffRequest struct {
	Name       string              `json:"name" validate:"required"`
	Role       string              `json:"role" validate:"required"`
	Department string              `json:"department"`
	Phone      string              `json:"phone"`
	Status     models.EntityStatus `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

// TeacherService handles teacher and staff use-cases.
type TeacherService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs the teacher service.
func NewTeacherService(st *store.Store, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{store: st, validator: validate, logger: logger}
}

// List returns teachers matching the filter.
func (s *TeacherService) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, *models.Pagination, error) {
	teachers, _ := s.store.Teachers()
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	filtered := make([]models.Teacher, 0, len(teachers))
	for _, t := range teachers {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Name), search) &&
			!strings.Contains(strings.ToLower(t.Email), search) {
			continue
		}
		filtered = append(filtered, t)
	}

	page, size := normalisePage(filter.Page, filter.PageSize)
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: len(filtered)}
	return paginate(filtered, page, size), pagination, nil
}

// Get returns a teacher by ID.
func (s *TeacherService) Get(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, ok := s.store.FindTeacher(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	return &teacher, nil
}

// Create registers a new teacher.
func (s *TeacherService) Create(ctx context.Context, req TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	status := req.Status
	if status == "" {
		status = models.StatusActive
	}
	teacher := s.store.AddTeacher(models.Teacher{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Qualifications: req.Qualifications,
		Status:         status,
	})
	return &teacher, nil
}

// Update modifies an existing teacher.
func (s *TeacherService) Update(ctx context.Context, id string, req TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	teacher, ok := s.store.FindTeacher(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	teacher.Name = req.Name
	teacher.Email = req.Email
	teacher.Phone = req.Phone
	teacher.Qualifications = req.Qualifications
	if req.Status != "" {
		teacher.Status = req.Status
	}
	s.store.UpdateTeacher(teacher)
	return &teacher, nil
}

// Delete removes a teacher. The store gateway rejects the delete while
// classes or curriculum entries reference the teacher.
func (s *TeacherService) Delete(ctx context.Context, id string) error {
	return s.store.RemoveTeacher(id)
}

// ListStaff returns all staff members.
func (s *TeacherService) ListStaff(ctx context.Context) ([]models.Staff, error) {
	staff, _ := s.store.Staff()
	return staff, nil
}

// CreateStaff registers a new staff member.
func (s *TeacherService) CreateStaff(ctx context.Context, req StaffRequest) (*models.Staff, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload")
	}
	status := req.Status
	if status == "" {
		status = models.StatusActive
	}
	member := s.store.AddStaff(models.Staff{
		Name:       req.Name,
		Role:       req.Role,
		Department: req.Department,
		Phone:      req.Phone,
		Status:     status,
	})
	return &member, nil
}

// UpdateStaff modifies an existing staff member.
func (s *TeacherService) UpdateStaff(ctx context.Context, id string, req StaffRequest) (*models.Staff, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload")
	}
	staff, _ := s.store.Staff()
	for _, member := range staff {
		if member.ID != id {
			continue
		}
		member.Name = req.Name
		member.Role = req.Role
		member.Department = req.Department
		member.Phone = req.Phone
		if req.Status != "" {
			member.Status = req.Status
		}
		s.store.UpdateStaff(member)
		return &member, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "staff member not found")
}

// DeleteStaff removes a staff member.
func (s *TeacherService) DeleteStaff(ctx context.Context, id string) error {
	if !s.store.RemoveStaff(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "staff member not found")
	}
	return nil
}
