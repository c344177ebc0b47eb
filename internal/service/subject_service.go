package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/store"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

// SubjectRequest holds payload for creating and updating subjects.
type SubjectRequest struct {
	Name     string `json:"name" validate:"required"`
	Code     string `json:"code" validate:"required"`
	Workload int    `json:"workload" validate:"gte=0"`
}

// CurriculumRequest binds a subject and teacher to a class.
type CurriculumRequest struct {
	ClassID   string `json:"class_id" validate:"required"`
	SubjectID string `json:"subject_id" validate:"required"`
	TeacherID string `json:"teacher_id" validate:"required"`
}

// SubjectService handles subject and curriculum use-cases.
type SubjectService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs the subject service.
func NewSubjectService(st *store.Store, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{store: st, validator: validate, logger: logger}
}

// List returns all subjects.
func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	subjects, _ := s.store.Subjects()
	return subjects, nil
}

// Create registers a new subject.
func (s *SubjectService) Create(ctx context.Context, req SubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	subject := s.store.AddSubject(models.Subject{Name: req.Name, Code: req.Code, Workload: req.Workload})
	return &subject, nil
}

// Update modifies an existing subject.
func (s *SubjectService) Update(ctx context.Context, id string, req SubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	subject, ok := s.store.FindSubject(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	subject.Name = req.Name
	subject.Code = req.Code
	subject.Workload = req.Workload
	s.store.UpdateSubject(subject)
	return &subject, nil
}

// Delete removes a subject. The store gateway rejects the delete while a
// curriculum entry references the subject.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	return s.store.RemoveSubject(id)
}

// Assign adds a curriculum entry binding subject and teacher to a class.
func (s *SubjectService) Assign(ctx context.Context, req CurriculumRequest) (*models.CurriculumEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid curriculum payload")
	}
	if _, ok := s.store.FindClass(req.ClassID); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class does not exist")
	}
	if _, ok := s.store.FindSubject(req.SubjectID); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject does not exist")
	}
	if _, ok := s.store.FindTeacher(req.TeacherID); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher does not exist")
	}
	entry, err := s.store.AddCurriculumEntry(models.CurriculumEntry{
		ClassID:   req.ClassID,
		SubjectID: req.SubjectID,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Reassign changes the instructor of an existing curriculum entry.
func (s *SubjectService) Reassign(ctx context.Context, id, teacherID string) (*models.CurriculumEntry, error) {
	if _, ok := s.store.FindTeacher(teacherID); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher does not exist")
	}
	entries, _ := s.store.Curriculum()
	for _, entry := range entries {
		if entry.ID != id {
			continue
		}
		entry.TeacherID = teacherID
		if err := s.store.UpdateCurriculumEntry(entry); err != nil {
			return nil, err
		}
		return &entry, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "curriculum entry not found")
}

// Unassign removes a curriculum entry.
func (s *SubjectService) Unassign(ctx context.Context, id string) error {
	if !s.store.RemoveCurriculumEntry(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "curriculum entry not found")
	}
	return nil
}
