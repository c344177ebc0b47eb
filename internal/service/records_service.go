package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/store"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

// HealthRecordRequest holds payload for health records.
type HealthRecordRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	BloodType string `json:"blood_type"`
	Allergies string `json:"allergies"`
	Notes     string `json:"notes"`
}

// LessonPlanRequest holds payload for lesson plans.
type LessonPlanRequest struct {
	TeacherID string `json:"teacher_id" validate:"required"`
	ClassID   string `json:"class_id" validate:"required"`
	SubjectID string `json:"subject_id" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content"`
	Date      string `json:"date" validate:"required"`
}

// SettingsRequest holds payload for the school profile.
type SettingsRequest struct {
	Name         string `json:"name" validate:"required"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email" validate:"omitempty,email"`
	AcademicYear string `json:"academic_year"`
}

// RecordsService handles health records, lesson plans and school settings.
type RecordsService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRecordsService constructs the records service.
func NewRecordsService(st *store.Store, validate *validator.Validate, logger *zap.Logger) *RecordsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsService{store: st, validator: validate, logger: logger}
}

// HealthRecords lists records, optionally for one student.
func (s *RecordsService) HealthRecords(ctx context.Context, studentID string) ([]models.HealthRecord, error) {
	records, _ := s.store.HealthRecords()
	if studentID == "" {
		return records, nil
	}
	filtered := make([]models.HealthRecord, 0, len(records))
	for _, rec := range records {
		if rec.StudentID == studentID {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

// CreateHealthRecord registers a record.
func (s *RecordsService) CreateHealthRecord(ctx context.Context, req HealthRecordRequest) (*models.HealthRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid health record payload")
	}
	if _, ok := s.store.FindStudent(req.StudentID); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student does not exist")
	}
	record := s.store.AddHealthRecord(models.HealthRecord{
		StudentID: req.StudentID,
		BloodType: req.BloodType,
		Allergies: req.Allergies,
		Notes:     req.Notes,
	})
	return &record, nil
}

// UpdateHealthRecord modifies a record.
func (s *RecordsService) UpdateHealthRecord(ctx context.Context, id string, req HealthRecordRequest) (*models.HealthRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid health record payload")
	}
	records, _ := s.store.HealthRecords()
	for _, rec := range records {
		if rec.ID != id {
			continue
		}
		rec.StudentID = req.StudentID
		rec.BloodType = req.BloodType
		rec.Allergies = req.Allergies
		rec.Notes = req.Notes
		s.store.UpdateHealthRecord(rec)
		return &rec, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "health record not found")
}

// DeleteHealthRecord removes a record.
func (s *RecordsService) DeleteHealthRecord(ctx context.Context, id string) error {
	if !s.store.RemoveHealthRecord(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "health record not found")
	}
	return nil
}

// LessonPlans lists plans, optionally for one teacher.
func (s *RecordsService) LessonPlans(ctx context.Context, teacherID string) ([]models.LessonPlan, error) {
	plans, _ := s.store.LessonPlans()
	if teacherID == "" {
		return plans, nil
	}
	filtered := make([]models.LessonPlan, 0, len(plans))
	for _, plan := range plans {
		if plan.TeacherID == teacherID {
			filtered = append(filtered, plan)
		}
	}
	return filtered, nil
}

// CreateLessonPlan registers a plan.
func (s *RecordsService) CreateLessonPlan(ctx context.Context, req LessonPlanRequest) (*models.LessonPlan, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson plan payload")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use the YYYY-MM-DD format")
	}
	if _, ok := s.store.FindTeacher(req.TeacherID); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher does not exist")
	}
	if _, ok := s.store.FindClass(req.ClassID); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class does not exist")
	}
	plan := s.store.AddLessonPlan(models.LessonPlan{
		TeacherID: req.TeacherID,
		ClassID:   req.ClassID,
		SubjectID: req.SubjectID,
		Title:     req.Title,
		Content:   req.Content,
		Date:      date,
	})
	return &plan, nil
}

// DeleteLessonPlan removes a plan.
func (s *RecordsService) DeleteLessonPlan(ctx context.Context, id string) error {
	if !s.store.RemoveLessonPlan(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "lesson plan not found")
	}
	return nil
}

// Settings returns the school profile.
func (s *RecordsService) Settings(ctx context.Context) (models.SchoolSettings, error) {
	settings, _ := s.store.Settings()
	return settings, nil
}

// UpdateSettings replaces the school profile.
func (s *RecordsService) UpdateSettings(ctx context.Context, req SettingsRequest) (models.SchoolSettings, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.SchoolSettings{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}
	return s.store.UpdateSettings(models.SchoolSettings{
		Name:         req.Name,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		AcademicYear: req.AcademicYear,
	}), nil
}
