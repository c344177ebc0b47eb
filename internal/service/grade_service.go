package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/store"
	"github.com/escolalink/escola-api/internal/views"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

// GradeRecordRequest carries the raw score fields for one subject. Scores
// stay strings: empty means "not graded yet" and out-of-range values are
// excluded from the average rather than rejected, matching the grading rule.
type GradeRecordRequest struct {
	SubjectID    string `json:"subject_id" validate:"required"`
	Nota1        string `json:"nota1"`
	Nota2        string `json:"nota2"`
	FinalExam    string `json:"final_exam"`
	Observations string `json:"observations"`
}

// SubjectGrades is a gradebook line with the computed average.
type SubjectGrades struct {
	SubjectID   string             `json:"subject_id"`
	SubjectName string             `json:"subject_name"`
	Record      models.GradeRecord `json:"record"`
	Average     string             `json:"average"`
}

// GradeService handles gradebook use-cases.
type GradeService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradeService constructs the grade service.
func NewGradeService(st *store.Store, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{store: st, validator: validate, logger: logger}
}

// StudentGrades returns the student's gradebook lines with averages,
// resolved to subject names. Students without a gradebook get an empty list.
func (s *GradeService) StudentGrades(ctx context.Context, studentID string) ([]SubjectGrades, error) {
	if _, ok := s.store.FindStudent(studentID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	book, ok := s.store.GradebookFor(studentID)
	if !ok {
		return []SubjectGrades{}, nil
	}

	subjects, _ := s.store.Subjects()
	lines := make([]SubjectGrades, 0, len(book.Grades))
	for _, subject := range subjects {
		record, graded := book.Grades[subject.ID]
		if !graded {
			continue
		}
		lines = append(lines, SubjectGrades{
			SubjectID:   subject.ID,
			SubjectName: subject.Name,
			Record:      record,
			Average:     record.AverageDisplay(),
		})
	}
	return lines, nil
}

// UpsertGrades writes one subject's scores into a student's gradebook.
func (s *GradeService) UpsertGrades(ctx context.Context, studentID string, req GradeRecordRequest) (*SubjectGrades, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	if _, ok := s.store.FindStudent(studentID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	subject, ok := s.store.FindSubject(req.SubjectID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject does not exist")
	}

	record := models.GradeRecord{
		Nota1:        req.Nota1,
		Nota2:        req.Nota2,
		FinalExam:    req.FinalExam,
		Observations: req.Observations,
	}
	s.store.UpsertGradeRecord(studentID, req.SubjectID, record)

	return &SubjectGrades{
		SubjectID:   subject.ID,
		SubjectName: subject.Name,
		Record:      record,
		Average:     record.AverageDisplay(),
	}, nil
}

// ClassGradeSheet builds the grade sheet of a class for one subject: one row
// per enrolled student with the computed average or the sentinel.
func (s *GradeService) ClassGradeSheet(ctx context.Context, classID, subjectID string) (*models.ClassGradeSheet, error) {
	class, ok := s.store.FindClass(classID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	subjectName := views.PlaceholderName
	if subject, ok := s.store.FindSubject(subjectID); ok {
		subjectName = subject.Name
	}

	students, _ := s.store.Students()
	sheet := &models.ClassGradeSheet{
		ClassID:     class.ID,
		ClassName:   class.Name,
		SubjectID:   subjectID,
		SubjectName: subjectName,
		Rows:        make([]models.GradeSheetRow, 0),
	}
	for _, student := range students {
		if student.ClassID != classID {
			continue
		}
		var record models.GradeRecord
		if book, ok := s.store.GradebookFor(student.ID); ok {
			record = book.RecordFor(subjectID)
		}
		sheet.Rows = append(sheet.Rows, models.GradeSheetRow{
			StudentID:   student.ID,
			StudentName: student.Name,
			Record:      record,
			Average:     record.AverageDisplay(),
		})
	}
	return sheet, nil
}
