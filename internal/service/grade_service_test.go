package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolalink/escola-api/internal/models"
)

func TestStudentGradesFixture(t *testing.T) {
	st := seededStore(t)
	svc := NewGradeService(st, nil, nil)

	lines, err := svc.StudentGrades(context.Background(), "stu-001")
	require.NoError(t, err)
	require.NotEmpty(t, lines)

	var math *SubjectGrades
	for i := range lines {
		if lines[i].SubjectID == "sbj-001" {
			math = &lines[i]
		}
	}
	require.NotNil(t, math)
	assert.Equal(t, "Matemática", math.SubjectName)
	assert.Equal(t, "16.33", math.Average)
}

func TestStudentGradesEmptyRecordShowsSentinel(t *testing.T) {
	st := seededStore(t)
	svc := NewGradeService(st, nil, nil)

	lines, err := svc.StudentGrades(context.Background(), "stu-002")
	require.NoError(t, err)
	for _, line := range lines {
		if line.SubjectID == "sbj-001" {
			assert.Equal(t, models.GradeSentinel, line.Average)
		}
	}
}

func TestStudentGradesNoGradebook(t *testing.T) {
	st := seededStore(t)
	svc := NewGradeService(st, nil, nil)

	lines, err := svc.StudentGrades(context.Background(), "stu-006")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestStudentGradesUnknownStudent(t *testing.T) {
	st := seededStore(t)
	svc := NewGradeService(st, nil, nil)

	_, err := svc.StudentGrades(context.Background(), "ghost")
	require.Error(t, err)
}

func TestUpsertGradesValidatesSubject(t *testing.T) {
	st := seededStore(t)
	svc := NewGradeService(st, nil, nil)

	_, err := svc.UpsertGrades(context.Background(), "stu-001", GradeRecordRequest{SubjectID: "sbj-ghost", Nota1: "12"})
	require.Error(t, err)

	line, err := svc.UpsertGrades(context.Background(), "stu-001", GradeRecordRequest{SubjectID: "sbj-002", Nota1: "12", Nota2: "14"})
	require.NoError(t, err)
	assert.Equal(t, "13.00", line.Average)
}

func TestClassGradeSheet(t *testing.T) {
	st := seededStore(t)
	svc := NewGradeService(st, nil, nil)

	sheet, err := svc.ClassGradeSheet(context.Background(), "cls-001", "sbj-001")
	require.NoError(t, err)
	assert.Equal(t, "Matemática", sheet.SubjectName)
	require.Len(t, sheet.Rows, 3, "one row per enrolled student")

	byStudent := make(map[string]models.GradeSheetRow, len(sheet.Rows))
	for _, row := range sheet.Rows {
		byStudent[row.StudentID] = row
	}
	assert.Equal(t, "16.33", byStudent["stu-001"].Average)
	// Students without any computable score get the sentinel, not a zero.
	assert.Equal(t, models.GradeSentinel, byStudent["stu-002"].Average)
	assert.Equal(t, models.GradeSentinel, byStudent["stu-003"].Average)
}

func TestClassGradeSheetUnknownClass(t *testing.T) {
	st := seededStore(t)
	svc := NewGradeService(st, nil, nil)

	_, err := svc.ClassGradeSheet(context.Background(), "ghost", "sbj-001")
	require.Error(t, err)
}
