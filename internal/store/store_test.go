package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolalink/escola-api/internal/models"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

func TestAddStudentAssignsFreshID(t *testing.T) {
	s := New()

	first := s.AddStudent(models.Student{ID: "stu-1", Name: "Marta Dias", ClassID: "cls-1"})
	assert.Equal(t, "stu-1", first.ID)

	// Same ID again must not clobber the existing record.
	second := s.AddStudent(models.Student{ID: "stu-1", Name: "Rui Campos", ClassID: "cls-1"})
	assert.NotEqual(t, "stu-1", second.ID)
	assert.NotEmpty(t, second.ID)

	students, _ := s.Students()
	assert.Len(t, students, 2)
}

func TestAddStudentGeneratesIDWhenEmpty(t *testing.T) {
	s := New()

	created := s.AddStudent(models.Student{Name: "Marta Dias"})
	assert.NotEmpty(t, created.ID)
}

func TestUpdateStudentMissingIsNoOp(t *testing.T) {
	s := New()
	s.AddStudent(models.Student{ID: "stu-1", Name: "Marta Dias"})

	ok := s.UpdateStudent(models.Student{ID: "ghost", Name: "Nobody"})
	assert.False(t, ok)

	students, _ := s.Students()
	require.Len(t, students, 1)
	assert.Equal(t, "Marta Dias", students[0].Name)
}

func TestVersionAdvancesOnWrite(t *testing.T) {
	s := New()

	_, before := s.Students()
	s.AddStudent(models.Student{Name: "Marta Dias"})
	_, after := s.Students()
	assert.Greater(t, after, before)

	// Reads never bump the version.
	_, again := s.Students()
	assert.Equal(t, after, again)
}

func TestListedSliceIsStableAcrossWrites(t *testing.T) {
	s := New()
	s.AddStudent(models.Student{ID: "stu-1", Name: "Marta Dias"})

	snapshot, _ := s.Students()
	s.AddStudent(models.Student{ID: "stu-2", Name: "Rui Campos"})

	// The previously returned slice must not observe the new write.
	assert.Len(t, snapshot, 1)
}

func TestRemoveTeacherGuardedByClassAssignment(t *testing.T) {
	s := New()
	teacher := s.AddTeacher(models.Teacher{ID: "tch-1", Name: "Ana Ferreira"})
	s.AddClass(models.Class{ID: "cls-1", Name: "7A", TeacherID: teacher.ID})

	err := s.RemoveTeacher(teacher.ID)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInUse.Code, appErr.Code)

	_, found := s.FindTeacher(teacher.ID)
	assert.True(t, found)
}

func TestRemoveTeacherGuardedByCurriculum(t *testing.T) {
	s := New()
	teacher := s.AddTeacher(models.Teacher{ID: "tch-1", Name: "Ana Ferreira"})
	s.AddClass(models.Class{ID: "cls-1", Name: "7A"})
	s.AddSubject(models.Subject{ID: "sbj-1", Name: "Matemática"})
	_, err := s.AddCurriculumEntry(models.CurriculumEntry{ClassID: "cls-1", SubjectID: "sbj-1", TeacherID: teacher.ID})
	require.NoError(t, err)

	err = s.RemoveTeacher(teacher.ID)
	require.Error(t, err)
}

func TestRemoveTeacherUnreferenced(t *testing.T) {
	s := New()
	teacher := s.AddTeacher(models.Teacher{ID: "tch-1", Name: "Ana Ferreira"})

	require.NoError(t, s.RemoveTeacher(teacher.ID))
	_, found := s.FindTeacher(teacher.ID)
	assert.False(t, found)
}

func TestRemoveClassGuardedByEnrolment(t *testing.T) {
	s := New()
	s.AddClass(models.Class{ID: "cls-1", Name: "7A"})
	s.AddStudent(models.Student{ID: "stu-1", Name: "Marta Dias", ClassID: "cls-1"})

	err := s.RemoveClass("cls-1")
	require.Error(t, err)

	s.RemoveStudent("stu-1")
	require.NoError(t, s.RemoveClass("cls-1"))
}

func TestRemoveSubjectGuardedByCurriculum(t *testing.T) {
	s := New()
	s.AddClass(models.Class{ID: "cls-1", Name: "7A"})
	s.AddSubject(models.Subject{ID: "sbj-1", Name: "Matemática"})
	entry, err := s.AddCurriculumEntry(models.CurriculumEntry{ClassID: "cls-1", SubjectID: "sbj-1", TeacherID: "tch-1"})
	require.NoError(t, err)

	require.Error(t, s.RemoveSubject("sbj-1"))

	s.RemoveCurriculumEntry(entry.ID)
	require.NoError(t, s.RemoveSubject("sbj-1"))
}

func TestCurriculumUniquePerClassSubject(t *testing.T) {
	s := New()
	s.AddClass(models.Class{ID: "cls-1", Name: "7A"})
	s.AddSubject(models.Subject{ID: "sbj-1", Name: "Matemática"})

	_, err := s.AddCurriculumEntry(models.CurriculumEntry{ClassID: "cls-1", SubjectID: "sbj-1", TeacherID: "tch-1"})
	require.NoError(t, err)

	_, err = s.AddCurriculumEntry(models.CurriculumEntry{ClassID: "cls-1", SubjectID: "sbj-1", TeacherID: "tch-2"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestUpsertGradeRecordCopiesGradeMap(t *testing.T) {
	s := New()
	s.AddStudent(models.Student{ID: "stu-1", Name: "Marta Dias"})

	first := s.UpsertGradeRecord("stu-1", "sbj-1", models.GradeRecord{Nota1: "12"})
	s.UpsertGradeRecord("stu-1", "sbj-1", models.GradeRecord{Nota1: "18"})

	// The gradebook handed out earlier must not see the second write.
	assert.Equal(t, "12", first.Grades["sbj-1"].Nota1)

	book, ok := s.GradebookFor("stu-1")
	require.True(t, ok)
	assert.Equal(t, "18", book.Grades["sbj-1"].Nota1)
}

func TestLendAndReturnBook(t *testing.T) {
	s := New()
	book := s.AddBook(models.Book{ID: "bok-1", Title: "Os Maias", Author: "Eça de Queirós", Available: true})
	s.AddStudent(models.Student{ID: "stu-1", Name: "Marta Dias"})

	loan, err := s.LendBook(models.BookLoan{BookID: book.ID, StudentID: "stu-1"})
	require.NoError(t, err)

	stored, _ := s.FindBook(book.ID)
	assert.False(t, stored.Available)

	// A second loan for the same book must fail while the first is open.
	_, err = s.LendBook(models.BookLoan{BookID: book.ID, StudentID: "stu-1"})
	require.Error(t, err)

	// Removing the book is blocked until the loan closes.
	require.Error(t, s.RemoveBook(book.ID))

	_, err = s.ReturnBook(loan.ID)
	require.NoError(t, err)

	stored, _ = s.FindBook(book.ID)
	assert.True(t, stored.Available)
	require.NoError(t, s.RemoveBook(book.ID))
}

func TestSessionLifecycle(t *testing.T) {
	s := New()

	session := s.AddSession(models.Session{UserID: "usr-1"})
	require.NotEmpty(t, session.ID)

	_, found := s.FindSession(session.ID)
	assert.True(t, found)

	s.RemoveSession(session.ID)
	_, found = s.FindSession(session.ID)
	assert.False(t, found)
}

func TestSeedLoadsFixtureDataset(t *testing.T) {
	s := New()
	s.Seed()

	students, _ := s.Students()
	assert.Len(t, students, 6)

	classes, _ := s.Classes()
	assert.Len(t, classes, 3)

	teachers, _ := s.Teachers()
	assert.Len(t, teachers, 4)

	_, ok := s.FindUserByEmail("admin@escola.edu")
	assert.True(t, ok)

	settings, _ := s.Settings()
	assert.Equal(t, "Colégio Horizonte", settings.Name)
}
