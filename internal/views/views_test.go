package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/store"
)

func seededViews(t *testing.T) (*store.Store, *Views) {
	t.Helper()
	st := store.New()
	st.AddTeacher(models.Teacher{ID: "tch-1", Name: "Ana Ferreira"})
	st.AddClass(models.Class{ID: "cls-1", Name: "7A", TeacherID: "tch-1"})
	st.AddClass(models.Class{ID: "cls-2", Name: "7B", TeacherID: "tch-ghost"})
	st.AddStudent(models.Student{ID: "stu-1", Name: "Marta Dias", ClassID: "cls-1"})
	st.AddStudent(models.Student{ID: "stu-2", Name: "Rui Campos", ClassID: "cls-1"})
	st.AddStudent(models.Student{ID: "stu-3", Name: "Inês Costa", ClassID: "cls-2"})
	return st, New(st)
}

func TestClassesWithDetails(t *testing.T) {
	_, v := seededViews(t)

	details := v.ClassesWithDetails()
	require.Len(t, details, 2)

	assert.Equal(t, "Ana Ferreira", details[0].TeacherName)
	assert.Equal(t, 2, details[0].StudentCount)

	// A dangling teacher reference resolves to the placeholder.
	assert.Equal(t, PlaceholderName, details[1].TeacherName)
	assert.Equal(t, 1, details[1].StudentCount)
}

func TestClassesWithDetailsMemoized(t *testing.T) {
	st, v := seededViews(t)

	first := v.ClassesWithDetails()
	second := v.ClassesWithDetails()
	assert.Same(t, &first[0], &second[0], "unchanged inputs must return the memoized slice")

	st.AddStudent(models.Student{ID: "stu-4", Name: "Tiago Nunes", ClassID: "cls-1"})
	third := v.ClassesWithDetails()
	assert.Equal(t, 3, third[0].StudentCount)
}

func TestCurriculumForClass(t *testing.T) {
	st, v := seededViews(t)
	st.AddSubject(models.Subject{ID: "sbj-1", Name: "Matemática"})
	_, err := st.AddCurriculumEntry(models.CurriculumEntry{ClassID: "cls-1", SubjectID: "sbj-1", TeacherID: "tch-1"})
	require.NoError(t, err)
	_, err = st.AddCurriculumEntry(models.CurriculumEntry{ClassID: "cls-1", SubjectID: "sbj-ghost", TeacherID: "tch-ghost"})
	require.NoError(t, err)

	rows := v.CurriculumForClass("cls-1")
	require.Len(t, rows, 2)
	assert.Equal(t, "Matemática", rows[0].SubjectName)
	assert.Equal(t, "Ana Ferreira", rows[0].TeacherName)
	assert.Equal(t, PlaceholderName, rows[1].SubjectName)
	assert.Equal(t, PlaceholderName, rows[1].TeacherName)

	assert.Empty(t, v.CurriculumForClass("cls-2"))
}

func TestUpcomingEventsOrderAndCutoff(t *testing.T) {
	st, v := seededViews(t)
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return base }

	st.AddEvent(models.CalendarEvent{ID: "evt-past", Title: "Past", Date: base.AddDate(0, 0, -1), Type: models.EventGeneral})
	st.AddEvent(models.CalendarEvent{ID: "evt-later", Title: "Later", Date: base.AddDate(0, 0, 14), Type: models.EventGeneral})
	st.AddEvent(models.CalendarEvent{ID: "evt-today", Title: "Today", Date: base, Type: models.EventHoliday})
	st.AddEvent(models.CalendarEvent{ID: "evt-soon", Title: "Soon", Date: base.AddDate(0, 0, 3), Type: models.EventDeadline})

	events := v.UpcomingEvents(0)
	require.Len(t, events, 3)
	assert.Equal(t, "Today", events[0].Title)
	assert.Equal(t, "Soon", events[1].Title)
	assert.Equal(t, "Later", events[2].Title)

	limited := v.UpcomingEvents(2)
	assert.Len(t, limited, 2)
}

func TestUpcomingEventsForStudentFiltersForeignExams(t *testing.T) {
	st, v := seededViews(t)
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return base }

	own := "cls-1"
	other := "cls-2"
	st.AddEvent(models.CalendarEvent{ID: "evt-1", Title: "Own exam", Date: base.AddDate(0, 0, 2), Type: models.EventExam, ClassID: &own})
	st.AddEvent(models.CalendarEvent{ID: "evt-2", Title: "Other exam", Date: base.AddDate(0, 0, 2), Type: models.EventExam, ClassID: &other})
	st.AddEvent(models.CalendarEvent{ID: "evt-3", Title: "School fair", Date: base.AddDate(0, 0, 4), Type: models.EventGeneral})

	events := v.UpcomingEventsForStudent("stu-1", 0)
	require.Len(t, events, 2)
	assert.Equal(t, "Own exam", events[0].Title)
	assert.Equal(t, "School fair", events[1].Title)

	assert.Nil(t, v.UpcomingEventsForStudent("ghost", 0))
}
