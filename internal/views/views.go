// Package views computes read-only projections over the entity store.
// Selectors memoize their results keyed on the version counters of the
// collections they read, so unchanged inputs never trigger recomputation.
package views

import (
	"sort"
	"sync"
	"time"

	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/store"
)

// PlaceholderName is rendered when a foreign key cannot be resolved.
const PlaceholderName = "N/A"

type classDetailsMemo struct {
	classVersion   uint64
	teacherVersion uint64
	studentVersion uint64
	value          []models.ClassDetail
	valid          bool
}

type curriculumMemo struct {
	curriculumVersion uint64
	subjectVersion    uint64
	teacherVersion    uint64
	value             []models.CurriculumRow
}

// Views is the derived view builder. Safe for concurrent use.
type Views struct {
	store *store.Store
	now   func() time.Time

	mu           sync.Mutex
	classDetails classDetailsMemo
	curriculum   map[string]curriculumMemo
}

// New constructs a view builder over the given store.
func New(s *store.Store) *Views {
	return &Views{
		store:      s,
		now:        func() time.Time { return time.Now().UTC() },
		curriculum: make(map[string]curriculumMemo),
	}
}

// ClassesWithDetails returns every class enriched with the teacher name and
// the live student count. A missing teacher resolves to the placeholder; the
// stored class fields are never mutated.
func (v *Views) ClassesWithDetails() []models.ClassDetail {
	classes, classVer := v.store.Classes()
	teachers, teacherVer := v.store.Teachers()
	students, studentVer := v.store.Students()

	v.mu.Lock()
	defer v.mu.Unlock()
	m := v.classDetails
	if m.valid && m.classVersion == classVer && m.teacherVersion == teacherVer && m.studentVersion == studentVer {
		return m.value
	}

	teacherNames := make(map[string]string, len(teachers))
	for _, t := range teachers {
		teacherNames[t.ID] = t.Name
	}
	counts := make(map[string]int, len(classes))
	for _, st := range students {
		counts[st.ClassID]++
	}

	details := make([]models.ClassDetail, 0, len(classes))
	for _, c := range classes {
		name, ok := teacherNames[c.TeacherID]
		if !ok {
			name = PlaceholderName
		}
		details = append(details, models.ClassDetail{
			Class:        c,
			TeacherName:  name,
			StudentCount: counts[c.ID],
		})
	}

	v.classDetails = classDetailsMemo{
		classVersion:   classVer,
		teacherVersion: teacherVer,
		studentVersion: studentVer,
		value:          details,
		valid:          true,
	}
	return details
}

// CurriculumForClass returns the class curriculum resolved to subject and
// teacher names. Dangling references resolve to the placeholder instead of
// failing.
func (v *Views) CurriculumForClass(classID string) []models.CurriculumRow {
	entries, curVer := v.store.Curriculum()
	subjects, subjVer := v.store.Subjects()
	teachers, teacherVer := v.store.Teachers()

	v.mu.Lock()
	defer v.mu.Unlock()
	if m, ok := v.curriculum[classID]; ok &&
		m.curriculumVersion == curVer && m.subjectVersion == subjVer && m.teacherVersion == teacherVer {
		return m.value
	}

	subjectNames := make(map[string]string, len(subjects))
	for _, s := range subjects {
		subjectNames[s.ID] = s.Name
	}
	teacherNames := make(map[string]string, len(teachers))
	for _, t := range teachers {
		teacherNames[t.ID] = t.Name
	}

	rows := make([]models.CurriculumRow, 0)
	for _, entry := range entries {
		if entry.ClassID != classID {
			continue
		}
		subjectName, ok := subjectNames[entry.SubjectID]
		if !ok {
			subjectName = PlaceholderName
		}
		teacherName, ok := teacherNames[entry.TeacherID]
		if !ok {
			teacherName = PlaceholderName
		}
		rows = append(rows, models.CurriculumRow{
			CurriculumEntry: entry,
			SubjectName:     subjectName,
			TeacherName:     teacherName,
		})
	}

	v.curriculum[classID] = curriculumMemo{
		curriculumVersion: curVer,
		subjectVersion:    subjVer,
		teacherVersion:    teacherVer,
		value:             rows,
	}
	return rows
}

// UpcomingEventsForStudent returns calendar events dated today or later,
// excluding exams of other classes, sorted ascending by date and truncated
// to limit. Not memoized: the result depends on the current day, not only on
// collection versions.
func (v *Views) UpcomingEventsForStudent(studentID string, limit int) []models.CalendarEvent {
	student, ok := v.store.FindStudent(studentID)
	if !ok {
		return nil
	}
	return v.upcoming(limit, func(e models.CalendarEvent) bool {
		if e.Type != models.EventExam {
			return true
		}
		return e.ClassID != nil && *e.ClassID == student.ClassID
	})
}

// UpcomingEvents returns the next events for school-wide views.
func (v *Views) UpcomingEvents(limit int) []models.CalendarEvent {
	return v.upcoming(limit, func(models.CalendarEvent) bool { return true })
}

func (v *Views) upcoming(limit int, keep func(models.CalendarEvent) bool) []models.CalendarEvent {
	events, _ := v.store.Events()
	today := v.now().Truncate(24 * time.Hour)

	upcoming := make([]models.CalendarEvent, 0, len(events))
	for _, e := range events {
		if e.Date.Before(today) {
			continue
		}
		if !keep(e) {
			continue
		}
		upcoming = append(upcoming, e)
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date)
	})
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}
