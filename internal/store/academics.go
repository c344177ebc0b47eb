package store

import (
	"github.com/escolalink/escola-api/internal/models"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

// Classes returns the class collection and its version.
func (s *Store) Classes() ([]models.Class, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classes.list()
}

// FindClass looks up a class by ID.
func (s *Store) FindClass(id string) (models.Class, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classes.find(id)
}

// AddClass appends a class.
func (s *Store) AddClass(class models.Class) models.Class {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	class.CreatedAt = now
	class.UpdatedAt = now
	return s.classes.add(class)
}

// UpdateClass replaces a class by ID.
func (s *Store) UpdateClass(class models.Class) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	class.UpdatedAt = s.now()
	return s.classes.replace(class)
}

// RemoveClass deletes a class unless students are enrolled in it or
// curriculum entries still reference it. On rejection the store is unchanged.
func (s *Store) RemoveClass(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.students.items {
		if st.ClassID == id {
			return appErrors.Clone(appErrors.ErrInUse, "class has enrolled students")
		}
	}
	for _, entry := range s.curriculum.items {
		if entry.ClassID == id {
			return appErrors.Clone(appErrors.ErrInUse, "class has curriculum entries")
		}
	}
	if !s.classes.remove(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	return nil
}

// ResetClasses replaces the whole collection with backend rows.
func (s *Store) ResetClasses(classes []models.Class) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes.reset(classes)
}

// Subjects returns the subject collection and its version.
func (s *Store) Subjects() ([]models.Subject, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subjects.list()
}

// FindSubject looks up a subject by ID.
func (s *Store) FindSubject(id string) (models.Subject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subjects.find(id)
}

// AddSubject appends a subject.
func (s *Store) AddSubject(subject models.Subject) models.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	subject.CreatedAt = now
	subject.UpdatedAt = now
	return s.subjects.add(subject)
}

// UpdateSubject replaces a subject by ID.
func (s *Store) UpdateSubject(subject models.Subject) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	subject.UpdatedAt = s.now()
	return s.subjects.replace(subject)
}

// RemoveSubject deletes a subject unless a curriculum entry references it.
// On rejection the store is unchanged.
func (s *Store) RemoveSubject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.curriculum.items {
		if entry.SubjectID == id {
			return appErrors.Clone(appErrors.ErrInUse, "subject is used in a curriculum")
		}
	}
	if !s.subjects.remove(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	return nil
}

// Curriculum returns the curriculum collection and its version.
func (s *Store) Curriculum() ([]models.CurriculumEntry, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.curriculum.list()
}

// AddCurriculumEntry binds a subject and teacher to a class. At most one
// entry may exist per (class, subject) pair.
func (s *Store) AddCurriculumEntry(entry models.CurriculumEntry) (models.CurriculumEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.curriculum.items {
		if existing.ClassID == entry.ClassID && existing.SubjectID == entry.SubjectID {
			return models.CurriculumEntry{}, appErrors.Clone(appErrors.ErrConflict, "subject is already in the class curriculum")
		}
	}
	entry.CreatedAt = s.now()
	return s.curriculum.add(entry), nil
}

// UpdateCurriculumEntry replaces an entry by ID, keeping the (class, subject)
// uniqueness invariant.
func (s *Store) UpdateCurriculumEntry(entry models.CurriculumEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.curriculum.items {
		if existing.ID != entry.ID && existing.ClassID == entry.ClassID && existing.SubjectID == entry.SubjectID {
			return appErrors.Clone(appErrors.ErrConflict, "subject is already in the class curriculum")
		}
	}
	if !s.curriculum.replace(entry) {
		return appErrors.Clone(appErrors.ErrNotFound, "curriculum entry not found")
	}
	return nil
}

// RemoveCurriculumEntry filters out an entry.
func (s *Store) RemoveCurriculumEntry(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.curriculum.remove(id)
}

// Gradebooks returns the gradebook collection and its version.
func (s *Store) Gradebooks() ([]models.StudentGradebook, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gradebooks.list()
}

// GradebookFor returns the gradebook of a student, zero-valued when none
// exists yet.
func (s *Store) GradebookFor(studentID string) (models.StudentGradebook, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.gradebooks.items {
		if g.StudentID == studentID {
			return g, true
		}
	}
	return models.StudentGradebook{}, false
}

// UpsertGradeRecord writes one subject's grade record into a student's
// gradebook, creating the gradebook when absent. The grades map is copied,
// never mutated in place.
func (s *Store) UpsertGradeRecord(studentID, subjectID string, record models.GradeRecord) models.StudentGradebook {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.gradebooks.items {
		if g.StudentID == studentID {
			grades := make(map[string]models.GradeRecord, len(g.Grades)+1)
			for k, v := range g.Grades {
				grades[k] = v
			}
			grades[subjectID] = record
			g.Grades = grades
			g.UpdatedAt = s.now()
			s.gradebooks.replace(g)
			return g
		}
	}
	book := models.StudentGradebook{
		StudentID: studentID,
		Grades:    map[string]models.GradeRecord{subjectID: record},
		UpdatedAt: s.now(),
	}
	return s.gradebooks.add(book)
}

// LessonPlans returns the lesson plan collection and its version.
func (s *Store) LessonPlans() ([]models.LessonPlan, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lessonPlans.list()
}

// AddLessonPlan appends a lesson plan.
func (s *Store) AddLessonPlan(plan models.LessonPlan) models.LessonPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan.CreatedAt = s.now()
	return s.lessonPlans.add(plan)
}

// UpdateLessonPlan replaces a lesson plan by ID.
func (s *Store) UpdateLessonPlan(plan models.LessonPlan) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lessonPlans.replace(plan)
}

// RemoveLessonPlan filters out a lesson plan.
func (s *Store) RemoveLessonPlan(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lessonPlans.remove(id)
}

// HealthRecords returns the health record collection and its version.
func (s *Store) HealthRecords() ([]models.HealthRecord, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.healthRecords.list()
}

// AddHealthRecord appends a health record.
func (s *Store) AddHealthRecord(record models.HealthRecord) models.HealthRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.UpdatedAt = s.now()
	return s.healthRecords.add(record)
}

// UpdateHealthRecord replaces a health record by ID.
func (s *Store) UpdateHealthRecord(record models.HealthRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.UpdatedAt = s.now()
	return s.healthRecords.replace(record)
}

// RemoveHealthRecord filters out a health record.
func (s *Store) RemoveHealthRecord(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.healthRecords.remove(id)
}

// Events returns the calendar collection and its version.
func (s *Store) Events() ([]models.CalendarEvent, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events.list()
}

// FindEvent looks up a calendar event by ID.
func (s *Store) FindEvent(id string) (models.CalendarEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events.find(id)
}

// AddEvent appends a calendar event.
func (s *Store) AddEvent(event models.CalendarEvent) models.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.CreatedAt = s.now()
	return s.events.add(event)
}

// UpdateEvent replaces a calendar event by ID.
func (s *Store) UpdateEvent(event models.CalendarEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.replace(event)
}

// RemoveEvent filters out a calendar event.
func (s *Store) RemoveEvent(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.remove(id)
}

// Announcements returns the announcement collection and its version.
func (s *Store) Announcements() ([]models.Announcement, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.announcements.list()
}

// AddAnnouncement appends an announcement.
func (s *Store) AddAnnouncement(a models.Announcement) models.Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.PublishedAt.IsZero() {
		a.PublishedAt = s.now()
	}
	return s.announcements.add(a)
}

// UpdateAnnouncement replaces an announcement by ID.
func (s *Store) UpdateAnnouncement(a models.Announcement) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.announcements.replace(a)
}

// RemoveAnnouncement filters out an announcement.
func (s *Store) RemoveAnnouncement(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.announcements.remove(id)
}
