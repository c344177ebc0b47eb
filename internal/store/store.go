// Package store holds every entity collection owned by the console and the
// typed command functions that mutate them. Collections are replaced
// wholesale on every write and carry a version counter, so readers can share
// slices without copying and derived views can memoize on version identity.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/escolalink/escola-api/internal/models"
)

// collection is an immutable-replace slice with a version counter. The items
// slice is never mutated in place once published, so handing it out under a
// read lock is safe.
type collection[T any] struct {
	items   []T
	version uint64
	id      func(T) string
	setID   func(*T, string)
}

func (c *collection[T]) list() ([]T, uint64) {
	return c.items, c.version
}

func (c *collection[T]) find(id string) (T, bool) {
	for i := range c.items {
		if c.id(c.items[i]) == id {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) contains(id string) bool {
	_, ok := c.find(id)
	return ok
}

// add appends the item, assigning a fresh ID when the provided one is empty
// or already taken. An existing ID is never reused.
func (c *collection[T]) add(item T) T {
	if id := c.id(item); id == "" || c.contains(id) {
		c.setID(&item, uuid.NewString())
	}
	next := make([]T, 0, len(c.items)+1)
	next = append(next, c.items...)
	next = append(next, item)
	c.items = next
	c.version++
	return item
}

// replace swaps the element whose ID matches. Missing IDs are a no-op: there
// is no insert-on-missing.
func (c *collection[T]) replace(item T) bool {
	id := c.id(item)
	for i := range c.items {
		if c.id(c.items[i]) == id {
			next := make([]T, len(c.items))
			copy(next, c.items)
			next[i] = item
			c.items = next
			c.version++
			return true
		}
	}
	return false
}

// remove filters out the element with the given ID.
func (c *collection[T]) remove(id string) bool {
	for i := range c.items {
		if c.id(c.items[i]) == id {
			next := make([]T, 0, len(c.items)-1)
			next = append(next, c.items[:i]...)
			next = append(next, c.items[i+1:]...)
			c.items = next
			c.version++
			return true
		}
	}
	return false
}

// reset replaces the whole collection, used by backend read-through refresh.
func (c *collection[T]) reset(items []T) {
	next := make([]T, len(items))
	copy(next, items)
	c.items = next
	c.version++
}

// Store is the single source of truth for all console entities. All writes
// funnel through its typed command methods; no collection is reachable for
// external mutation.
type Store struct {
	mu sync.RWMutex

	students      collection[models.Student]
	teachers      collection[models.Teacher]
	staff         collection[models.Staff]
	classes       collection[models.Class]
	subjects      collection[models.Subject]
	curriculum    collection[models.CurriculumEntry]
	gradebooks    collection[models.StudentGradebook]
	transactions  collection[models.Transaction]
	categories    collection[models.TransactionCategory]
	tuition       collection[models.TuitionRecord]
	scholarships  collection[models.Scholarship]
	grants        collection[models.ScholarshipGrant]
	announcements collection[models.Announcement]
	books         collection[models.Book]
	loans         collection[models.BookLoan]
	lessonPlans   collection[models.LessonPlan]
	healthRecords collection[models.HealthRecord]
	events        collection[models.CalendarEvent]
	users         collection[models.User]
	sessions      collection[models.Session]

	settings        models.SchoolSettings
	settingsVersion uint64

	now func() time.Time
}

// New constructs an empty store. Call Seed to load the fixture dataset.
func New() *Store {
	s := &Store{now: func() time.Time { return time.Now().UTC() }}

	s.students = collection[models.Student]{
		id:    func(v models.Student) string { return v.ID },
		setID: func(v *models.Student, id string) { v.ID = id },
	}
	s.teachers = collection[models.Teacher]{
		id:    func(v models.Teacher) string { return v.ID },
		setID: func(v *models.Teacher, id string) { v.ID = id },
	}
	s.staff = collection[models.Staff]{
		id:    func(v models.Staff) string { return v.ID },
		setID: func(v *models.Staff, id string) { v.ID = id },
	}
	s.classes = collection[models.Class]{
		id:    func(v models.Class) string { return v.ID },
		setID: func(v *models.Class, id string) { v.ID = id },
	}
	s.subjects = collection[models.Subject]{
		id:    func(v models.Subject) string { return v.ID },
		setID: func(v *models.Subject, id string) { v.ID = id },
	}
	s.curriculum = collection[models.CurriculumEntry]{
		id:    func(v models.CurriculumEntry) string { return v.ID },
		setID: func(v *models.CurriculumEntry, id string) { v.ID = id },
	}
	s.gradebooks = collection[models.StudentGradebook]{
		id:    func(v models.StudentGradebook) string { return v.ID },
		setID: func(v *models.StudentGradebook, id string) { v.ID = id },
	}
	s.transactions = collection[models.Transaction]{
		id:    func(v models.Transaction) string { return v.ID },
		setID: func(v *models.Transaction, id string) { v.ID = id },
	}
	s.categories = collection[models.TransactionCategory]{
		id:    func(v models.TransactionCategory) string { return v.ID },
		setID: func(v *models.TransactionCategory, id string) { v.ID = id },
	}
	s.tuition = collection[models.TuitionRecord]{
		id:    func(v models.TuitionRecord) string { return v.ID },
		setID: func(v *models.TuitionRecord, id string) { v.ID = id },
	}
	s.scholarships = collection[models.Scholarship]{
		id:    func(v models.Scholarship) string { return v.ID },
		setID: func(v *models.Scholarship, id string) { v.ID = id },
	}
	s.grants = collection[models.ScholarshipGrant]{
		id:    func(v models.ScholarshipGrant) string { return v.ID },
		setID: func(v *models.ScholarshipGrant, id string) { v.ID = id },
	}
	s.announcements = collection[models.Announcement]{
		id:    func(v models.Announcement) string { return v.ID },
		setID: func(v *models.Announcement, id string) { v.ID = id },
	}
	s.books = collection[models.Book]{
		id:    func(v models.Book) string { return v.ID },
		setID: func(v *models.Book, id string) { v.ID = id },
	}
	s.loans = collection[models.BookLoan]{
		id:    func(v models.BookLoan) string { return v.ID },
		setID: func(v *models.BookLoan, id string) { v.ID = id },
	}
	s.lessonPlans = collection[models.LessonPlan]{
		id:    func(v models.LessonPlan) string { return v.ID },
		setID: func(v *models.LessonPlan, id string) { v.ID = id },
	}
	s.healthRecords = collection[models.HealthRecord]{
		id:    func(v models.HealthRecord) string { return v.ID },
		setID: func(v *models.HealthRecord, id string) { v.ID = id },
	}
	s.events = collection[models.CalendarEvent]{
		id:    func(v models.CalendarEvent) string { return v.ID },
		setID: func(v *models.CalendarEvent, id string) { v.ID = id },
	}
	s.users = collection[models.User]{
		id:    func(v models.User) string { return v.ID },
		setID: func(v *models.User, id string) { v.ID = id },
	}
	s.sessions = collection[models.Session]{
		id:    func(v models.Session) string { return v.ID },
		setID: func(v *models.Session, id string) { v.ID = id },
	}

	return s
}

// Settings returns the singleton school profile and its version.
func (s *Store) Settings() (models.SchoolSettings, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, s.settingsVersion
}

// UpdateSettings replaces the school profile.
func (s *Store) UpdateSettings(settings models.SchoolSettings) models.SchoolSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings.UpdatedAt = s.now()
	s.settings = settings
	s.settingsVersion++
	return settings
}
