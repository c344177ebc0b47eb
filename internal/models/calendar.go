package models

import "time"

// EventType classifies calendar entries.
type EventType string

const (
	EventHoliday  EventType = "Holiday"
	EventGeneral  EventType = "Event"
	EventExam     EventType = "Exam"
	EventDeadline EventType = "Deadline"
)

// CalendarEvent represents an academic calendar entry. ClassID and SubjectID
// are only meaningful for exams.
type CalendarEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Type      EventType `json:"type"`
	ClassID   *string   `json:"class_id,omitempty"`
	SubjectID *string   `json:"subject_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Announcement is a school-wide or audience-scoped notice.
type Announcement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Audience    string    `json:"audience"`
	PublishedAt time.Time `json:"published_at"`
}
