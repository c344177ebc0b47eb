package models

import "time"

// Teacher represents a member of the teaching body.
type Teacher struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	Qualifications string       `json:"qualifications"`
	Status         EntityStatus `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Staff represents a non-teaching employee.
type Staff struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Role       string       `json:"role"`
	Department string       `json:"department"`
	Phone      string       `json:"phone"`
	Status     EntityStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// TeacherFilter narrows teacher listings.
type TeacherFilter struct {
	Search   string
	Status   *EntityStatus
	Page     int
	PageSize int
}

// LessonPlan is a teacher's planned lesson for a class and subject.
type LessonPlan struct {
	ID        string    `json:"id"`
	TeacherID string    `json:"teacher_id"`
	ClassID   string    `json:"class_id"`
	SubjectID string    `json:"subject_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
