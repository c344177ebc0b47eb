package models

import "time"

// Class represents an academic class or section. TeacherID points at the
// class director; teacher name and student count are derived on read and
// never stored.
type Class struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Year      string    `db:"year" json:"year"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ClassDetail extends Class with the derived teacher name and live
// student count.
type ClassDetail struct {
	Class
	TeacherName  string `db:"teacher_name" json:"teacher_name"`
	StudentCount int    `json:"student_count"`
}

// CurriculumEntry binds a subject and its instructor to a class. At most one
// entry may exist per (ClassID, SubjectID).
type CurriculumEntry struct {
	ID        string    `json:"id"`
	ClassID   string    `json:"class_id"`
	SubjectID string    `json:"subject_id"`
	TeacherID string    `json:"teacher_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CurriculumRow is a curriculum entry resolved to display names.
type CurriculumRow struct {
	CurriculumEntry
	SubjectName string `json:"subject_name"`
	TeacherName string `json:"teacher_name"`
}

// Subject represents a taught discipline.
type Subject struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Workload  int       `json:"workload"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
