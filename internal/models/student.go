package models

import "time"

// EntityStatus marks whether a record is active in the school registry.
type EntityStatus string

const (
	StatusActive   EntityStatus = "Active"
	StatusInactive EntityStatus = "Inactive"
)

// Student represents a learner registered in the institution.
type Student struct {
	ID        string       `db:"id" json:"id"`
	Name      string       `db:"name" json:"name"`
	ClassID   string       `db:"class_id" json:"class_id"`
	Age       int          `db:"age" json:"age"`
	Guardian  string       `db:"guardian" json:"guardian"`
	Phone     string       `db:"phone" json:"phone"`
	Status    EntityStatus `db:"status" json:"status"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search   string
	ClassID  string
	Status   *EntityStatus
	Page     int
	PageSize int
}

// StudentDetail enriches a student with the resolved class name.
type StudentDetail struct {
	Student
	ClassName string `json:"class_name"`
}

// HealthRecord carries medical information kept by the secretariat.
type HealthRecord struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	BloodType string    `json:"blood_type"`
	Allergies string    `json:"allergies"`
	Notes     string    `json:"notes"`
	UpdatedAt time.Time `json:"updated_at"`
}
