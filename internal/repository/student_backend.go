package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/escolalink/escola-api/internal/models"
)

// StudentBackend is the persistence contract for the students table. Only
// two tables live in the relational backend; everything else is store-only.
type StudentBackend interface {
	List(ctx context.Context) ([]models.Student, error)
	Insert(ctx context.Context, student models.Student) error
	Update(ctx context.Context, student models.Student) error
}

// PostgresStudentBackend implements StudentBackend over sqlx.
type PostgresStudentBackend struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewPostgresStudentBackend constructs the backend.
func NewPostgresStudentBackend(db *sqlx.DB, observer QueryObserver) *PostgresStudentBackend {
	return &PostgresStudentBackend{db: db, observer: observer}
}

// List returns all students ordered by name.
func (r *PostgresStudentBackend) List(ctx context.Context) ([]models.Student, error) {
	defer observeQuery(r.observer, "students.list", time.Now())
	const query = `SELECT id, name, class_id, age, guardian, phone, status, created_at, updated_at
        FROM students ORDER BY name`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// Insert writes a new student row.
func (r *PostgresStudentBackend) Insert(ctx context.Context, student models.Student) error {
	defer observeQuery(r.observer, "students.insert", time.Now())
	const query = `INSERT INTO students (id, name, class_id, age, guardian, phone, status, created_at, updated_at)
        VALUES (:id, :name, :class_id, :age, :guardian, :phone, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// Update replaces a student row by ID.
func (r *PostgresStudentBackend) Update(ctx context.Context, student models.Student) error {
	defer observeQuery(r.observer, "students.update", time.Now())
	const query = `UPDATE students SET name = :name, class_id = :class_id, age = :age, guardian = :guardian,
        phone = :phone, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}
