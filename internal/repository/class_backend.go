package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/escolalink/escola-api/internal/models"
)

// ClassBackend is the persistence contract for the classes table.
type ClassBackend interface {
	List(ctx context.Context) ([]models.Class, error)
	Insert(ctx context.Context, class models.Class) error
	Update(ctx context.Context, class models.Class) error
}

// PostgresClassBackend implements ClassBackend over sqlx.
type PostgresClassBackend struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewPostgresClassBackend constructs the backend.
func NewPostgresClassBackend(db *sqlx.DB, observer QueryObserver) *PostgresClassBackend {
	return &PostgresClassBackend{db: db, observer: observer}
}

// List returns all classes ordered by name.
func (r *PostgresClassBackend) List(ctx context.Context) ([]models.Class, error) {
	defer observeQuery(r.observer, "classes.list", time.Now())
	const query = `SELECT id, name, year, teacher_id, created_at, updated_at FROM classes ORDER BY name`
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// Insert writes a new class row.
func (r *PostgresClassBackend) Insert(ctx context.Context, class models.Class) error {
	defer observeQuery(r.observer, "classes.insert", time.Now())
	const query = `INSERT INTO classes (id, name, year, teacher_id, created_at, updated_at)
        VALUES (:id, :name, :year, :teacher_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("insert class: %w", err)
	}
	return nil
}

// Update replaces a class row by ID.
func (r *PostgresClassBackend) Update(ctx context.Context, class models.Class) error {
	defer observeQuery(r.observer, "classes.update", time.Now())
	const query = `UPDATE classes SET name = :name, year = :year, teacher_id = :teacher_id,
        updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	return nil
}
