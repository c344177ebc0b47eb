package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolalink/escola-api/internal/models"
)

func newBackendMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestStudentBackendList(t *testing.T) {
	db, mock, cleanup := newBackendMock(t)
	defer cleanup()
	backend := NewPostgresStudentBackend(db, nil)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "class_id", "age", "guardian", "phone", "status", "created_at", "updated_at"}).
		AddRow("stu-001", "Beatriz Almeida", "cls-001", 15, "Rui Almeida", "923-100-001", "Active", now, now).
		AddRow("stu-002", "Diogo Cunha", "cls-001", 16, "Sofia Cunha", "923-100-002", "Active", now, now)
	mock.ExpectQuery("SELECT id, name, class_id").WillReturnRows(rows)

	students, err := backend.List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Beatriz Almeida", students[0].Name)
	assert.Equal(t, models.StatusActive, students[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentBackendInsert(t *testing.T) {
	db, mock, cleanup := newBackendMock(t)
	defer cleanup()
	backend := NewPostgresStudentBackend(db, nil)

	mock.ExpectExec("INSERT INTO students").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := backend.Insert(context.Background(), models.Student{ID: "stu-100", Name: "Nova Aluna", ClassID: "cls-001", Age: 15, Status: models.StatusActive})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentBackendUpdate(t *testing.T) {
	db, mock, cleanup := newBackendMock(t)
	defer cleanup()
	backend := NewPostgresStudentBackend(db, nil)

	mock.ExpectExec("UPDATE students SET").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := backend.Update(context.Background(), models.Student{ID: "stu-001", Name: "Beatriz A.", ClassID: "cls-001", Age: 16, Status: models.StatusActive})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type recordingObserver struct {
	queries []string
}

func (o *recordingObserver) ObserveDBQuery(query string, duration time.Duration) {
	o.queries = append(o.queries, query)
}

func TestStudentBackendReportsQueryTimings(t *testing.T) {
	db, mock, cleanup := newBackendMock(t)
	defer cleanup()
	observer := &recordingObserver{}
	backend := NewPostgresStudentBackend(db, observer)

	rows := sqlmock.NewRows([]string{"id", "name", "class_id", "age", "guardian", "phone", "status", "created_at", "updated_at"})
	mock.ExpectQuery("SELECT id, name, class_id").WillReturnRows(rows)
	mock.ExpectQuery("SELECT id, name, class_id").WillReturnError(assert.AnError)

	_, err := backend.List(context.Background())
	require.NoError(t, err)
	_, err = backend.List(context.Background())
	require.Error(t, err)

	// Failed queries are timed too.
	assert.Equal(t, []string{"students.list", "students.list"}, observer.queries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentBackendListError(t *testing.T) {
	db, mock, cleanup := newBackendMock(t)
	defer cleanup()
	backend := NewPostgresStudentBackend(db, nil)

	mock.ExpectQuery("SELECT id, name, class_id").WillReturnError(assert.AnError)

	_, err := backend.List(context.Background())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
