package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolalink/escola-api/internal/models"
)

func TestClassBackendList(t *testing.T) {
	db, mock, cleanup := newBackendMock(t)
	defer cleanup()
	backend := NewPostgresClassBackend(db, nil)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "year", "teacher_id", "created_at", "updated_at"}).
		AddRow("cls-001", "10.º A", "2026", "tch-001", now, now)
	mock.ExpectQuery("SELECT id, name, year, teacher_id").WillReturnRows(rows)

	classes, err := backend.List(context.Background())
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "10.º A", classes[0].Name)
	assert.Equal(t, "tch-001", classes[0].TeacherID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassBackendInsert(t *testing.T) {
	db, mock, cleanup := newBackendMock(t)
	defer cleanup()
	backend := NewPostgresClassBackend(db, nil)

	mock.ExpectExec("INSERT INTO classes").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := backend.Insert(context.Background(), models.Class{ID: "cls-100", Name: "12.º C", Year: "2026", TeacherID: "tch-002"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassBackendReportsQueryTimings(t *testing.T) {
	db, mock, cleanup := newBackendMock(t)
	defer cleanup()
	observer := &recordingObserver{}
	backend := NewPostgresClassBackend(db, observer)

	mock.ExpectExec("INSERT INTO classes").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := backend.Insert(context.Background(), models.Class{ID: "cls-100", Name: "12.º C", Year: "2026", TeacherID: "tch-002"})
	require.NoError(t, err)
	assert.Equal(t, []string{"classes.insert"}, observer.queries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassBackendUpdate(t *testing.T) {
	db, mock, cleanup := newBackendMock(t)
	defer cleanup()
	backend := NewPostgresClassBackend(db, nil)

	mock.ExpectExec("UPDATE classes SET").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := backend.Update(context.Background(), models.Class{ID: "cls-001", Name: "10.º A", Year: "2026", TeacherID: "tch-001"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
