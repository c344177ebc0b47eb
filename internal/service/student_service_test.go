package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/store"
	"github.com/escolalink/escola-api/internal/views"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New()
	st.Seed()
	return st
}

func TestStudentListFixtureMode(t *testing.T) {
	st := seededStore(t)
	svc := NewStudentService(st, nil, nil, nil)

	students, pagination, err := svc.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	require.Len(t, students, 6)
	assert.Equal(t, 6, pagination.TotalCount)
	assert.Equal(t, 1, pagination.Page)

	// Seeding is deterministic, so the unfiltered listing is exactly the
	// fixture set in insertion order.
	ids := make([]string, len(students))
	for i, s := range students {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{"stu-001", "stu-002", "stu-003", "stu-004", "stu-005", "stu-006"}, ids)
	assert.Equal(t, "Beatriz Almeida", students[0].Name)
}

func TestStudentListFilterByClass(t *testing.T) {
	st := seededStore(t)
	svc := NewStudentService(st, nil, nil, nil)

	students, _, err := svc.List(context.Background(), models.StudentFilter{ClassID: "cls-001"})
	require.NoError(t, err)
	require.NotEmpty(t, students)
	for _, s := range students {
		assert.Equal(t, "cls-001", s.ClassID)
	}
}

func TestStudentListPagination(t *testing.T) {
	st := seededStore(t)
	svc := NewStudentService(st, nil, nil, nil)

	first, pg, err := svc.List(context.Background(), models.StudentFilter{Page: 1, PageSize: 4})
	require.NoError(t, err)
	assert.Len(t, first, 4)
	assert.Equal(t, 6, pg.TotalCount)

	second, _, err := svc.List(context.Background(), models.StudentFilter{Page: 2, PageSize: 4})
	require.NoError(t, err)
	assert.Len(t, second, 2)

	empty, _, err := svc.List(context.Background(), models.StudentFilter{Page: 9, PageSize: 4})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStudentGetResolvesClassName(t *testing.T) {
	st := seededStore(t)
	svc := NewStudentService(st, nil, nil, nil)

	detail, err := svc.Get(context.Background(), "stu-001")
	require.NoError(t, err)
	assert.NotEqual(t, views.PlaceholderName, detail.ClassName)

	_, err = svc.Get(context.Background(), "ghost")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestStudentGetDanglingClassUsesPlaceholder(t *testing.T) {
	st := store.New()
	st.AddStudent(models.Student{ID: "stu-1", Name: "Marta Dias", ClassID: "cls-ghost"})
	svc := NewStudentService(st, nil, nil, nil)

	detail, err := svc.Get(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, views.PlaceholderName, detail.ClassName)
}

func TestStudentCreateValidatesClass(t *testing.T) {
	st := seededStore(t)
	svc := NewStudentService(st, nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateStudentRequest{Name: "Novo Aluno", ClassID: "cls-ghost"})
	require.Error(t, err)

	student, err := svc.Create(context.Background(), CreateStudentRequest{Name: "Novo Aluno", ClassID: "cls-001", Age: 13})
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	assert.Equal(t, models.StatusActive, student.Status)
}

func TestStudentCreateRejectsEmptyName(t *testing.T) {
	st := seededStore(t)
	svc := NewStudentService(st, nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateStudentRequest{ClassID: "cls-001"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestStudentDeactivate(t *testing.T) {
	st := seededStore(t)
	svc := NewStudentService(st, nil, nil, nil)

	require.NoError(t, svc.Deactivate(context.Background(), "stu-001"))

	student, ok := st.FindStudent("stu-001")
	require.True(t, ok)
	assert.Equal(t, models.StatusInactive, student.Status)

	// The record stays listed; deactivation is not deletion.
	students, _ := st.Students()
	assert.Len(t, students, 6)
}
