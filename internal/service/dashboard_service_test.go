package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolalink/escola-api/internal/dto"
	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/store"
	"github.com/escolalink/escola-api/internal/views"
	"github.com/escolalink/escola-api/pkg/config"
)

func dashboardFixture(t *testing.T) (*store.Store, *DashboardService) {
	t.Helper()
	st := store.New()
	st.Seed()
	vw := views.New(st)
	finance := NewFinanceService(st, nil, nil)
	grades := NewGradeService(st, nil, nil)
	cache := NewCacheService(nil, nil, 0, nil, false)
	svc := NewDashboardService(st, vw, finance, grades, cache, nil, config.DashboardConfig{UpcomingEventsLimit: 5})
	return st, svc
}

func claimsFor(t *testing.T, st *store.Store, email string) *models.JWTClaims {
	t.Helper()
	user, ok := st.FindUserByEmail(email)
	require.True(t, ok, "fixture user %s must exist", email)
	return &models.JWTClaims{UserID: user.ID, Email: user.Email, Role: user.Role}
}

func TestDashboardAdmin(t *testing.T) {
	st, svc := dashboardFixture(t)

	dash, err := svc.ForUser(context.Background(), claimsFor(t, st, "admin@escola.edu"))
	require.NoError(t, err)
	assert.Equal(t, dto.KindAdmin, dash.Kind)
	require.NotNil(t, dash.Admin)
	assert.Equal(t, 6, dash.Admin.TotalStudents)
	assert.Equal(t, 4, dash.Admin.TotalTeachers)
	assert.Equal(t, 3, dash.Admin.TotalClasses)
}

func TestDashboardSecretariat(t *testing.T) {
	st, svc := dashboardFixture(t)

	dash, err := svc.ForUser(context.Background(), claimsFor(t, st, "secretaria@escola.edu"))
	require.NoError(t, err)
	assert.Equal(t, dto.KindSecretariat, dash.Kind)
	require.NotNil(t, dash.Secretariat)
	assert.Equal(t, 1, dash.Secretariat.OverdueTuition)
	assert.Equal(t, 1, dash.Secretariat.OpenLoans)
}

func TestDashboardTeacherScopedToOwnClasses(t *testing.T) {
	st, svc := dashboardFixture(t)

	dash, err := svc.ForUser(context.Background(), claimsFor(t, st, "ana.ferreira@escola.edu"))
	require.NoError(t, err)
	assert.Equal(t, dto.KindTeacher, dash.Kind)
	require.NotNil(t, dash.Teacher)
	assert.True(t, dash.Teacher.Found)
	require.NotNil(t, dash.Teacher.Teacher)
	for _, row := range dash.Teacher.Curriculum {
		assert.Equal(t, dash.Teacher.Teacher.ID, row.TeacherID)
	}
}

func TestDashboardTeacherWithoutRosterEntry(t *testing.T) {
	st, svc := dashboardFixture(t)
	account := st.AddUser(models.User{
		Email:    "novo.professor@escola.edu",
		FullName: "Novo Professor",
		Role:     models.RoleTeacher,
		Active:   true,
	})

	dash, err := svc.ForUser(context.Background(), &models.JWTClaims{UserID: account.ID, Email: account.Email, Role: account.Role})
	require.NoError(t, err, "a missing roster entry is a placeholder, not an error")
	require.NotNil(t, dash.Teacher)
	assert.False(t, dash.Teacher.Found)
	assert.Equal(t, "teacher data not found", dash.Teacher.Message)
	assert.Nil(t, dash.Teacher.Teacher)
}

func TestDashboardGuardianSeesStudent(t *testing.T) {
	st, svc := dashboardFixture(t)

	dash, err := svc.ForUser(context.Background(), claimsFor(t, st, "rui.almeida@mail.com"))
	require.NoError(t, err)
	assert.Equal(t, dto.KindStudent, dash.Kind)
	require.NotNil(t, dash.Student)
	assert.True(t, dash.Student.Found)
	require.NotNil(t, dash.Student.Student)
	assert.Equal(t, "Rui Almeida", dash.Student.Student.Guardian)
}

func TestDashboardUnknownRoleFallsBackToWelcome(t *testing.T) {
	st, svc := dashboardFixture(t)
	account := st.AddUser(models.User{
		Email:    "visitante@escola.edu",
		FullName: "Visitante",
		Role:     models.UserRole("AUDITOR"),
		Active:   true,
	})

	dash, err := svc.ForUser(context.Background(), &models.JWTClaims{UserID: account.ID, Email: account.Email, Role: account.Role})
	require.NoError(t, err)
	assert.Equal(t, dto.KindWelcome, dash.Kind)
	require.NotNil(t, dash.Welcome)
	assert.Equal(t, "Colégio Horizonte", dash.Welcome.SchoolName)
}

func TestDashboardUnknownAccount(t *testing.T) {
	_, svc := dashboardFixture(t)

	_, err := svc.ForUser(context.Background(), &models.JWTClaims{UserID: "ghost"})
	require.Error(t, err)
}
