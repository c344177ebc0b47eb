package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolalink/escola-api/internal/dto"
	"github.com/escolalink/escola-api/internal/middleware"
	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/service"
	"github.com/escolalink/escola-api/internal/store"
	"github.com/escolalink/escola-api/internal/views"
	"github.com/escolalink/escola-api/pkg/config"
)

func newDashboardHandler(t *testing.T) *DashboardHandler {
	t.Helper()
	st := store.New()
	st.Seed()
	vw := views.New(st)
	finance := service.NewFinanceService(st, nil, nil)
	grades := service.NewGradeService(st, nil, nil)
	cache := service.NewCacheService(nil, nil, 0, nil, false)
	dashboard := service.NewDashboardService(st, vw, finance, grades, cache, nil, config.DashboardConfig{})
	return NewDashboardHandler(dashboard)
}

func TestDashboardHandlerUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newDashboardHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	handler.Get(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardHandlerAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newDashboardHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "usr-001", Role: models.RoleAdmin})

	handler.Get(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, dto.KindAdmin, envelope.Data["kind"])
	admin, ok := envelope.Data["admin"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(6), admin["total_students"])
}

func TestDashboardHandlerGhostAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newDashboardHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "usr-ghost", Role: models.RoleAdmin})

	handler.Get(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
