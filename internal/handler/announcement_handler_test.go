package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolalink/escola-api/internal/middleware"
	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/service"
	"github.com/escolalink/escola-api/internal/store"
)

func newAnnouncementHandler(t *testing.T) *AnnouncementHandler {
	t.Helper()
	st := store.New()
	st.Seed()
	return NewAnnouncementHandler(service.NewAnnouncementService(st, nil, nil))
}

func decodeAnnouncements(t *testing.T, rec *httptest.ResponseRecorder) []models.Announcement {
	t.Helper()
	var envelope struct {
		Data []models.Announcement `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestAnnouncementListAnonymousSeesGeneralNoticesOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAnnouncementHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/announcements", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	notices := decodeAnnouncements(t, rec)
	require.Len(t, notices, 1)
	assert.Equal(t, "ann-002", notices[0].ID)
	assert.Equal(t, "ALL", notices[0].Audience)
}

func TestAnnouncementListAuthenticatedSeesEveryAudience(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAnnouncementHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/announcements", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "usr-001", Role: models.RoleAdmin})

	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeAnnouncements(t, rec), 2)
}

func TestAnnouncementListAudienceFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAnnouncementHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/announcements?audience=GUARDIAN", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeAnnouncements(t, rec), 2)
}
