package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/service"
	"github.com/escolalink/escola-api/internal/store"
)

func newAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	st := store.New()
	st.Seed()
	return service.NewAuthService(st, service.NewStoreVerifier(st), nil, nil, service.AuthConfig{TokenSecret: "test-secret"})
}

func bearerContext(t *testing.T, header string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/announcements", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}
	return c, rec
}

func TestJWTRejectsMissingHeader(t *testing.T) {
	auth := newAuthService(t)
	c, rec := bearerContext(t, "")

	JWT(auth)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAttachesClaims(t *testing.T) {
	auth := newAuthService(t)
	login, err := auth.Login(context.Background(), models.LoginRequest{Email: "admin@escola.edu", Password: "admin123"})
	require.NoError(t, err)
	c, _ := bearerContext(t, "Bearer "+login.AccessToken)

	JWT(auth)(c)

	assert.False(t, c.IsAborted())
	value, ok := c.Get(ContextUserKey)
	require.True(t, ok)
	assert.Equal(t, models.RoleAdmin, value.(*models.JWTClaims).Role)
}

func TestOptionalJWTPassesAnonymous(t *testing.T) {
	auth := newAuthService(t)
	c, rec := bearerContext(t, "")

	OptionalJWT(auth)(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, rec.Code)
	_, ok := c.Get(ContextUserKey)
	assert.False(t, ok)
}

func TestOptionalJWTIgnoresInvalidToken(t *testing.T) {
	auth := newAuthService(t)
	c, rec := bearerContext(t, "Bearer not-a-token")

	OptionalJWT(auth)(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, rec.Code)
	_, ok := c.Get(ContextUserKey)
	assert.False(t, ok)
}

func TestOptionalJWTAttachesClaimsWhenPresent(t *testing.T) {
	auth := newAuthService(t)
	login, err := auth.Login(context.Background(), models.LoginRequest{Email: "admin@escola.edu", Password: "admin123"})
	require.NoError(t, err)
	c, _ := bearerContext(t, "Bearer "+login.AccessToken)

	OptionalJWT(auth)(c)

	assert.False(t, c.IsAborted())
	value, ok := c.Get(ContextUserKey)
	require.True(t, ok)
	assert.Equal(t, "admin@escola.edu", value.(*models.JWTClaims).Email)
}
