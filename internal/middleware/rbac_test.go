package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/escolalink/escola-api/internal/models"
)

func rbacContext(t *testing.T, claims *models.JWTClaims, paramID string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/users/"+paramID, nil)
	c.Params = gin.Params{{Key: "id", Value: paramID}}
	if claims != nil {
		c.Set(ContextUserKey, claims)
	}
	return c, rec
}

func TestRBACAllowsListedRole(t *testing.T) {
	claims := &models.JWTClaims{UserID: "usr-001", Role: models.RoleAdmin}
	c, rec := rbacContext(t, claims, "usr-004")

	RBAC(string(models.RoleAdmin), string(models.RoleDirection))(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRBACAllowsOwnerThroughAllowSelf(t *testing.T) {
	claims := &models.JWTClaims{UserID: "usr-004", Role: models.RoleGuardian}
	c, rec := rbacContext(t, claims, "usr-004")

	RBAC(string(models.RoleAdmin), string(models.RoleDirection), AllowSelf)(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRBACRejectsOtherRecordDespiteAllowSelf(t *testing.T) {
	claims := &models.JWTClaims{UserID: "usr-004", Role: models.RoleGuardian}
	c, rec := rbacContext(t, claims, "usr-001")

	RBAC(string(models.RoleAdmin), string(models.RoleDirection), AllowSelf)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRBACRejectsMissingClaims(t *testing.T) {
	c, rec := rbacContext(t, nil, "usr-001")

	RBAC(string(models.RoleAdmin), AllowSelf)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
