package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/store"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

func authFixture(t *testing.T) (*store.Store, *AuthService) {
	t.Helper()
	st := store.New()
	st.Seed()
	svc := NewAuthService(st, NewStoreVerifier(st), nil, nil, AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "escola-test",
	})
	return st, svc
}

func TestLoginSuccess(t *testing.T) {
	_, svc := authFixture(t)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@escola.edu", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, models.RoleAdmin, res.User.Role)
	assert.Equal(t, int64(3600), res.ExpiresIn)
}

func TestLoginWrongPassword(t *testing.T) {
	_, svc := authFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@escola.edu", Password: "wrong"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	_, svc := authFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@escola.edu", Password: "whatever"})
	require.Error(t, err)
}

func TestLoginInactiveAccount(t *testing.T) {
	st, svc := authFixture(t)
	user, ok := st.FindUserByEmail("admin@escola.edu")
	require.True(t, ok)
	user.Active = false
	st.UpdateUser(user)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@escola.edu", Password: "admin123"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErr.Code)
}

func TestLoginRejectsMalformedPayload(t *testing.T) {
	_, svc := authFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	_, svc := authFixture(t)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@escola.edu", Password: "admin123"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLogoutRevokesToken(t *testing.T) {
	_, svc := authFixture(t)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@escola.edu", Password: "admin123"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims))

	// The token itself is still unexpired, but its session is gone.
	_, err = svc.ValidateToken(res.AccessToken)
	require.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	_, svc := authFixture(t)
	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@escola.edu", Password: "admin123"})
	require.NoError(t, err)

	other := NewAuthService(store.New(), nil, nil, nil, AuthConfig{TokenSecret: "different"})
	_, err = other.ValidateToken(res.AccessToken)
	require.Error(t, err)
}

func TestTouchLastLoginOnSuccess(t *testing.T) {
	st, svc := authFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@escola.edu", Password: "admin123"})
	require.NoError(t, err)

	user, ok := st.FindUserByEmail("admin@escola.edu")
	require.True(t, ok)
	require.NotNil(t, user.LastLogin)
	assert.WithinDuration(t, time.Now().UTC(), *user.LastLogin, time.Minute)
}
