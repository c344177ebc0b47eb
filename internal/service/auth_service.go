package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/store"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

// CredentialVerifier checks a credential pair and resolves the account. It
// is a strategy so deployments can swap the verification backend without
// touching the login flow.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*models.User, error)
}

// StoreVerifier verifies credentials against the account collection using
// bcrypt hashes.
type StoreVerifier struct {
	store *store.Store
}

// NewStoreVerifier constructs the store-backed verifier.
func NewStoreVerifier(st *store.Store) *StoreVerifier {
	return &StoreVerifier{store: st}
}

// Verify implements CredentialVerifier.
func (v *StoreVerifier) Verify(ctx context.Context, email, password string) (*models.User, error) {
	user, ok := v.store.FindUserByEmail(email)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	if !user.Active {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	return &user, nil
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	TokenSecret string
	TokenExpiry time.Duration
	Issuer      string
}

// AuthService provides login, logout and token validation. Sessions are
// recorded in the store so logout revokes tokens before their expiry.
type AuthService struct {
	store     *store.Store
	verifier  CredentialVerifier
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(st *store.Store, verifier CredentialVerifier, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.TokenExpiry <= 0 {
		config.TokenExpiry = 24 * time.Hour
	}
	return &AuthService{
		store:     st,
		verifier:  verifier,
		validator: validate,
		logger:    logger,
		config:    config,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Login authenticates a user and returns an issued token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.verifier.Verify(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := s.store.AddSession(models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.config.TokenExpiry),
	})

	claims := &models.JWTClaims{
		UserID:    user.ID,
		SessionID: session.ID,
		Email:     user.Email,
		Role:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.TokenSecret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	s.store.TouchLastLogin(user.ID)
	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))

	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.TokenExpiry.Seconds()),
		IssuedAt:    now,
		User: models.UserInfo{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     user.Role,
		},
	}, nil
}

// Logout revokes the session carried by the token claims.
func (s *AuthService) Logout(ctx context.Context, claims *models.JWTClaims) error {
	if claims == nil {
		return appErrors.Clone(appErrors.ErrUnauthorized, "")
	}
	s.store.RemoveSession(claims.SessionID)
	s.logger.Info("user logged out", zap.String("user_id", claims.UserID))
	return nil
}

// Profile resolves the full account profile behind the token claims.
func (s *AuthService) Profile(ctx context.Context, claims *models.JWTClaims) (*models.UserInfo, error) {
	if claims == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}
	user, ok := s.store.FindUser(claims.UserID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "account no longer exists")
	}
	return &models.UserInfo{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	}, nil
}

// ValidateToken parses the token and checks that its session is still live.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}

	session, ok := s.store.FindSession(claims.SessionID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session revoked")
	}
	if s.now().After(session.ExpiresAt) {
		s.store.RemoveSession(session.ID)
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
	}
	return claims, nil
}
