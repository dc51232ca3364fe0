package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/interview-service/internal/auth"
	"github.com/spec-kit/interview-service/internal/config"
	"github.com/spec-kit/interview-service/internal/domain"
	"github.com/spec-kit/interview-service/internal/repository"
	apperrors "github.com/spec-kit/interview-service/pkg/util/errorutil"
)

const invalidCredentialsMessage = "Invalid email or password. Please try again."

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	Access  auth.IssuedToken
	Refresh auth.IssuedToken
}

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	FirstName  string
	LastName   string
	Email      string
	Password   string
	Password2  string
	Department string
	Role       string
	Phone      *string
}

// AuthService coordinates registration, login and refresh token rotation.
type AuthService struct {
	users      repository.UserRepository
	sessions   auth.SessionStore
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	SessionStore auth.SessionStore
	TokenManager *auth.TokenManager
	Logger       *zap.Logger
}

// NewAuthService builds the service. A token manager is created from cfg when none is supplied.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	tokenMgr := deps.TokenManager
	if tokenMgr == nil {
		tokenMgr = auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes, cfg.Auth.RefreshTokenTTLHours)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.SessionStore,
		tokenMgr:   tokenMgr,
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     logger,
	}
}

// Register creates a new account.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	fieldErrs := map[string]any{}

	email, err := NormalizeEmail(in.Email)
	if err != nil {
		fieldErrs["email"] = "invalid email"
	}
	firstName := strings.TrimSpace(in.FirstName)
	if firstName == "" {
		fieldErrs["first_name"] = "required"
	}
	lastName := strings.TrimSpace(in.LastName)
	if lastName == "" {
		fieldErrs["last_name"] = "required"
	}
	if in.Password != in.Password2 {
		fieldErrs["password2"] = "Passwords must match."
	} else if err := auth.ValidatePassword(in.Password); err != nil {
		fieldErrs["password"] = err.Error()
	}
	department, err := domain.ParseDepartment(in.Department)
	if err != nil {
		fieldErrs["department"] = "invalid department"
	}
	role, err := domain.ParseUserRole(in.Role)
	if err != nil {
		fieldErrs["role"] = "invalid role"
	}
	if len(fieldErrs) > 0 {
		return nil, apperrors.NewValidationError("invalid registration", fieldErrs)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !apperrors.IsNoRows(err) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		Department:   department,
		Role:         role,
		Phone:        trimmedOrNil(in.Phone),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
		}
		return nil, apperrors.MapError(err)
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Login authenticates by email and password and opens a refresh session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, TokenPair, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, TokenPair{}, apperrors.NewUnauthorized(invalidCredentialsMessage)
	}
	user, err := s.users.GetByEmail(ctx, normalized)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return nil, TokenPair{}, apperrors.NewUnauthorized(invalidCredentialsMessage)
		}
		return nil, TokenPair{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, TokenPair{}, apperrors.NewUnauthorized(invalidCredentialsMessage)
	}
	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh rotates a refresh token: the presented session is consumed and a new pair issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.tokenMgr.ParseToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return TokenPair{}, apperrors.NewUnauthorized("invalid refresh token")
	}
	userID, err := s.sessions.Consume(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			return TokenPair{}, apperrors.NewUnauthorized("refresh token revoked")
		}
		return TokenPair{}, apperrors.MapError(err)
	}
	if userID != claims.Subject {
		return TokenPair{}, apperrors.NewUnauthorized("invalid refresh token")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return TokenPair{}, apperrors.NewUnauthorized("invalid refresh token")
		}
		return TokenPair{}, apperrors.MapError(err)
	}
	return s.issuePair(ctx, user)
}

// Logout revokes the refresh session. Unknown or expired tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokenMgr.ParseToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil
	}
	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("current password is incorrect")
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.NewValidationError("invalid password", map[string]any{"new_password": err.Error()})
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ListUsers returns a page of accounts.
func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (TokenPair, error) {
	access, err := s.tokenMgr.GenerateAccessToken(user)
	if err != nil {
		return TokenPair{}, apperrors.NewInternalError(err)
	}
	refresh, err := s.tokenMgr.GenerateRefreshToken(user)
	if err != nil {
		return TokenPair{}, apperrors.NewInternalError(err)
	}
	if err := s.sessions.Save(ctx, refresh.ID, user.ID, s.tokenMgr.RefreshTTL()); err != nil {
		return TokenPair{}, apperrors.NewInternalError(err)
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// NormalizeEmail validates an address and lower-cases its domain part.
func NormalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	at := strings.LastIndex(addr.Address, "@")
	return addr.Address[:at] + "@" + strings.ToLower(addr.Address[at+1:]), nil
}
