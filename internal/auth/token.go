package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/interview-service/internal/domain"
)

// TokenType separates short-lived access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// ErrWrongTokenType is returned when a valid token is presented in the wrong place.
var ErrWrongTokenType = errors.New("unexpected token type")

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, accessTTLMinutes, refreshTTLHours int) *TokenManager {
	if accessTTLMinutes <= 0 {
		accessTTLMinutes = 60
	}
	if refreshTTLHours <= 0 {
		refreshTTLHours = 24 * 7
	}
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessTTLMinutes) * time.Minute,
		refreshTTL: time.Duration(refreshTTLHours) * time.Hour,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for issuing and validating tokens.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// RefreshTTL returns how long refresh tokens stay valid.
func (tm *TokenManager) RefreshTTL() time.Duration {
	return tm.refreshTTL
}

// Claims describes JWT payload.
type Claims struct {
	Type TokenType       `json:"typ"`
	Role domain.UserRole `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed token with its identifying metadata.
type IssuedToken struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

// GenerateAccessToken signs an access token for the user.
func (tm *TokenManager) GenerateAccessToken(user *domain.User) (IssuedToken, error) {
	return tm.generate(user.ID, user.Role, TokenTypeAccess, tm.accessTTL)
}

// GenerateRefreshToken signs a refresh token for the user.
func (tm *TokenManager) GenerateRefreshToken(user *domain.User) (IssuedToken, error) {
	return tm.generate(user.ID, "", TokenTypeRefresh, tm.refreshTTL)
}

func (tm *TokenManager) generate(subjectID string, role domain.UserRole, typ TokenType, ttl time.Duration) (IssuedToken, error) {
	now := tm.now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Type: typ,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return IssuedToken{}, err
	}
	return IssuedToken{Token: tokenString, ID: claims.ID, ExpiresAt: expiresAt}, nil
}

// ParseToken validates a token and checks it has the expected type.
func (tm *TokenManager) ParseToken(tokenStr string, expected TokenType) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Type != expected {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
