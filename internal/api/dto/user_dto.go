package dto

import (
	"time"

	"github.com/spec-kit/interview-service/internal/domain"
)

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Password2  string  `json:"password2"`
	Department string  `json:"department"`
	Role       string  `json:"role"`
	Phone      *string `json:"phone"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest carries a refresh token for rotation or logout.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// TokenResponse holds a single signed token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Access  TokenResponse `json:"access"`
	Refresh TokenResponse `json:"refresh"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID         string            `json:"id"`
	Email      string            `json:"email"`
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Department domain.Department `json:"department"`
	Role       domain.UserRole   `json:"role"`
	Phone      *string           `json:"phone"`
	CreatedAt  time.Time         `json:"created_at"`
}

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Department: u.Department,
		Role:       u.Role,
		Phone:      u.Phone,
		CreatedAt:  u.CreatedAt,
	}
}
