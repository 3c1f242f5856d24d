package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/packmart/backend/internal/domain/identity"
	"github.com/packmart/backend/internal/infrastructure/auth"
)

// LoginRequest authenticates an admin-console operator
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued token pair and the signed-in user
type LoginResponse struct {
	User   UserResponse    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// RefreshRequest rotates a refresh token into a fresh token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateUserRequest provisions a new operator account
type CreateUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"max=200"`
	Password    string `json:"password" binding:"required,min=8"`
	Role        string `json:"role" binding:"required"`
}

// ChangePasswordRequest replaces the caller's own password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// SetRoleRequest changes another operator's role
type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UserResponse is the API view of an operator account
type UserResponse struct {
	ID          uuid.UUID           `json:"id"`
	Email       string              `json:"email"`
	DisplayName string              `json:"display_name,omitempty"`
	Role        identity.Role       `json:"role"`
	Status      identity.UserStatus `json:"status"`
	LastLoginAt *time.Time          `json:"last_login_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ToUserResponse converts a domain user to its API representation
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		Status:      user.Status,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
