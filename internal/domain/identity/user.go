package identity

import (
	"strings"
	"time"

	"github.com/packmart/backend/internal/domain/contact"
	"github.com/packmart/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of an admin-console user
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents an operator account for the admin console
type User struct {
	shared.BaseEntity
	Email        string
	DisplayName  string
	PasswordHash string
	Role         Role
	Status       UserStatus
	LastLoginAt  *time.Time
}

// NewUser creates a new active user with a hashed password
func NewUser(email, displayName, password string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := contact.ValidateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown role: "+string(role))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: string(hash),
		Role:         role,
		Status:       UserStatusActive,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// SetRole assigns a new role to the user
func (u *User) SetRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown role: "+string(role))
	}
	u.Role = role
	u.Touch()
	return nil
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.Touch()
}

// IsActive reports whether the user may sign in
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.Status = UserStatusDeactivated
	u.Touch()
}
