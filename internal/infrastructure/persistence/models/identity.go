package models

import (
	"time"

	"github.com/packmart/backend/internal/domain/identity"
)

// UserModel is the persistence model for the admin User entity.
type UserModel struct {
	BaseModel
	Email        string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	DisplayName  string              `gorm:"type:varchar(200);not null"`
	PasswordHash string              `gorm:"type:varchar(100);not null"`
	Role         identity.Role       `gorm:"type:varchar(20);not null;default:'viewer'"`
	Status       identity.UserStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Email:        m.Email,
		DisplayName:  m.DisplayName,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		Status:       m.Status,
		LastLoginAt:  m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Email = u.Email
	m.DisplayName = u.DisplayName
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.Status = u.Status
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
