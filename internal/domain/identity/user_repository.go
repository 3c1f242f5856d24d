package identity

import (
	"context"

	"github.com/packmart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines persistence operations for admin users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)
	Save(ctx context.Context, user *User) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
