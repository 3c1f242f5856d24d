package contact

import (
	"context"

	"github.com/packmart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MessageRepository defines persistence operations for contact messages.
// Messages are never deleted by the workflow; Delete exists for admin cleanup only.
type MessageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Message, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Message, error)
	FindByStatus(ctx context.Context, status MessageStatus, filter shared.Filter) ([]Message, error)
	Save(ctx context.Context, message *Message) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status MessageStatus) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status MessageStatus) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
