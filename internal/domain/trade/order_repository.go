package trade

import (
	"context"

	"github.com/packmart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, number string) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	FindByStatus(ctx context.Context, status OrderStatus, filter shared.Filter) ([]Order, error)
	Save(ctx context.Context, order *Order) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
