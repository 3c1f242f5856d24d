package content

import (
	"context"

	"github.com/packmart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PostRepository defines persistence operations for blog posts
type PostRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)
	FindBySlug(ctx context.Context, slug string) (*Post, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Post, error)
	FindPublished(ctx context.Context, filter shared.Filter) ([]Post, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Save(ctx context.Context, post *Post) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
