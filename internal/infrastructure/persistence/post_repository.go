package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/packmart/backend/internal/domain/content"
	"github.com/packmart/backend/internal/domain/shared"
	"github.com/packmart/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var postSortFields = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"published_at": true,
	"title":        true,
	"slug":         true,
}

// GormPostRepository implements content.PostRepository using GORM
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// FindByID finds a post by its ID
func (r *GormPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Post, error) {
	var model models.PostModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a post by its slug
func (r *GormPostRepository) FindBySlug(ctx context.Context, slug string) (*content.Post, error) {
	var model models.PostModel
	if err := r.db.WithContext(ctx).First(&model, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all posts matching the filter
func (r *GormPostRepository) FindAll(ctx context.Context, filter shared.Filter) ([]content.Post, error) {
	var postModels []models.PostModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PostModel{}), filter)

	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]content.Post, len(postModels))
	for i, model := range postModels {
		posts[i] = *model.ToDomain()
	}
	return posts, nil
}

// FindPublished finds published posts, newest first by publication date
func (r *GormPostRepository) FindPublished(ctx context.Context, filter shared.Filter) ([]content.Post, error) {
	var postModels []models.PostModel
	query := r.db.WithContext(ctx).Model(&models.PostModel{}).Where("published = ?", true)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("published_at DESC").Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]content.Post, len(postModels))
	for i, model := range postModels {
		posts[i] = *model.ToDomain()
	}
	return posts, nil
}

// ExistsBySlug reports whether a post with the given slug exists
func (r *GormPostRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PostModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a post
func (r *GormPostRepository) Save(ctx context.Context, post *content.Post) error {
	model := models.PostModelFromDomain(post)
	return r.db.WithContext(ctx).Save(model).Error
}

// Count counts posts matching the filter
func (r *GormPostRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.PostModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes a post
func (r *GormPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PostModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormPostRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, postSortFields, "created_at")
	return query.Order(orderBy + " " + NormalizeSortDirection(filter.OrderDir))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPostRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR excerpt ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "published":
			query = query.Where("published = ?", value)
		}
	}
	return query
}
