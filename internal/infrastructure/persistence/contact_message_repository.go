package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/packmart/backend/internal/domain/contact"
	"github.com/packmart/backend/internal/domain/shared"
	"github.com/packmart/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var contactMessageSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
	"status":     true,
}

// GormContactMessageRepository implements contact.MessageRepository using GORM
type GormContactMessageRepository struct {
	db *gorm.DB
}

// NewGormContactMessageRepository creates a new GormContactMessageRepository
func NewGormContactMessageRepository(db *gorm.DB) *GormContactMessageRepository {
	return &GormContactMessageRepository{db: db}
}

// FindByID finds a contact message by its ID
func (r *GormContactMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*contact.Message, error) {
	var model models.ContactMessageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all contact messages matching the filter
func (r *GormContactMessageRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contact.Message, error) {
	var messageModels []models.ContactMessageModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ContactMessageModel{}), filter)

	if err := query.Find(&messageModels).Error; err != nil {
		return nil, err
	}

	messages := make([]contact.Message, len(messageModels))
	for i, model := range messageModels {
		messages[i] = *model.ToDomain()
	}
	return messages, nil
}

// FindByStatus finds contact messages with the given status
func (r *GormContactMessageRepository) FindByStatus(ctx context.Context, status contact.MessageStatus, filter shared.Filter) ([]contact.Message, error) {
	var messageModels []models.ContactMessageModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ContactMessageModel{}).
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&messageModels).Error; err != nil {
		return nil, err
	}

	messages := make([]contact.Message, len(messageModels))
	for i, model := range messageModels {
		messages[i] = *model.ToDomain()
	}
	return messages, nil
}

// Save creates or updates a contact message
func (r *GormContactMessageRepository) Save(ctx context.Context, message *contact.Message) error {
	model := models.ContactMessageModelFromDomain(message)
	return r.db.WithContext(ctx).Save(model).Error
}

// UpdateStatus updates the status of a contact message
func (r *GormContactMessageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status contact.MessageStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.ContactMessageModel{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts contact messages matching the filter
func (r *GormContactMessageRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ContactMessageModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts contact messages with the given status
func (r *GormContactMessageRepository) CountByStatus(ctx context.Context, status contact.MessageStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ContactMessageModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes a contact message
func (r *GormContactMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ContactMessageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormContactMessageRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, contactMessageSortFields, "created_at")
	return query.Order(orderBy + " " + NormalizeSortDirection(filter.OrderDir))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormContactMessageRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR company ILIKE ? OR subject ILIKE ?",
			pattern, pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "email":
			query = query.Where("email = ?", value)
		}
	}
	return query
}
