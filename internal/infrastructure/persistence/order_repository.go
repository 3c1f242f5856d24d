package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/packmart/backend/internal/domain/shared"
	"github.com/packmart/backend/internal/domain/trade"
	"github.com/packmart/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var orderSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"number":     true,
	"status":     true,
	"total":      true,
}

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an order with its items by order number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, number string) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Preload("Items").First(&model, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}).Preload("Items"), filter)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]trade.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// FindByStatus finds orders with the given status
func (r *GormOrderRepository) FindByStatus(ctx context.Context, status trade.OrderStatus, filter shared.Filter) ([]trade.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).Preload("Items").
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]trade.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// Save creates or updates an order with its items
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		// Items are replaced wholesale; lines are immutable once written
		if err := tx.Delete(&models.OrderItemModel{}, "order_id = ?", model.ID).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	})
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, orderSortFields, "created_at")
	return query.Order(orderBy + " " + NormalizeSortDirection(filter.OrderDir))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR customer_name ILIKE ? OR customer_email ILIKE ?",
			pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "customer_email":
			query = query.Where("customer_email = ?", value)
		}
	}
	return query
}
