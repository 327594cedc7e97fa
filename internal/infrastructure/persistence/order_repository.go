package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylehub/backend/internal/domain/order"
	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID with line items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAccount finds orders placed by an account
func (r *GormOrderRepository) FindByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).
			Preload("Items").
			Where("account_id = ?", accountID),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(orderModels), nil
}

// FindByShop finds orders received by a shop
func (r *GormOrderRepository) FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).
			Preload("Items").
			Where("shop_id = ?", shopID),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(orderModels), nil
}

// CountByAccount counts orders placed by an account
func (r *GormOrderRepository) CountByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("account_id = ?", accountID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByShop counts orders received by a shop
func (r *GormOrderRepository) CountByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("shop_id = ?", shopID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByShopAndStatus counts a shop's orders in a given status
func (r *GormOrderRepository) CountByShopAndStatus(ctx context.Context, shopID uuid.UUID, status order.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("shop_id = ? AND status = ?", shopID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindStaleInStatus finds orders sitting in the given status whose last
// status change is at or before the cutoff, oldest first.
func (r *GormOrderRepository) FindStaleInStatus(ctx context.Context, status order.Status, cutoff time.Time, limit int) ([]order.Order, error) {
	var orderModels []models.OrderModel
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ? AND status_changed_at <= ?", status, cutoff).
		Order("status_changed_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(orderModels), nil
}

// Save persists an order with its line items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := model.Items
		model.Items = nil

		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Save(&items).Error
	})
}

// UpdateStatus performs the atomic status move used by the auto-transition
// sweep. The row is only updated when it is still in the expected status;
// otherwise ErrConcurrencyConflict is returned and the caller may skip the
// order.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to order.Status, changedAt time.Time) error {
	updates := map[string]interface{}{
		"status":            to,
		"status_changed_at": changedAt,
		"updated_at":        changedAt,
	}
	if to == order.StatusDelivered {
		updates["delivered_at"] = changedAt
	}

	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func toDomainOrders(orderModels []models.OrderModel) []order.Order {
	orders := make([]order.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_code ILIKE ? OR receiver_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "shop_id":
			query = query.Where("shop_id = ?", value)
		}
	}

	return query
}

var _ order.Repository = (*GormOrderRepository)(nil)
