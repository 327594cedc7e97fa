package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/domain/shop"
	"github.com/stylehub/backend/internal/infrastructure/persistence/models"
)

// GormShopRepository implements shop.Repository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// FindByID finds a shop by its ID
func (r *GormShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*shop.Shop, error) {
	var model models.ShopModel
	if err := r.db.WithContext(ctx).First(&model, "id = ? AND is_deleted = ?", id, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAccountID finds the shop owned by the given account
func (r *GormShopRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*shop.Shop, error) {
	var model models.ShopModel
	if err := r.db.WithContext(ctx).
		First(&model, "account_id = ? AND is_deleted = ?", accountID, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all shops matching the filter, excluding soft-deleted ones
func (r *GormShopRepository) FindAll(ctx context.Context, filter shared.Filter) ([]shop.Shop, error) {
	var shopModels []models.ShopModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ShopModel{}).Where("is_deleted = ?", false),
		filter,
	)

	if err := query.Find(&shopModels).Error; err != nil {
		return nil, err
	}

	shops := make([]shop.Shop, len(shopModels))
	for i, model := range shopModels {
		shops[i] = *model.ToDomain()
	}
	return shops, nil
}

// Count counts shops matching the filter, excluding soft-deleted ones
func (r *GormShopRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.ShopModel{}).Where("is_deleted = ?", false),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a shop
func (r *GormShopRepository) Save(ctx context.Context, s *shop.Shop) error {
	model := models.ShopModelFromDomain(s)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormShopRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	orderBy := ValidateSortField(filter.OrderBy, ShopSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormShopRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "account_id":
			query = query.Where("account_id = ?", value)
		}
	}

	return query
}

var _ shop.Repository = (*GormShopRepository)(nil)
