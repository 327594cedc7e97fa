package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylehub/backend/internal/domain/catalog"
	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/infrastructure/persistence/models"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByIDs finds only currently active products among the given IDs.
// Missing or inactive IDs are silently skipped.
func (r *GormProductRepository) FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}

	var productModels []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// FindByShop finds all products belonging to a shop
func (r *GormProductRepository) FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("shop_id = ?", shopID),
		filter,
	)

	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// FindActive finds all active products for storefront listing
func (r *GormProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("is_active = ?", true),
		filter,
	)

	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByShop counts products belonging to a shop
func (r *GormProductRepository) CountByShop(ctx context.Context, shopID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("shop_id = ?", shopID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	orderBy := ValidateSortField(filter.OrderBy, ProductSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormProductRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "shop_id":
			query = query.Where("shop_id = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}

	return query
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
