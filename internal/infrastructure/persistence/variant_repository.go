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

// GormVariantRepository implements VariantRepository using GORM
type GormVariantRepository struct {
	db *gorm.DB
}

// NewGormVariantRepository creates a new GormVariantRepository
func NewGormVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// FindByID finds a variant by its ID
func (r *GormVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Variant, error) {
	var model models.VariantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProduct finds all variants of a product
func (r *GormVariantRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Variant, error) {
	var variantModels []models.VariantModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("variant_key asc").
		Find(&variantModels).Error; err != nil {
		return nil, err
	}

	variants := make([]catalog.Variant, len(variantModels))
	for i, model := range variantModels {
		variants[i] = *model.ToDomain()
	}
	return variants, nil
}

// Save creates or updates a variant
func (r *GormVariantRepository) Save(ctx context.Context, variant *catalog.Variant) error {
	model := &models.VariantModel{}
	model.FromDomain(variant)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveAll inserts a batch of variants in one transaction
func (r *GormVariantRepository) SaveAll(ctx context.Context, variants []*catalog.Variant) error {
	if len(variants) == 0 {
		return nil
	}

	variantModels := make([]models.VariantModel, len(variants))
	for i, v := range variants {
		variantModels[i].FromDomain(v)
	}
	return r.db.WithContext(ctx).Create(&variantModels).Error
}

// Delete deletes a variant
func (r *GormVariantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.VariantModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByProduct deletes all variants of a product
func (r *GormVariantRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.VariantModel{}, "product_id = ?", productID).Error
}

var _ catalog.VariantRepository = (*GormVariantRepository)(nil)
