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

// GormAttributeRepository implements AttributeRepository using GORM
type GormAttributeRepository struct {
	db *gorm.DB
}

// NewGormAttributeRepository creates a new GormAttributeRepository
func NewGormAttributeRepository(db *gorm.DB) *GormAttributeRepository {
	return &GormAttributeRepository{db: db}
}

// FindByID finds an attribute by its ID
func (r *GormAttributeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Attribute, error) {
	var model models.AttributeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForShop returns global attributes plus the shop's own
func (r *GormAttributeRepository) FindForShop(ctx context.Context, shopID uuid.UUID) ([]catalog.Attribute, error) {
	var attributeModels []models.AttributeModel
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? OR shop_id = ?", uuid.Nil, shopID).
		Order("label asc").
		Find(&attributeModels).Error; err != nil {
		return nil, err
	}

	attributes := make([]catalog.Attribute, len(attributeModels))
	for i, model := range attributeModels {
		attributes[i] = *model.ToDomain()
	}
	return attributes, nil
}

// Save creates or updates an attribute
func (r *GormAttributeRepository) Save(ctx context.Context, attribute *catalog.Attribute) error {
	model := &models.AttributeModel{}
	model.FromDomain(attribute)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an attribute; its values go with it
func (r *GormAttributeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.AttributeValueModel{}, "attribute_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.AttributeModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindValueByID finds an attribute value by its ID
func (r *GormAttributeRepository) FindValueByID(ctx context.Context, id uuid.UUID) (*catalog.AttributeValue, error) {
	var model models.AttributeValueModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindValuesByIDs finds attribute values by their IDs. Missing IDs are
// not an error.
func (r *GormAttributeRepository) FindValuesByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.AttributeValue, error) {
	if len(ids) == 0 {
		return []catalog.AttributeValue{}, nil
	}

	var valueModels []models.AttributeValueModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&valueModels).Error; err != nil {
		return nil, err
	}

	values := make([]catalog.AttributeValue, len(valueModels))
	for i, model := range valueModels {
		values[i] = *model.ToDomain()
	}
	return values, nil
}

// FindValuesForShop returns an attribute's global values plus the shop's own
func (r *GormAttributeRepository) FindValuesForShop(ctx context.Context, attributeID, shopID uuid.UUID) ([]catalog.AttributeValue, error) {
	var valueModels []models.AttributeValueModel
	if err := r.db.WithContext(ctx).
		Where("attribute_id = ? AND (shop_id = ? OR shop_id = ?)", attributeID, uuid.Nil, shopID).
		Order("value asc").
		Find(&valueModels).Error; err != nil {
		return nil, err
	}

	values := make([]catalog.AttributeValue, len(valueModels))
	for i, model := range valueModels {
		values[i] = *model.ToDomain()
	}
	return values, nil
}

// SaveValue creates or updates an attribute value
func (r *GormAttributeRepository) SaveValue(ctx context.Context, value *catalog.AttributeValue) error {
	model := &models.AttributeValueModel{}
	model.FromDomain(value)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteValue deletes an attribute value
func (r *GormAttributeRepository) DeleteValue(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AttributeValueModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.AttributeRepository = (*GormAttributeRepository)(nil)
