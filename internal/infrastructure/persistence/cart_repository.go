package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylehub/backend/internal/domain/cart"
	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/infrastructure/persistence/models"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByAccountID finds the account's cart with its items
func (r *GormCartRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*cart.Cart, error) {
	var model models.CartModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "account_id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists the cart and fully replaces its item rows. Removed lines
// must not survive the write, so items are rewritten in one transaction.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	model := models.CartModelFromDomain(c)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := model.Items
		model.Items = nil

		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.CartItemModel{}, "cart_id = ?", model.ID).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// Delete deletes a cart and its items
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.CartItemModel{}, "cart_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.CartModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ cart.Repository = (*GormCartRepository)(nil)
