package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylehub/backend/internal/domain/identity"
	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/infrastructure/persistence/models"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUsername finds an account by its unique username
func (r *GormAccountRepository) FindByUsername(ctx context.Context, username string) (*identity.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPhoneNumber finds an account by its unique phone number
func (r *GormAccountRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*identity.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "phone_number = ?", phoneNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all accounts matching the filter
func (r *GormAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Account, error) {
	var accountModels []models.AccountModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AccountModel{}), filter)

	if err := query.Find(&accountModels).Error; err != nil {
		return nil, err
	}

	accounts := make([]identity.Account, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// Count counts accounts matching the filter
func (r *GormAccountRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.AccountModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *identity.Account) error {
	model := models.AccountModelFromDomain(account)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an account
func (r *GormAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AccountModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormAccountRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	orderBy := ValidateSortField(filter.OrderBy, AccountSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormAccountRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("username ILIKE ? OR phone_number ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "role":
			query = query.Where("role = ?", value)
		case "is_banned":
			query = query.Where("is_banned = ?", value)
		}
	}

	return query
}

var _ identity.AccountRepository = (*GormAccountRepository)(nil)
