package shop

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/domain/shop"
)

// ShopService handles shop lifecycle and profile operations
type ShopService struct {
	shops  shop.Repository
	logger *zap.Logger
}

// NewShopService creates a new shop service
func NewShopService(shops shop.Repository, logger *zap.Logger) *ShopService {
	return &ShopService{shops: shops, logger: logger}
}

// Create opens a new shop for the given account. Each account owns at most one shop.
func (s *ShopService) Create(ctx context.Context, accountID uuid.UUID, req CreateShopRequest) (*ShopResponse, error) {
	if existing, err := s.shops.FindByAccountID(ctx, accountID); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Account already owns a shop")
	}

	newShop, err := shop.NewShop(accountID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.shops.Save(ctx, newShop); err != nil {
		return nil, err
	}

	s.logger.Info("Shop created",
		zap.String("shop_id", newShop.ID.String()),
		zap.String("account_id", accountID.String()))

	resp := ToShopResponse(newShop)
	return &resp, nil
}

// Get returns a shop by id
func (s *ShopService) Get(ctx context.Context, shopID uuid.UUID) (*ShopResponse, error) {
	found, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	resp := ToShopResponse(found)
	return &resp, nil
}

// GetByAccount returns the shop owned by the given account
func (s *ShopService) GetByAccount(ctx context.Context, accountID uuid.UUID) (*ShopResponse, error) {
	found, err := s.shops.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	resp := ToShopResponse(found)
	return &resp, nil
}

// List returns shops matching the filter along with the total count
func (s *ShopService) List(ctx context.Context, filter ShopListFilter) ([]ShopResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.SortBy,
		OrderDir: filter.SortDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	shops, err := s.shops.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.shops.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ShopResponse, len(shops))
	for i := range shops {
		responses[i] = ToShopResponse(&shops[i])
	}
	return responses, total, nil
}

// Update modifies the shop profile; only the owner may update
func (s *ShopService) Update(ctx context.Context, accountID, shopID uuid.UUID, req UpdateShopRequest) (*ShopResponse, error) {
	found, err := s.ownedShop(ctx, accountID, shopID)
	if err != nil {
		return nil, err
	}
	if err := found.UpdateProfile(req.Name, req.Description, req.LogoURL, req.CoverURL); err != nil {
		return nil, err
	}
	if err := s.shops.Save(ctx, found); err != nil {
		return nil, err
	}
	resp := ToShopResponse(found)
	return &resp, nil
}

// Close stops the owner's shop from accepting orders
func (s *ShopService) Close(ctx context.Context, accountID, shopID uuid.UUID) (*ShopResponse, error) {
	found, err := s.ownedShop(ctx, accountID, shopID)
	if err != nil {
		return nil, err
	}
	if err := found.Close(); err != nil {
		return nil, err
	}
	if err := s.shops.Save(ctx, found); err != nil {
		return nil, err
	}
	resp := ToShopResponse(found)
	return &resp, nil
}

// Reopen reactivates the owner's closed shop
func (s *ShopService) Reopen(ctx context.Context, accountID, shopID uuid.UUID) (*ShopResponse, error) {
	found, err := s.ownedShop(ctx, accountID, shopID)
	if err != nil {
		return nil, err
	}
	if err := found.Reopen(); err != nil {
		return nil, err
	}
	if err := s.shops.Save(ctx, found); err != nil {
		return nil, err
	}
	resp := ToShopResponse(found)
	return &resp, nil
}

// Suspend is an admin action that blocks a shop entirely
func (s *ShopService) Suspend(ctx context.Context, shopID uuid.UUID) (*ShopResponse, error) {
	found, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	found.Suspend()
	if err := s.shops.Save(ctx, found); err != nil {
		return nil, err
	}

	s.logger.Info("Shop suspended", zap.String("shop_id", shopID.String()))

	resp := ToShopResponse(found)
	return &resp, nil
}

// Unsuspend is an admin action lifting a suspension
func (s *ShopService) Unsuspend(ctx context.Context, shopID uuid.UUID) (*ShopResponse, error) {
	found, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	found.Unsuspend()
	if err := s.shops.Save(ctx, found); err != nil {
		return nil, err
	}
	resp := ToShopResponse(found)
	return &resp, nil
}

// Delete soft-deletes the owner's shop
func (s *ShopService) Delete(ctx context.Context, accountID, shopID uuid.UUID) error {
	found, err := s.ownedShop(ctx, accountID, shopID)
	if err != nil {
		return err
	}
	found.SoftDelete()
	if err := s.shops.Save(ctx, found); err != nil {
		return err
	}

	s.logger.Info("Shop deleted",
		zap.String("shop_id", shopID.String()),
		zap.String("account_id", accountID.String()))
	return nil
}

func (s *ShopService) ownedShop(ctx context.Context, accountID, shopID uuid.UUID) (*shop.Shop, error) {
	found, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if found.AccountID != accountID {
		return nil, shared.ErrForbidden
	}
	return found, nil
}
