package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stylehub/backend/internal/domain/cart"
	"github.com/stylehub/backend/internal/domain/catalog"
	"github.com/stylehub/backend/internal/domain/shared"
)

// CartService handles shopping cart operations
type CartService struct {
	carts    cart.Repository
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(carts cart.Repository, products catalog.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

// Get returns the account's cart, creating an empty one on first access
func (s *CartService) Get(ctx context.Context, accountID uuid.UUID) (*CartResponse, error) {
	c, err := s.getOrCreate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, c)
}

// AddItem adds an active product to the cart or bumps its quantity
func (s *CartService) AddItem(ctx context.Context, accountID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available for purchase")
	}

	c, err := s.getOrCreate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := c.AddItem(req.ProductID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.respond(ctx, c)
}

// UpdateItem replaces a cart line's quantity
func (s *CartService) UpdateItem(ctx context.Context, accountID, productID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	c, err := s.carts.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := c.SetItemQuantity(productID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.respond(ctx, c)
}

// RemoveItem drops a product from the cart
func (s *CartService) RemoveItem(ctx context.Context, accountID, productID uuid.UUID) (*CartResponse, error) {
	c, err := s.carts.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := c.RemoveItem(productID); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.respond(ctx, c)
}

// Clear removes every item from the account's cart
func (s *CartService) Clear(ctx context.Context, accountID uuid.UUID) (*CartResponse, error) {
	c, err := s.carts.FindByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.Get(ctx, accountID)
		}
		return nil, err
	}
	c.Clear()
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.respond(ctx, c)
}

func (s *CartService) getOrCreate(ctx context.Context, accountID uuid.UUID) (*cart.Cart, error) {
	c, err := s.carts.FindByAccountID(ctx, accountID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	c, err = cart.NewCart(accountID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) respond(ctx context.Context, c *cart.Cart) (*CartResponse, error) {
	ids := make([]uuid.UUID, len(c.Items))
	for i, line := range c.Items {
		ids[i] = line.ProductID
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(ids))
	if len(ids) > 0 {
		products, err := s.products.FindActiveByIDs(ctx, ids)
		if err != nil {
			s.logger.Warn("Failed to join cart products", zap.Error(err))
		} else {
			for i := range products {
				byID[products[i].ID] = &products[i]
			}
		}
	}

	resp := ToCartResponse(c, byID)
	return &resp, nil
}
