package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stylehub/backend/internal/domain/cart"
	"github.com/stylehub/backend/internal/domain/catalog"
	"github.com/stylehub/backend/internal/domain/order"
	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/domain/shop"
)

// OrderService handles checkout and order lifecycle operations
type OrderService struct {
	orders   order.Repository
	carts    cart.Repository
	products catalog.ProductRepository
	shops    shop.Repository
	logger   *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orders order.Repository,
	carts cart.Repository,
	products catalog.ProductRepository,
	shops shop.Repository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		products: products,
		shops:    shops,
		logger:   logger,
	}
}

// Checkout turns the account's cart into pending orders, one per shop.
// Prices are snapshotted at this moment; the cart is emptied on success.
func (s *OrderService) Checkout(ctx context.Context, accountID uuid.UUID, req CheckoutRequest) ([]OrderResponse, error) {
	c, err := s.carts.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, shared.ErrEmptyCart
	}
	if c.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	ids := make([]uuid.UUID, len(c.Items))
	for i, line := range c.Items {
		ids[i] = line.ProductID
	}
	products, err := s.products.FindActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	// Group cart lines by shop, preserving cart order within each group.
	linesByShop := make(map[uuid.UUID][]cart.Item)
	shopOrder := []uuid.UUID{}
	for _, line := range c.Items {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE",
				"A product in the cart is no longer available")
		}
		if _, seen := linesByShop[product.ShopID]; !seen {
			shopOrder = append(shopOrder, product.ShopID)
		}
		linesByShop[product.ShopID] = append(linesByShop[product.ShopID], line)
	}

	orders := make([]*order.Order, 0, len(shopOrder))
	for _, shopID := range shopOrder {
		sellerShop, err := s.shops.FindByID(ctx, shopID)
		if err != nil {
			return nil, err
		}
		if !sellerShop.IsAcceptingOrders() {
			return nil, shared.ErrShopClosed
		}

		newOrder, err := order.NewOrder(accountID, shopID, req.AddressLine, req.ReceiverName, req.Phone, req.Note)
		if err != nil {
			return nil, err
		}
		for _, line := range linesByShop[shopID] {
			product := byID[line.ProductID]
			if err := newOrder.AddItem(product.ID, product.Name, line.Quantity, product.BasePrice); err != nil {
				return nil, err
			}
		}
		orders = append(orders, newOrder)
	}

	for _, o := range orders {
		if err := s.orders.Save(ctx, o); err != nil {
			return nil, err
		}
	}

	c.Clear()
	if err := s.carts.Save(ctx, c); err != nil {
		s.logger.Warn("Failed to clear cart after checkout",
			zap.String("account_id", accountID.String()),
			zap.Error(err))
	}

	s.logger.Info("Checkout completed",
		zap.String("account_id", accountID.String()),
		zap.Int("orders", len(orders)))

	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderResponse(o)
	}
	return responses, nil
}

// Get returns an order; customers see their own orders, sellers the orders
// of their shop, admins everything
func (s *OrderService) Get(ctx context.Context, accountID uuid.UUID, orderID uuid.UUID, isAdmin bool) (*OrderResponse, error) {
	found, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && found.AccountID != accountID {
		ownShop, err := s.shops.FindByAccountID(ctx, accountID)
		if err != nil || ownShop.ID != found.ShopID {
			return nil, shared.ErrForbidden
		}
	}
	resp := ToOrderResponse(found)
	return &resp, nil
}

// ListForAccount returns the account's own orders
func (s *OrderService) ListForAccount(ctx context.Context, accountID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := buildOrderFilter(filter)

	orders, err := s.orders.FindByAccount(ctx, accountID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.CountByAccount(ctx, accountID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(orders), total, nil
}

// ListForShop returns the orders received by the seller's shop
func (s *OrderService) ListForShop(ctx context.Context, accountID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	ownShop, err := s.shops.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}

	domainFilter := buildOrderFilter(filter)
	orders, err := s.orders.FindByShop(ctx, ownShop.ID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.CountByShop(ctx, ownShop.ID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(orders), total, nil
}

// UpdateStatus moves an order one step forward, or cancels it. Sellers may
// only touch their own shop's orders.
func (s *OrderService) UpdateStatus(ctx context.Context, accountID, orderID uuid.UUID, isAdmin bool, req UpdateStatusRequest) (*OrderResponse, error) {
	target := order.Status(req.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}

	found, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		ownShop, err := s.shops.FindByAccountID(ctx, accountID)
		if err != nil || ownShop.ID != found.ShopID {
			return nil, shared.ErrForbidden
		}
	}

	from := found.Status
	if err := found.TransitionTo(target); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, orderID, from, target, found.StatusChangedAt); err != nil {
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(target)))

	resp := ToOrderResponse(found)
	return &resp, nil
}

// Cancel lets a customer cancel their own order before it is delivered
func (s *OrderService) Cancel(ctx context.Context, accountID, orderID uuid.UUID, req CancelRequest) (*OrderResponse, error) {
	found, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if found.AccountID != accountID {
		return nil, shared.ErrForbidden
	}

	from := found.Status
	if err := found.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, orderID, from, order.StatusCancelled, found.StatusChangedAt); err != nil {
		return nil, err
	}
	if req.Reason != "" {
		if err := s.orders.Save(ctx, found); err != nil {
			s.logger.Warn("Failed to persist cancel reason",
				zap.String("order_id", orderID.String()),
				zap.Error(err))
		}
	}

	resp := ToOrderResponse(found)
	return &resp, nil
}

// ShopStats returns per-status order counts for the seller's shop
func (s *OrderService) ShopStats(ctx context.Context, accountID uuid.UUID) (*ShopOrderStats, error) {
	ownShop, err := s.shops.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	stats := &ShopOrderStats{}
	targets := []struct {
		status order.Status
		dest   *int64
	}{
		{order.StatusPending, &stats.Pending},
		{order.StatusConfirmed, &stats.Confirmed},
		{order.StatusPacking, &stats.Packing},
		{order.StatusShipping, &stats.Shipping},
		{order.StatusDelivered, &stats.Delivered},
		{order.StatusCompleted, &stats.Completed},
		{order.StatusCancelled, &stats.Cancelled},
	}
	for _, t := range targets {
		count, err := s.orders.CountByShopAndStatus(ctx, ownShop.ID, t.status)
		if err != nil {
			return nil, err
		}
		*t.dest = count
	}
	return stats, nil
}

func buildOrderFilter(filter OrderListFilter) shared.Filter {
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
	return domainFilter
}
