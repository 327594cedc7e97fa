package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stylehub/backend/internal/domain/cart"
	"github.com/stylehub/backend/internal/domain/catalog"
	"github.com/stylehub/backend/internal/domain/order"
	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/domain/shop"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, shopID, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, shopID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByShopAndStatus(ctx context.Context, shopID uuid.UUID, status order.Status) (int64, error) {
	args := m.Called(ctx, shopID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindStaleInStatus(ctx context.Context, status order.Status, cutoff time.Time, limit int) ([]order.Order, error) {
	args := m.Called(ctx, status, cutoff, limit)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to order.Status, changedAt time.Time) error {
	args := m.Called(ctx, id, from, to, changedAt)
	return args.Error(0)
}

// MockCartRepository is a mock implementation of cart.Repository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, shopID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByShop(ctx context.Context, shopID uuid.UUID) (int64, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockShopRepository is a mock implementation of shop.Repository
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*shop.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Shop), args.Error(1)
}

func (m *MockShopRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*shop.Shop, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Shop), args.Error(1)
}

func (m *MockShopRepository) FindAll(ctx context.Context, filter shared.Filter) ([]shop.Shop, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]shop.Shop), args.Error(1)
}

func (m *MockShopRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShopRepository) Save(ctx context.Context, s *shop.Shop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func newTestBuyerID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func createTestShop(t *testing.T, accountID uuid.UUID) *shop.Shop {
	t.Helper()
	s, err := shop.NewShop(accountID, "Velvet Corner", "")
	require.NoError(t, err)
	return s
}

func createTestProduct(t *testing.T, shopID uuid.UUID, name string, price int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(shopID, name, "", decimal.NewFromInt(price))
	require.NoError(t, err)
	return p
}

func newTestOrderService(orders *MockOrderRepository, carts *MockCartRepository, products *MockProductRepository, shops *MockShopRepository) *OrderService {
	return NewOrderService(orders, carts, products, shops, zap.NewNop())
}

func checkoutRequest() CheckoutRequest {
	return CheckoutRequest{
		AddressLine:  "12 Rue de Rivoli, Paris",
		ReceiverName: "Alice Martin",
		Phone:        "+33612345678",
	}
}

func TestOrderService_Checkout_SplitsPerShop(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	service := newTestOrderService(orders, carts, products, shops)
	ctx := context.Background()
	buyerID := newTestBuyerID()

	shopA := createTestShop(t, uuid.New())
	shopB := createTestShop(t, uuid.New())
	productA := createTestProduct(t, shopA.ID, "Silk Scarf", 45)
	productB := createTestProduct(t, shopB.ID, "Linen Shirt", 80)

	c, err := cart.NewCart(buyerID)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(productA.ID, 2))
	require.NoError(t, c.AddItem(productB.ID, 1))

	carts.On("FindByAccountID", ctx, buyerID).Return(c, nil)
	products.On("FindActiveByIDs", ctx, mock.Anything).Return([]catalog.Product{*productA, *productB}, nil)
	shops.On("FindByID", ctx, shopA.ID).Return(shopA, nil)
	shops.On("FindByID", ctx, shopB.ID).Return(shopB, nil)
	orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
	carts.On("Save", ctx, c).Return(nil)

	result, err := service.Checkout(ctx, buyerID, checkoutRequest())

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "pending", result[0].Status)
	assert.Equal(t, shopA.ID, result[0].ShopID)
	assert.True(t, result[0].TotalAmount.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, shopB.ID, result[1].ShopID)
	assert.True(t, result[1].TotalAmount.Equal(decimal.NewFromInt(80)))
	assert.True(t, c.IsEmpty())
	orders.AssertNumberOfCalls(t, "Save", 2)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	service := newTestOrderService(orders, carts, products, shops)
	ctx := context.Background()
	buyerID := newTestBuyerID()

	c, err := cart.NewCart(buyerID)
	require.NoError(t, err)
	carts.On("FindByAccountID", ctx, buyerID).Return(c, nil)

	_, err = service.Checkout(ctx, buyerID, checkoutRequest())

	assert.ErrorIs(t, err, shared.ErrEmptyCart)
}

func TestOrderService_Checkout_UnavailableProduct(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	service := newTestOrderService(orders, carts, products, shops)
	ctx := context.Background()
	buyerID := newTestBuyerID()

	c, err := cart.NewCart(buyerID)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(uuid.New(), 1))

	carts.On("FindByAccountID", ctx, buyerID).Return(c, nil)
	products.On("FindActiveByIDs", ctx, mock.Anything).Return([]catalog.Product{}, nil)

	_, err = service.Checkout(ctx, buyerID, checkoutRequest())

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRODUCT_UNAVAILABLE", domainErr.Code)
	orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_Checkout_ClosedShop(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	service := newTestOrderService(orders, carts, products, shops)
	ctx := context.Background()
	buyerID := newTestBuyerID()

	closedShop := createTestShop(t, uuid.New())
	require.NoError(t, closedShop.Close())
	product := createTestProduct(t, closedShop.ID, "Silk Scarf", 45)

	c, err := cart.NewCart(buyerID)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(product.ID, 1))

	carts.On("FindByAccountID", ctx, buyerID).Return(c, nil)
	products.On("FindActiveByIDs", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)
	shops.On("FindByID", ctx, closedShop.ID).Return(closedShop, nil)

	_, err = service.Checkout(ctx, buyerID, checkoutRequest())

	assert.ErrorIs(t, err, shared.ErrShopClosed)
	orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_Get_StrangerForbidden(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	service := newTestOrderService(orders, carts, products, shops)
	ctx := context.Background()

	o, err := order.NewOrder(uuid.New(), uuid.New(), "addr", "name", "+33612345678", "")
	require.NoError(t, err)

	stranger := newTestBuyerID()
	orders.On("FindByID", ctx, o.ID).Return(o, nil)
	shops.On("FindByAccountID", ctx, stranger).Return(nil, shared.ErrNotFound)

	_, err = service.Get(ctx, stranger, o.ID, false)

	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestOrderService_UpdateStatus_SellerAdvances(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	service := newTestOrderService(orders, carts, products, shops)
	ctx := context.Background()

	sellerID := uuid.New()
	sellerShop := createTestShop(t, sellerID)
	o, err := order.NewOrder(newTestBuyerID(), sellerShop.ID, "addr", "name", "+33612345678", "")
	require.NoError(t, err)

	orders.On("FindByID", ctx, o.ID).Return(o, nil)
	shops.On("FindByAccountID", ctx, sellerID).Return(sellerShop, nil)
	orders.On("UpdateStatus", ctx, o.ID, order.StatusPending, order.StatusConfirmed, mock.AnythingOfType("time.Time")).Return(nil)

	result, err := service.UpdateStatus(ctx, sellerID, o.ID, false, UpdateStatusRequest{Status: "confirmed"})

	require.NoError(t, err)
	assert.Equal(t, "confirmed", result.Status)
	orders.AssertExpectations(t)
}

func TestOrderService_UpdateStatus_SkipAheadRejected(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	service := newTestOrderService(orders, carts, products, shops)
	ctx := context.Background()

	sellerID := uuid.New()
	sellerShop := createTestShop(t, sellerID)
	o, err := order.NewOrder(newTestBuyerID(), sellerShop.ID, "addr", "name", "+33612345678", "")
	require.NoError(t, err)

	orders.On("FindByID", ctx, o.ID).Return(o, nil)
	shops.On("FindByAccountID", ctx, sellerID).Return(sellerShop, nil)

	_, err = service.UpdateStatus(ctx, sellerID, o.ID, false, UpdateStatusRequest{Status: "shipping"})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Cancel_PendingOnly(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	service := newTestOrderService(orders, carts, products, shops)
	ctx := context.Background()
	buyerID := newTestBuyerID()

	o, err := order.NewOrder(buyerID, uuid.New(), "addr", "name", "+33612345678", "")
	require.NoError(t, err)

	orders.On("FindByID", ctx, o.ID).Return(o, nil)
	orders.On("UpdateStatus", ctx, o.ID, order.StatusPending, order.StatusCancelled, mock.AnythingOfType("time.Time")).Return(nil)
	orders.On("Save", ctx, o).Return(nil)

	result, err := service.Cancel(ctx, buyerID, o.ID, CancelRequest{Reason: "Changed my mind"})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", result.Status)
	assert.Equal(t, "Changed my mind", result.CancelReason)
}

func TestOrderService_Cancel_DeliveredRejected(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	service := newTestOrderService(orders, carts, products, shops)
	ctx := context.Background()
	buyerID := newTestBuyerID()

	o, err := order.NewOrder(buyerID, uuid.New(), "addr", "name", "+33612345678", "")
	require.NoError(t, err)
	require.NoError(t, o.TransitionTo(order.StatusConfirmed))
	require.NoError(t, o.TransitionTo(order.StatusPacking))
	require.NoError(t, o.TransitionTo(order.StatusShipping))
	require.NoError(t, o.TransitionTo(order.StatusDelivered))

	orders.On("FindByID", ctx, o.ID).Return(o, nil)

	_, err = service.Cancel(ctx, buyerID, o.ID, CancelRequest{})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestOrderService_ShopStats(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	service := newTestOrderService(orders, carts, products, shops)
	ctx := context.Background()

	sellerID := uuid.New()
	sellerShop := createTestShop(t, sellerID)
	shops.On("FindByAccountID", ctx, sellerID).Return(sellerShop, nil)

	counts := map[order.Status]int64{
		order.StatusPending:   3,
		order.StatusConfirmed: 1,
		order.StatusPacking:   0,
		order.StatusShipping:  2,
		order.StatusDelivered: 0,
		order.StatusCompleted: 7,
		order.StatusCancelled: 1,
	}
	for status, count := range counts {
		orders.On("CountByShopAndStatus", ctx, sellerShop.ID, status).Return(count, nil)
	}

	stats, err := service.ShopStats(ctx, sellerID)

	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Pending)
	assert.Equal(t, int64(2), stats.Shipping)
	assert.Equal(t, int64(7), stats.Completed)
}
