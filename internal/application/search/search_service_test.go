package search

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stylehub/backend/internal/domain/catalog"
	"github.com/stylehub/backend/internal/domain/search"
	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/domain/shop"
	"github.com/stylehub/backend/internal/infrastructure/cache"
	"github.com/stylehub/backend/internal/infrastructure/config"
)

// MockInferenceGateway is a mock implementation of InferenceGateway
type MockInferenceGateway struct {
	mock.Mock
}

func (m *MockInferenceGateway) DetectRegions(ctx context.Context, imageBytes []byte, filename string) ([]search.RegionCandidate, error) {
	args := m.Called(ctx, imageBytes, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]search.RegionCandidate), args.Error(1)
}

func (m *MockInferenceGateway) SearchByImage(ctx context.Context, imageBytes []byte, filename string, topK int) ([]search.Result, error) {
	args := m.Called(ctx, imageBytes, filename, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]search.Result), args.Error(1)
}

func (m *MockInferenceGateway) SearchByText(ctx context.Context, query string, limit int) ([]search.Result, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]search.Result), args.Error(1)
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

func testInferenceConfig(tempDir string) config.InferenceConfig {
	return config.InferenceConfig{
		BaseURL:      "http://inference.local",
		DefaultTopK:  20,
		TempDir:      tempDir,
		TextCacheTTL: 5 * time.Minute,
	}
}

func newTestSearchService(t *testing.T, gateway *MockInferenceGateway, products *MockProductRepository, shops *MockShopRepository) *SearchService {
	t.Helper()
	return NewSearchService(gateway, products, shops, cache.NewInMemorySearchCache(), testInferenceConfig(t.TempDir()), zap.NewNop())
}

func createTestProduct(t *testing.T, shopID uuid.UUID, name string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(shopID, name, "", decimal.NewFromInt(50))
	require.NoError(t, err)
	return p
}

func createTestShop(t *testing.T) *shop.Shop {
	t.Helper()
	s, err := shop.NewShop(uuid.New(), "Velvet Corner", "")
	require.NoError(t, err)
	return s
}

func TestSearchService_Merge_PreservesInferenceRank(t *testing.T) {
	gateway := new(MockInferenceGateway)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	service := newTestSearchService(t, gateway, products, shops)
	ctx := context.Background()

	sellerShop := createTestShop(t)
	first := createTestProduct(t, sellerShop.ID, "Silk Scarf")
	second := createTestProduct(t, sellerShop.ID, "Linen Shirt")
	third := createTestProduct(t, sellerShop.ID, "Wool Coat")

	// The middle match was deactivated since indexing; it must be dropped
	// without disturbing the order of the rest.
	gateway.On("SearchByText", ctx, "summer scarf", 20).Return([]search.Result{
		{ExternalID: first.ID.String(), Similarity: 0.95},
		{ExternalID: second.ID.String(), Similarity: 0.90},
		{ExternalID: third.ID.String(), Similarity: 0.85},
	}, nil)
	products.On("FindActiveByIDs", ctx, mock.Anything).
		Return([]catalog.Product{*third, *first}, nil)
	shops.On("FindByID", ctx, sellerShop.ID).Return(sellerShop, nil)

	resp, err := service.SearchByText(ctx, TextSearchRequest{Query: "summer scarf"})

	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, first.ID, resp.Results[0].ProductID)
	assert.Equal(t, third.ID, resp.Results[1].ProductID)
	assert.Equal(t, "Velvet Corner", resp.Results[0].Shop.Name)
	assert.Equal(t, 0.95, resp.Results[0].Similarity)
}

func TestSearchService_SearchByText_BlankQueryRejectedBeforeOutboundCall(t *testing.T) {
	gateway := new(MockInferenceGateway)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	service := newTestSearchService(t, gateway, products, shops)

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := service.SearchByText(context.Background(), TextSearchRequest{Query: query})
		assert.ErrorIs(t, err, shared.ErrInvalidQuery)
	}
	gateway.AssertNotCalled(t, "SearchByText", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchService_SearchByText_EmptyResultIsSuccess(t *testing.T) {
	gateway := new(MockInferenceGateway)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	service := newTestSearchService(t, gateway, products, shops)
	ctx := context.Background()

	gateway.On("SearchByText", ctx, "vantablack tuxedo", 20).Return([]search.Result{}, nil)

	resp, err := service.SearchByText(ctx, TextSearchRequest{Query: "vantablack tuxedo"})

	require.NoError(t, err)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.TotalFound)
}

func TestSearchService_SearchByText_SecondQueryServedFromCache(t *testing.T) {
	gateway := new(MockInferenceGateway)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	service := newTestSearchService(t, gateway, products, shops)
	ctx := context.Background()

	gateway.On("SearchByText", ctx, "red dress", 20).Return([]search.Result{}, nil).Once()

	_, err := service.SearchByText(ctx, TextSearchRequest{Query: "red dress"})
	require.NoError(t, err)

	resp, err := service.SearchByText(ctx, TextSearchRequest{Query: "red dress"})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	gateway.AssertNumberOfCalls(t, "SearchByText", 1)
}

func TestSearchService_SearchByImage_TempFileAlwaysRemoved(t *testing.T) {
	gateway := new(MockInferenceGateway)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	tempDir := t.TempDir()
	service := NewSearchService(gateway, products, shops, cache.NewInMemorySearchCache(), testInferenceConfig(tempDir), zap.NewNop())
	ctx := context.Background()

	gateway.On("SearchByImage", ctx, []byte("jpeg-bytes"), "look.jpg", 20).
		Return([]search.Result{}, nil).Once()

	_, err := service.SearchByImage(ctx, bytes.NewReader([]byte("jpeg-bytes")), "look.jpg", 0)
	require.NoError(t, err)
	assertDirEmpty(t, tempDir)

	// Upstream failure must not leak the staged file either.
	gateway.On("SearchByImage", ctx, []byte("jpeg-bytes"), "look.jpg", 20).
		Return(nil, shared.ErrSearchUnavailable).Once()

	_, err = service.SearchByImage(ctx, bytes.NewReader([]byte("jpeg-bytes")), "look.jpg", 0)
	assert.ErrorIs(t, err, shared.ErrSearchUnavailable)
	assertDirEmpty(t, tempDir)
}

func TestSearchService_SearchByImage_EmptyUploadRejected(t *testing.T) {
	gateway := new(MockInferenceGateway)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	tempDir := t.TempDir()
	service := NewSearchService(gateway, products, shops, cache.NewInMemorySearchCache(), testInferenceConfig(tempDir), zap.NewNop())

	_, err := service.SearchByImage(context.Background(), bytes.NewReader(nil), "look.jpg", 0)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_IMAGE", domainErr.Code)
	assertDirEmpty(t, tempDir)
	gateway.AssertNotCalled(t, "SearchByImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchService_DetectRegions_Passthrough(t *testing.T) {
	gateway := new(MockInferenceGateway)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	service := newTestSearchService(t, gateway, products, shops)
	ctx := context.Background()

	candidates := []search.RegionCandidate{
		{Label: "jacket", Box: []float64{10, 20, 110, 220}, Score: 0.92},
	}
	gateway.On("DetectRegions", ctx, []byte("jpeg-bytes"), "fit.jpg").Return(candidates, nil)

	resp, err := service.DetectRegions(ctx, bytes.NewReader([]byte("jpeg-bytes")), "fit.jpg")

	require.NoError(t, err)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "jacket", resp.Candidates[0].Label)
}

func TestSearchService_Merge_MalformedExternalIDDropped(t *testing.T) {
	gateway := new(MockInferenceGateway)
	products := new(MockProductRepository)
	shops := new(MockShopRepository)
	service := newTestSearchService(t, gateway, products, shops)
	ctx := context.Background()

	sellerShop := createTestShop(t)
	product := createTestProduct(t, sellerShop.ID, "Silk Scarf")

	gateway.On("SearchByText", ctx, "scarf", 20).Return([]search.Result{
		{ExternalID: "not-a-uuid", Similarity: 0.99},
		{ExternalID: product.ID.String(), Similarity: 0.80},
	}, nil)
	products.On("FindActiveByIDs", ctx, []uuid.UUID{product.ID}).
		Return([]catalog.Product{*product}, nil)
	shops.On("FindByID", ctx, sellerShop.ID).Return(sellerShop, nil)

	resp, err := service.SearchByText(ctx, TextSearchRequest{Query: "scarf"})

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, product.ID, resp.Results[0].ProductID)
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
