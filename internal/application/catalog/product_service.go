package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stylehub/backend/internal/domain/catalog"
	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/domain/shop"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

const indexSyncTimeout = 30 * time.Second

// ProductService handles seller catalog management and public browsing
type ProductService struct {
	products catalog.ProductRepository
	shops    shop.Repository
	storage  ImageStorage
	indexer  IndexSyncer
	logger   *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	products catalog.ProductRepository,
	shops shop.Repository,
	storage ImageStorage,
	indexer IndexSyncer,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		products: products,
		shops:    shops,
		storage:  storage,
		indexer:  indexer,
		logger:   logger,
	}
}

// Create adds a new product to the seller's shop
func (s *ProductService) Create(ctx context.Context, accountID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	ownShop, err := s.shops.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(ownShop.ID, req.Name, req.Description, req.BasePrice)
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("shop_id", ownShop.ID.String()))

	resp := ToProductResponse(product)
	return &resp, nil
}

// Get returns a product by id. Inactive products are only visible to their owner.
func (s *ProductService) Get(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.ErrNotFound
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetForSeller returns a product regardless of active state, owner only
func (s *ProductService) GetForSeller(ctx context.Context, accountID, productID uuid.UUID) (*ProductResponse, error) {
	product, _, err := s.ownedProduct(ctx, accountID, productID)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns active products for the storefront
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := buildProductFilter(filter)
	domainFilter.Filters["is_active"] = true

	products, err := s.products.FindActive(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.products.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return toProductResponses(products), total, nil
}

// ListByShop returns a shop's active products for the storefront
func (s *ProductService) ListByShop(ctx context.Context, shopID uuid.UUID, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := buildProductFilter(filter)
	domainFilter.Filters["shop_id"] = shopID
	domainFilter.Filters["is_active"] = true

	products, err := s.products.FindByShop(ctx, shopID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.products.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return toProductResponses(products), total, nil
}

// ListForSeller returns all of the seller's own products, active or not
func (s *ProductService) ListForSeller(ctx context.Context, accountID uuid.UUID, filter ProductListFilter) ([]ProductResponse, int64, error) {
	ownShop, err := s.shops.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}

	domainFilter := buildProductFilter(filter)
	domainFilter.Filters["shop_id"] = ownShop.ID

	products, err := s.products.FindByShop(ctx, ownShop.ID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.products.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return toProductResponses(products), total, nil
}

// Update modifies a product; only the shop owner may update
func (s *ProductService) Update(ctx context.Context, accountID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, _, err := s.ownedProduct(ctx, accountID, productID)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, req.Description, req.BasePrice); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// SetActive activates or deactivates a product
func (s *ProductService) SetActive(ctx context.Context, accountID, productID uuid.UUID, active bool) (*ProductResponse, error) {
	product, _, err := s.ownedProduct(ctx, accountID, productID)
	if err != nil {
		return nil, err
	}
	if active {
		product.Activate()
	} else {
		product.Deactivate()
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// AddImage uploads an image, attaches it to the product gallery and
// asynchronously pushes it into the search index
func (s *ProductService) AddImage(ctx context.Context, accountID, productID uuid.UUID, data []byte, contentType string) (*ProductResponse, error) {
	product, _, err := s.ownedProduct(ctx, accountID, productID)
	if err != nil {
		return nil, err
	}

	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Unsupported image type")
	}
	if len(data) == 0 {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Image data cannot be empty")
	}

	storageKey := fmt.Sprintf("products/%s/%s%s", productID, uuid.New(), ext)
	publicURL, err := s.storage.Upload(ctx, storageKey, data, contentType)
	if err != nil {
		s.logger.Error("Image upload failed",
			zap.String("product_id", productID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to store product image")
	}

	if err := product.AddImage(publicURL); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	// Index sync is best effort; search lags briefly if it fails.
	go func(id, key string, img []byte) {
		syncCtx, cancel := context.WithTimeout(context.Background(), indexSyncTimeout)
		defer cancel()
		if err := s.indexer.IndexImage(syncCtx, id, key, img); err != nil {
			s.logger.Warn("Search index sync failed",
				zap.String("product_id", id),
				zap.String("image", key),
				zap.Error(err))
		}
	}(productID.String(), storageKey, data)

	resp := ToProductResponse(product)
	return &resp, nil
}

// RemoveImage detaches an image from the product and cleans up storage and index
func (s *ProductService) RemoveImage(ctx context.Context, accountID, productID uuid.UUID, imageURL string) (*ProductResponse, error) {
	product, _, err := s.ownedProduct(ctx, accountID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.RemoveImage(imageURL); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.cleanupImages(productID.String(), []string{imageURL})

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product and cleans up its images
func (s *ProductService) Delete(ctx context.Context, accountID, productID uuid.UUID) error {
	product, _, err := s.ownedProduct(ctx, accountID, productID)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}

	if len(product.Images) > 0 {
		s.cleanupImages(productID.String(), product.Images)
	}

	s.logger.Info("Product deleted", zap.String("product_id", productID.String()))
	return nil
}

func (s *ProductService) cleanupImages(productID string, imageURLs []string) {
	keys := make([]string, 0, len(imageURLs))
	for _, url := range imageURLs {
		keys = append(keys, storageKeyFromURL(url))
	}
	go func() {
		syncCtx, cancel := context.WithTimeout(context.Background(), indexSyncTimeout)
		defer cancel()
		if err := s.indexer.DeleteImages(syncCtx, productID, keys); err != nil {
			s.logger.Warn("Search index cleanup failed",
				zap.String("product_id", productID),
				zap.Error(err))
		}
		for _, key := range keys {
			if err := s.storage.Delete(syncCtx, key); err != nil {
				s.logger.Warn("Image cleanup failed",
					zap.String("key", key),
					zap.Error(err))
			}
		}
	}()
}

func (s *ProductService) ownedProduct(ctx context.Context, accountID, productID uuid.UUID) (*catalog.Product, *shop.Shop, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	ownShop, err := s.shops.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, nil, shared.ErrForbidden
	}
	if product.ShopID != ownShop.ID {
		return nil, nil, shared.ErrForbidden
	}
	return product, ownShop, nil
}

// storageKeyFromURL recovers the object key from a public image URL.
// Keys always start with the products/ prefix.
func storageKeyFromURL(url string) string {
	if idx := strings.Index(url, "products/"); idx >= 0 {
		return url[idx:]
	}
	return url
}

func buildProductFilter(filter ProductListFilter) shared.Filter {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	return shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.SortBy,
		OrderDir: filter.SortDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
}

func toProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
