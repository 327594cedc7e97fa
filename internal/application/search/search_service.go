package search

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stylehub/backend/internal/domain/catalog"
	"github.com/stylehub/backend/internal/domain/search"
	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/domain/shop"
	"github.com/stylehub/backend/internal/infrastructure/cache"
	"github.com/stylehub/backend/internal/infrastructure/config"
)

// maxUploadBytes bounds a single search upload
const maxUploadBytes = 10 << 20

// SearchService proxies visual and text search through the external
// inference service and joins the matches with live catalog data
type SearchService struct {
	gateway  InferenceGateway
	products catalog.ProductRepository
	shops    shop.Repository
	cache    cache.SearchCache
	cfg      config.InferenceConfig
	logger   *zap.Logger
}

// NewSearchService creates a new search service
func NewSearchService(
	gateway InferenceGateway,
	products catalog.ProductRepository,
	shops shop.Repository,
	searchCache cache.SearchCache,
	cfg config.InferenceConfig,
	logger *zap.Logger,
) *SearchService {
	return &SearchService{
		gateway:  gateway,
		products: products,
		shops:    shops,
		cache:    searchCache,
		cfg:      cfg,
		logger:   logger,
	}
}

// DetectRegions finds clothing regions in an uploaded image
func (s *SearchService) DetectRegions(ctx context.Context, upload io.Reader, filename string) (*DetectResponse, error) {
	data, cleanup, err := s.stageUpload(upload, filename)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	candidates, err := s.gateway.DetectRegions(ctx, data, filename)
	if err != nil {
		return nil, err
	}
	return &DetectResponse{Candidates: candidates}, nil
}

// SearchByImage runs a visual similarity search over the catalog. The
// upload is staged to a temp file for the duration of the request and
// always removed afterwards.
func (s *SearchService) SearchByImage(ctx context.Context, upload io.Reader, filename string, topK int) (*SearchResponse, error) {
	data, cleanup, err := s.stageUpload(upload, filename)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if topK <= 0 {
		topK = s.cfg.DefaultTopK
	}

	results, err := s.gateway.SearchByImage(ctx, data, filename, topK)
	if err != nil {
		return nil, err
	}

	merged, err := s.merge(ctx, results)
	if err != nil {
		return nil, err
	}
	return &SearchResponse{Results: merged, TotalFound: len(merged)}, nil
}

// SearchByText runs a text-to-product search. Results for repeated
// queries are served from a short-lived cache.
func (s *SearchService) SearchByText(ctx context.Context, req TextSearchRequest) (*SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, shared.ErrInvalidQuery
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultTopK
	}

	key := cache.TextSearchKey(query, limit)
	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return &SearchResponse{Results: cached, TotalFound: len(cached)}, nil
	}

	results, err := s.gateway.SearchByText(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	merged, err := s.merge(ctx, results)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, merged, s.cfg.TextCacheTTL); err != nil {
		s.logger.Warn("Failed to cache text search results", zap.Error(err))
	}

	return &SearchResponse{Results: merged, TotalFound: len(merged)}, nil
}

// merge joins inference matches with the live catalog, keeping the
// inference rank and silently dropping products that no longer exist or
// are inactive
func (s *SearchService) merge(ctx context.Context, results []search.Result) ([]search.MergedResult, error) {
	merged := []search.MergedResult{}
	if len(results) == 0 {
		return merged, nil
	}

	ids := make([]uuid.UUID, 0, len(results))
	for _, r := range results {
		id, err := uuid.Parse(r.ExternalID)
		if err != nil {
			s.logger.Warn("Dropping result with malformed product id",
				zap.String("external_id", r.ExternalID))
			continue
		}
		ids = append(ids, id)
	}

	products, err := s.products.FindActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	productsByID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		productsByID[products[i].ID] = &products[i]
	}

	shopsByID := make(map[uuid.UUID]search.ShopSummary)
	for _, r := range results {
		id, err := uuid.Parse(r.ExternalID)
		if err != nil {
			continue
		}
		product, ok := productsByID[id]
		if !ok {
			continue
		}

		summary, ok := shopsByID[product.ShopID]
		if !ok {
			summary = s.shopSummary(ctx, product.ShopID)
			shopsByID[product.ShopID] = summary
		}

		merged = append(merged, search.MergedResult{
			ProductID:    product.ID,
			Name:         product.Name,
			BasePrice:    product.BasePrice,
			Images:       product.Images,
			Shop:         summary,
			Similarity:   r.Similarity,
			MatchedImage: r.MatchedImage,
		})
	}
	return merged, nil
}

func (s *SearchService) shopSummary(ctx context.Context, shopID uuid.UUID) search.ShopSummary {
	found, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		s.logger.Warn("Failed to load shop for search result",
			zap.String("shop_id", shopID.String()),
			zap.Error(err))
		return search.ShopSummary{ID: shopID}
	}
	return search.ShopSummary{
		ID:      found.ID,
		Name:    found.Name,
		LogoURL: found.LogoURL,
	}
}

// stageUpload copies the upload to a temp file and returns its bytes with
// a cleanup func that removes the file. The file exists only for the
// lifetime of a single request.
func (s *SearchService) stageUpload(upload io.Reader, filename string) ([]byte, func(), error) {
	tmp, err := os.CreateTemp(s.cfg.TempDir, "search-*"+filepath.Ext(filename))
	if err != nil {
		return nil, nil, shared.ErrSearchUnavailable
	}
	cleanup := func() {
		if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to remove staged upload",
				zap.String("path", tmp.Name()),
				zap.Error(err))
		}
	}

	written, err := io.Copy(tmp, io.LimitReader(upload, maxUploadBytes+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cleanup()
		return nil, nil, shared.ErrSearchUnavailable
	}
	if written == 0 {
		cleanup()
		return nil, nil, shared.NewDomainError("INVALID_IMAGE", "Uploaded image is empty")
	}
	if written > maxUploadBytes {
		cleanup()
		return nil, nil, shared.NewDomainError("INVALID_IMAGE", "Uploaded image exceeds the size limit")
	}

	data, err := os.ReadFile(tmp.Name())
	if err != nil {
		cleanup()
		return nil, nil, shared.ErrSearchUnavailable
	}
	return data, cleanup, nil
}
