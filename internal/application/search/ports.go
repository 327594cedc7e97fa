package search

import (
	"context"

	"github.com/stylehub/backend/internal/domain/search"
)

// InferenceGateway is the outbound port to the external inference service
type InferenceGateway interface {
	DetectRegions(ctx context.Context, imageBytes []byte, filename string) ([]search.RegionCandidate, error)
	SearchByImage(ctx context.Context, imageBytes []byte, filename string, topK int) ([]search.Result, error)
	SearchByText(ctx context.Context, query string, limit int) ([]search.Result, error)
}
