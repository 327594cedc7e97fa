// Package search holds the projections exchanged with the external
// inference service. Results are ephemeral and never persisted.
package search

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Result is the normalized shape of one inference match, regardless of
// which upstream endpoint produced it.
type Result struct {
	ExternalID   string
	Similarity   float64
	MatchedImage string
}

// RegionCandidate is one detected clothing region in an uploaded image
type RegionCandidate struct {
	Label string    `json:"label"`
	Box   []float64 `json:"box"`
	Score float64   `json:"score"`
}

// ShopSummary is the slice of shop data attached to merged results
type ShopSummary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"shop_name"`
	LogoURL string    `json:"logo_url"`
}

// MergedResult joins one inference match with its live catalog row.
// Output ordering always follows the inference rank, restricted to
// products that still exist and are active.
type MergedResult struct {
	ProductID    uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	BasePrice    decimal.Decimal `json:"base_price"`
	Images       []string        `json:"images"`
	Shop         ShopSummary     `json:"shop"`
	Similarity   float64         `json:"similarity"`
	MatchedImage string          `json:"matched_image,omitempty"`
}
