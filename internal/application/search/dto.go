package search

import (
	"github.com/stylehub/backend/internal/domain/search"
)

// TextSearchRequest represents a text-to-product search query.
// Query is validated by the service so that blank queries surface the
// INVALID_QUERY code rather than a generic binding error.
type TextSearchRequest struct {
	Query string `json:"query" form:"query"`
	Limit int    `json:"limit" form:"limit" binding:"omitempty,min=1,max=100"`
}

// SearchResponse wraps merged search results with their total count
type SearchResponse struct {
	Results    []search.MergedResult `json:"results"`
	TotalFound int                   `json:"total_found"`
}

// DetectResponse lists the clothing regions found in an uploaded image
type DetectResponse struct {
	Candidates []search.RegionCandidate `json:"candidates"`
}
