package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// AccountSortFields contains allowed sort fields for accounts
var AccountSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"username":       true,
	"phone_number":   true,
	"status":         true,
	"role":           true,
	"last_active_at": true,
}

// ShopSortFields contains allowed sort fields for shops
var ShopSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"status":     true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"base_price": true,
	"is_active":  true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"order_code":        true,
	"status":            true,
	"total_amount":      true,
	"status_changed_at": true,
}
