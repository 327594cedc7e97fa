package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "INVALID_TOKEN"
	ErrCodeTokenRevoked = "TOKEN_REVOKED"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeTokenRevoked: http.StatusUnauthorized,

	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"EMPTY_CART":          http.StatusUnprocessableEntity,
	"SHOP_CLOSED":         http.StatusUnprocessableEntity,
	"PRODUCT_UNAVAILABLE": http.StatusUnprocessableEntity,

	"DETECTION_FAILED":   http.StatusBadGateway,
	"UPLOAD_FAILED":      http.StatusBadGateway,
	"SEARCH_UNAVAILABLE": http.StatusServiceUnavailable,

	"REQUEST_TOO_LARGE": http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Validation-style codes (INVALID_*) map to 400; everything unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
