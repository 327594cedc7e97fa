package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"UNAUTHORIZED", http.StatusUnauthorized},
		{"TOKEN_EXPIRED", http.StatusUnauthorized},
		{"FORBIDDEN", http.StatusForbidden},
		{"INVALID_STATE", http.StatusUnprocessableEntity},
		{"EMPTY_CART", http.StatusUnprocessableEntity},
		{"SHOP_CLOSED", http.StatusUnprocessableEntity},
		{"INVALID_QUERY", http.StatusBadRequest},
		{"INVALID_QUANTITY", http.StatusBadRequest},
		{"INVALID_TOKEN", http.StatusUnauthorized},
		{"DETECTION_FAILED", http.StatusBadGateway},
		{"SEARCH_UNAVAILABLE", http.StatusServiceUnavailable},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Nil(t, resp.Error)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("NOT_FOUND", "Resource not found")

	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Nil(t, resp.Data)
}
