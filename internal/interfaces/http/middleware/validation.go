package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/stylehub/backend/internal/infrastructure/logger"
	"github.com/stylehub/backend/internal/interfaces/http/dto"
)

// SetupValidator makes validation errors report JSON/form field names
// instead of Go struct field names
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// FormatValidationErrors turns binding errors into the standard envelope
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: validationMessage(e),
			})
		}
	}

	if len(details) == 0 {
		return dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, err.Error(), requestID)
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError writes a 400 with field-level details
func HandleValidationError(c *gin.Context, err error) {
	requestID := c.GetString(logger.RequestIDKey)
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, requestID))
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "url":
		return "Invalid URL format"
	default:
		return "Invalid value"
	}
}
