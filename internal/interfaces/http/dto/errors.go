package dto

import (
	"net/http"
	"strings"
)

// Standardized error codes used by the HTTP layer
const (
	ErrCodeUnknown      = "ERR_UNKNOWN"
	ErrCodeInternal     = "ERR_INTERNAL"
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeNotFound     = "ERR_NOT_FOUND"
	ErrCodeConflict     = "ERR_CONFLICT"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeRateLimited  = "ERR_RATE_LIMITED"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back to the suffix heuristics in
// GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:      http.StatusInternalServerError,
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeRateLimited:  http.StatusTooManyRequests,

	// Auth
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"FORBIDDEN":           http.StatusForbidden,

	// Conflicts
	"ALREADY_EXISTS":          http.StatusConflict,
	"ALREADY_PAID":            http.StatusConflict,
	"AWB_ALREADY_ASSIGNED":    http.StatusConflict,
	"CONCURRENCY_CONFLICT":    http.StatusConflict,
	"CONCURRENT_MODIFICATION": http.StatusConflict,

	// Business rule violations
	"CART_EMPTY":             http.StatusUnprocessableEntity,
	"NO_ITEMS":               http.StatusUnprocessableEntity,
	"CHECKOUT_NOT_READY":     http.StatusUnprocessableEntity,
	"ORDER_NOT_CONFIRMED":    http.StatusUnprocessableEntity,
	"PRODUCT_UNAVAILABLE":    http.StatusUnprocessableEntity,
	"PROMO_EXPIRED":          http.StatusUnprocessableEntity,
	"PROMO_INACTIVE":         http.StatusUnprocessableEntity,
	"PROMO_NOT_APPLICABLE":   http.StatusUnprocessableEntity,
	"PROMO_BELOW_MINIMUM":    http.StatusUnprocessableEntity,
	"INVALID_STATE":          http.StatusUnprocessableEntity,
	"INVALID_STATUS":         http.StatusUnprocessableEntity,
	"INVALID_PAYMENT_METHOD": http.StatusUnprocessableEntity,

	// Upstream gateway failures
	"GATEWAY_ERROR":       http.StatusBadGateway,
	"GATEWAY_UNAVAILABLE": http.StatusBadGateway,
	"PROVIDER_ERROR":      http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unmapped codes are classified by naming convention: *_NOT_FOUND maps
// to 404, *_TAKEN and *_EXISTS to 409, INVALID_* to 400. Anything else
// is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND") || code == "NOT_FOUND":
		return http.StatusNotFound
	case strings.HasSuffix(code, "_TAKEN") || strings.HasSuffix(code, "_EXISTS"):
		return http.StatusConflict
	case strings.HasPrefix(code, "INVALID_") || strings.HasPrefix(code, "UNSUPPORTED_"):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
