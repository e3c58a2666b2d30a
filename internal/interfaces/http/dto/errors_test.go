package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus_MappedCodes(t *testing.T) {
	cases := map[string]int{
		ErrCodeValidation:      http.StatusBadRequest,
		ErrCodeUnauthorized:    http.StatusUnauthorized,
		ErrCodeNotFound:        http.StatusNotFound,
		ErrCodeRateLimited:     http.StatusTooManyRequests,
		"INVALID_CREDENTIALS":  http.StatusUnauthorized,
		"ALREADY_PAID":         http.StatusConflict,
		"AWB_ALREADY_ASSIGNED": http.StatusConflict,
		"CART_EMPTY":           http.StatusUnprocessableEntity,
		"CHECKOUT_NOT_READY":   http.StatusUnprocessableEntity,
		"PROMO_EXPIRED":        http.StatusUnprocessableEntity,
		"GATEWAY_ERROR":        http.StatusBadGateway,
	}
	for code, want := range cases {
		assert.Equal(t, want, GetHTTPStatus(code), "code %s", code)
	}
}

func TestGetHTTPStatus_ConventionFallback(t *testing.T) {
	cases := map[string]int{
		"ORDER_NOT_FOUND":      http.StatusNotFound,
		"NOT_FOUND":            http.StatusNotFound,
		"EMAIL_TAKEN":          http.StatusConflict,
		"SLUG_EXISTS":          http.StatusConflict,
		"INVALID_PIN_CODE":     http.StatusBadRequest,
		"UNSUPPORTED_GATEWAY":  http.StatusBadRequest,
		"SOMETHING_UNEXPECTED": http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, GetHTTPStatus(code), "code %s", code)
	}
}

func TestNewSuccessResponseWithMeta_RoundsPagesUp(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 21, 1, 10)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(21), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("CART_EMPTY", "cart has no items")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Equal(t, "CART_EMPTY", resp.Error.Code)
	assert.Equal(t, "cart has no items", resp.Error.Message)
}
