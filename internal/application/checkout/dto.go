package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/promo"
)

// QuoteRequest asks for the order summary of the current cart
type QuoteRequest struct {
	PromoCode string `form:"promo_code" json:"promo_code"`
}

// QuoteResponse is the order summary plus any promo feedback
type QuoteResponse struct {
	Subtotal    decimal.Decimal             `json:"subtotal"`
	Discount    decimal.Decimal             `json:"discount"`
	Shipping    decimal.Decimal             `json:"shipping"`
	Taxes       decimal.Decimal             `json:"taxes"`
	Total       decimal.Decimal             `json:"total"`
	PromoCode   string                      `json:"promo_code,omitempty"`
	Suggestions []promo.ThresholdSuggestion `json:"suggestions,omitempty"`
}

// PlaceOrderRequest represents the final checkout submission
type PlaceOrderRequest struct {
	AddressID     uuid.UUID           `json:"address_id" binding:"required"`
	PaymentMethod order.PaymentMethod `json:"payment_method" binding:"required"`
	PromoCode     string              `json:"promo_code"`
	// IdempotencyKey comes from the Idempotency-Key header, not the body
	IdempotencyKey string `json:"-"`
}

// PaymentInstructions tells the client how to complete a prepaid order
type PaymentInstructions struct {
	Flow           payment.FlowKind  `json:"flow"`
	GatewayOrderID string            `json:"gateway_order_id,omitempty"`
	KeyID          string            `json:"key_id,omitempty"`
	FormAction     string            `json:"form_action,omitempty"`
	FormFields     map[string]string `json:"form_fields,omitempty"`
	AmountMinor    int64             `json:"amount_minor,omitempty"`
	Currency       string            `json:"currency,omitempty"`
}

// PlaceOrderResponse is the outcome of a checkout submission
type PlaceOrderResponse struct {
	OrderID       uuid.UUID            `json:"order_id"`
	OrderNumber   string               `json:"order_number"`
	Status        order.Status         `json:"status"`
	PaymentStatus order.PaymentStatus  `json:"payment_status"`
	Total         decimal.Decimal      `json:"total"`
	Payment       *PaymentInstructions `json:"payment,omitempty"`
}

// CallbackResponse is returned after a gateway callback is processed
type CallbackResponse struct {
	OrderID       uuid.UUID           `json:"order_id"`
	OrderNumber   string              `json:"order_number"`
	Status        order.Status        `json:"status"`
	PaymentStatus order.PaymentStatus `json:"payment_status"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
}

func toQuoteResponse(q checkout.Quote, code string, suggestions []promo.ThresholdSuggestion) QuoteResponse {
	return QuoteResponse{
		Subtotal:    q.Subtotal,
		Discount:    q.Discount,
		Shipping:    q.Shipping,
		Taxes:       q.Taxes,
		Total:       q.Total,
		PromoCode:   code,
		Suggestions: suggestions,
	}
}
