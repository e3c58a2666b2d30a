package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/storefront/backend/internal/application/checkout"
)

// IdempotencyKeyHeader carries the client-generated key that makes
// place-order submissions safe to retry
const IdempotencyKeyHeader = "Idempotency-Key"

// CheckoutHandler handles checkout quote and order placement
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Quote godoc
// @Summary  Compute the order summary for the current cart
// @Tags     checkout
// @Produce  json
// @Param    promo_code query string false "Promo code to apply"
// @Success  200 {object} APIResponse[checkoutapp.QuoteResponse]
// @Security BearerAuth
// @Router   /checkout/quote [get]
func (h *CheckoutHandler) Quote(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req checkoutapp.QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	quote, err := h.checkoutService.Quote(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// PlaceOrder godoc
// @Summary  Place an order from the current cart
// @Tags     checkout
// @Accept   json
// @Produce  json
// @Param    Idempotency-Key header string false "Client-generated idempotency key"
// @Param    request body checkoutapp.PlaceOrderRequest true "Checkout submission"
// @Success  201 {object} APIResponse[checkoutapp.PlaceOrderResponse]
// @Security BearerAuth
// @Router   /checkout/place-order [post]
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req checkoutapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)

	resp, err := h.checkoutService.PlaceOrder(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
