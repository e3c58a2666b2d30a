package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/payment"
)

// PaymentCallbackHandler handles payment gateway callback endpoints.
// These are called by the client after Razorpay checkout completes and
// by PayU's server-to-server redirect, and are not authenticated.
type PaymentCallbackHandler struct {
	BaseHandler
	checkoutService *checkoutapp.CheckoutService
}

// NewPaymentCallbackHandler creates a new PaymentCallbackHandler
func NewPaymentCallbackHandler(checkoutService *checkoutapp.CheckoutService) *PaymentCallbackHandler {
	return &PaymentCallbackHandler{checkoutService: checkoutService}
}

// HandleRazorpayCallback godoc
// @Summary  Process a Razorpay payment callback
// @Tags     payments
// @Accept   json
// @Produce  json
// @Success  200 {object} APIResponse[checkoutapp.CallbackResponse]
// @Router   /payments/razorpay/callback [post]
func (h *PaymentCallbackHandler) HandleRazorpayCallback(c *gin.Context) {
	params, err := jsonBodyToParams(c)
	if err != nil {
		h.BadRequest(c, "Invalid callback payload")
		return
	}
	h.processCallback(c, payment.GatewayTypeRazorpay, params)
}

// HandlePayUCallback godoc
// @Summary  Process a PayU payment callback
// @Tags     payments
// @Accept   application/x-www-form-urlencoded
// @Produce  json
// @Success  200 {object} APIResponse[checkoutapp.CallbackResponse]
// @Router   /payments/payu/callback [post]
func (h *PaymentCallbackHandler) HandlePayUCallback(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		h.BadRequest(c, "Invalid callback payload")
		return
	}
	params := make(map[string]string, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	h.processCallback(c, payment.GatewayTypePayU, params)
}

func (h *PaymentCallbackHandler) processCallback(c *gin.Context, gatewayType payment.GatewayType, params map[string]string) {
	result, err := h.checkoutService.HandleCallback(c.Request.Context(), gatewayType, params)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// jsonBodyToParams flattens a JSON callback body into string params
func jsonBodyToParams(c *gin.Context) (map[string]string, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	params := make(map[string]string, len(raw))
	for key, value := range raw {
		if s, ok := value.(string); ok {
			params[key] = s
		}
	}
	return params, nil
}
