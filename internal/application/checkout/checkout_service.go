package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	promoapp "github.com/storefront/backend/internal/application/promo"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/promo"
	"github.com/storefront/backend/internal/domain/shared"
)

// IdempotencyStore remembers which order a place-order key produced so a
// retried submission returns the original order instead of a duplicate.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (uuid.UUID, bool, error)
	Set(ctx context.Context, key string, orderID uuid.UUID, ttl time.Duration) error
}

// CheckoutService orchestrates the quote and place-order flow
type CheckoutService struct {
	customerRepo    identity.CustomerRepository
	cartRepo        cart.CartRepository
	orderRepo       order.Repository
	promoService    *promoapp.PromoService
	gatewayRegistry payment.Registry
	idempotency     IdempotencyStore
	idempotencyTTL  time.Duration
	baseURL         string
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	customerRepo identity.CustomerRepository,
	cartRepo cart.CartRepository,
	orderRepo order.Repository,
	promoService *promoapp.PromoService,
	gatewayRegistry payment.Registry,
	idempotency IdempotencyStore,
	idempotencyTTL time.Duration,
	baseURL string,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		customerRepo:    customerRepo,
		cartRepo:        cartRepo,
		orderRepo:       orderRepo,
		promoService:    promoService,
		gatewayRegistry: gatewayRegistry,
		idempotency:     idempotency,
		idempotencyTTL:  idempotencyTTL,
		baseURL:         baseURL,
		logger:          logger,
	}
}

// SetEventPublisher sets the event publisher for analytics and
// cross-context integration. Publishing is best effort.
func (s *CheckoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Quote computes the order summary for the customer's current cart
func (s *CheckoutService) Quote(ctx context.Context, customerID uuid.UUID, req QuoteRequest) (*QuoteResponse, error) {
	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			empty := toQuoteResponse(checkout.ComputeQuote(nil, nil), "", nil)
			return &empty, nil
		}
		return nil, err
	}

	lines := promoapp.CartLines(c)

	var applied *promo.PromoCode
	appliedCode := ""
	if req.PromoCode != "" {
		p, err := s.promoService.Resolve(ctx, req.PromoCode, lines)
		if err != nil {
			return nil, err
		}
		if err := p.CheckAgainst(lines, time.Now()); err != nil {
			return nil, err
		}
		applied = p
		appliedCode = p.Code
	}

	q := checkout.ComputeQuote(lines, applied)

	var suggestions []promo.ThresholdSuggestion
	if applied == nil {
		suggestions = promo.SuggestionsFor(q.Subtotal)
	}

	response := toQuoteResponse(q, appliedCode, suggestions)
	return &response, nil
}

// PlaceOrder runs the checkout: validates readiness and the cart,
// recomputes the quote server-side, creates the order, and either
// confirms it (COD) or opens a gateway payment (prepaid). The order
// record is created before payment and is never rolled back - a failed
// or abandoned payment leaves a PENDING order for reconciliation.
func (s *CheckoutService) PlaceOrder(ctx context.Context, customerID uuid.UUID, req PlaceOrderRequest) (*PlaceOrderResponse, error) {
	if req.IdempotencyKey != "" && s.idempotency != nil {
		if orderID, ok, err := s.idempotency.Get(ctx, req.IdempotencyKey); err == nil && ok {
			return s.replayOrder(ctx, orderID)
		}
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !customer.Readiness().Ready {
		return nil, shared.NewDomainError("CHECKOUT_NOT_READY", "Complete your contact and shipping details before placing an order")
	}

	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.NewDomainError("CART_EMPTY", "Cannot place an order with an empty cart")
	}

	var shipTo *identity.CustomerAddress
	for idx := range customer.Addresses {
		if customer.Addresses[idx].ID == req.AddressID {
			shipTo = &customer.Addresses[idx]
		}
	}
	if shipTo == nil {
		return nil, shared.NewDomainError("ADDRESS_NOT_FOUND", "The selected address does not exist")
	}
	address, err := shipTo.ToPostalAddress()
	if err != nil {
		return nil, err
	}

	// Recompute the quote from the server-side cart; client totals are
	// never trusted.
	lines := promoapp.CartLines(c)
	var applied *promo.PromoCode
	promoCode := ""
	if req.PromoCode != "" {
		p, err := s.promoService.Resolve(ctx, req.PromoCode, lines)
		if err != nil {
			return nil, err
		}
		if err := p.CheckAgainst(lines, time.Now()); err != nil {
			return nil, err
		}
		applied = p
		promoCode = p.Code
	}
	q := checkout.ComputeQuote(lines, applied)

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(orderNumber, order.CustomerInfo{
		CustomerID: customer.ID,
		Name:       customer.FirstName + " " + customer.LastName,
		Email:      customer.Email,
		Phone:      customer.Phone,
	}, address, req.PaymentMethod, order.CostBreakdown{
		Subtotal: q.Subtotal,
		Discount: q.Discount,
		Shipping: q.Shipping,
		Taxes:    q.Taxes,
		Total:    q.Total,
	}, promoCode)
	if err != nil {
		return nil, err
	}

	for idx := range c.Items {
		item := &c.Items[idx]
		if err := o.AddItemSnapshot(item.ProductID, item.VariantID, item.Name, item.Category,
			item.UnitPrice, item.Quantity, item.ImageURL, item.VariantLabels); err != nil {
			return nil, err
		}
	}

	response := &PlaceOrderResponse{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Total:       o.Total,
	}

	if req.PaymentMethod == order.PaymentMethodCOD {
		if err := o.ConfirmCOD(); err != nil {
			return nil, err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return nil, err
		}

		// COD has no payment step; the cart is cleared immediately
		c.Clear()
		if err := s.cartRepo.Save(ctx, c); err != nil {
			s.logger.Error("Failed to clear cart after COD order",
				zap.String("order_number", o.OrderNumber), zap.Error(err))
		}
	} else {
		gateway, err := s.gatewayRegistry.Get(payment.GatewayType(req.PaymentMethod))
		if err != nil {
			return nil, shared.NewDomainError("GATEWAY_UNAVAILABLE", "The selected payment method is not available")
		}

		// The order is persisted before the gateway call so an abandoned
		// payment still leaves a traceable record.
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return nil, err
		}

		gwResp, err := gateway.CreateOrder(ctx, &payment.CreateOrderRequest{
			OrderID:       o.ID,
			OrderNumber:   o.OrderNumber,
			Amount:        o.Total,
			Currency:      "INR",
			CustomerName:  o.Customer.Name,
			CustomerEmail: o.Customer.Email,
			CustomerPhone: o.Customer.Phone,
			SuccessURL:    s.baseURL + "/api/v1/payments/" + gatewayPathSegment(gateway.GatewayType()) + "/callback",
			FailureURL:    s.baseURL + "/api/v1/payments/" + gatewayPathSegment(gateway.GatewayType()) + "/callback",
		})
		if err != nil {
			s.logger.Error("Gateway order creation failed",
				zap.String("order_number", o.OrderNumber), zap.Error(err))
			return nil, shared.NewDomainError("GATEWAY_ERROR", "Could not start the payment, please try again")
		}

		if err := o.AttachGatewayOrder(gwResp.GatewayOrderID); err != nil {
			return nil, err
		}
		if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
			return nil, err
		}

		response.Payment = &PaymentInstructions{
			Flow:           gwResp.Flow,
			GatewayOrderID: gwResp.GatewayOrderID,
			KeyID:          gwResp.KeyID,
			FormAction:     gwResp.FormAction,
			FormFields:     gwResp.FormFields,
			AmountMinor:    gwResp.AmountMinor,
			Currency:       gwResp.Currency,
		}
	}

	response.Status = o.Status
	response.PaymentStatus = o.PaymentStatus

	if req.IdempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Set(ctx, req.IdempotencyKey, o.ID, s.idempotencyTTL); err != nil {
			s.logger.Warn("Failed to record idempotency key", zap.Error(err))
		}
	}

	s.publishEvents(ctx, o)

	return response, nil
}

// HandleCallback processes a verified-or-not gateway callback. A valid
// success marks the order paid and clears the cart; a failure records
// the attempt and leaves the order pending.
func (s *CheckoutService) HandleCallback(ctx context.Context, gatewayType payment.GatewayType, params map[string]string) (*CallbackResponse, error) {
	gateway, err := s.gatewayRegistry.Get(gatewayType)
	if err != nil {
		return nil, shared.NewDomainError("GATEWAY_UNAVAILABLE", "Unknown payment gateway")
	}

	result, err := gateway.VerifyCallback(ctx, params)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			s.logger.Warn("Rejected callback with bad signature", zap.String("gateway", gatewayType.String()))
			return nil, shared.NewDomainError("INVALID_SIGNATURE", "Payment verification failed")
		}
		return nil, err
	}

	o, err := s.findCallbackOrder(ctx, result)
	if err != nil {
		return nil, err
	}

	if result.Success {
		if err := o.MarkPaid(result.GatewayTxnID); err != nil {
			// A replayed success callback is answered with the current state
			if o.IsPaid() {
				return toCallbackResponse(o), nil
			}
			return nil, err
		}

		if c, err := s.cartRepo.FindByCustomer(ctx, o.Customer.CustomerID); err == nil {
			c.Clear()
			if err := s.cartRepo.Save(ctx, c); err != nil {
				s.logger.Error("Failed to clear cart after payment",
					zap.String("order_number", o.OrderNumber), zap.Error(err))
			}
		}
	} else {
		if err := o.MarkPaymentFailed(result.FailureReason); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	return toCallbackResponse(o), nil
}

func (s *CheckoutService) findCallbackOrder(ctx context.Context, result *payment.CallbackResult) (*order.Order, error) {
	if result.GatewayOrderID != "" {
		if o, err := s.orderRepo.FindByGatewayOrderID(ctx, result.GatewayOrderID); err == nil {
			return o, nil
		}
	}
	if result.OrderNumber != "" {
		return s.orderRepo.FindByOrderNumber(ctx, result.OrderNumber)
	}
	return nil, shared.ErrNotFound
}

func (s *CheckoutService) replayOrder(ctx context.Context, orderID uuid.UUID) (*PlaceOrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &PlaceOrderResponse{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Total:         o.Total,
	}, nil
}

func (s *CheckoutService) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range o.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish order event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	o.ClearDomainEvents()
}

func toCallbackResponse(o *order.Order) *CallbackResponse {
	return &CallbackResponse{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		PaidAt:        o.PaidAt,
	}
}

func gatewayPathSegment(t payment.GatewayType) string {
	switch t {
	case payment.GatewayTypeRazorpay:
		return "razorpay"
	case payment.GatewayTypePayU:
		return "payu"
	}
	return "unknown"
}
