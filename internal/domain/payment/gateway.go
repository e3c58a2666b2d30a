package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// Payment creation errors
	ErrInvalidOrderID     = errors.New("payment: invalid order ID")
	ErrInvalidOrderNumber = errors.New("payment: invalid order number")
	ErrInvalidAmount      = errors.New("payment: invalid payment amount")
	ErrInvalidCustomer    = errors.New("payment: invalid customer details")
	ErrInvalidCallbackURL = errors.New("payment: invalid callback URL")

	// Gateway errors
	ErrGatewayNotConfigured   = errors.New("payment: gateway not configured")
	ErrGatewayNotEnabled      = errors.New("payment: gateway not enabled")
	ErrGatewayRequestFailed   = errors.New("payment: gateway request failed")
	ErrGatewayInvalidResponse = errors.New("payment: invalid gateway response")
	ErrInvalidSignature       = errors.New("payment: invalid callback signature")
	ErrUnknownGateway         = errors.New("payment: unknown gateway type")
)

// GatewayType identifies an online payment gateway
type GatewayType string

const (
	GatewayTypeRazorpay GatewayType = "RAZORPAY"
	GatewayTypePayU     GatewayType = "PAYU"
)

// IsValid returns true if the gateway type is known
func (t GatewayType) IsValid() bool {
	switch t {
	case GatewayTypeRazorpay, GatewayTypePayU:
		return true
	default:
		return false
	}
}

// String returns the string representation of GatewayType
func (t GatewayType) String() string {
	return string(t)
}

// FlowKind describes how the client completes the payment
type FlowKind string

const (
	// FlowKindCheckoutJS means the client opens the gateway's JS checkout
	// with the returned gateway order ID (Razorpay).
	FlowKindCheckoutJS FlowKind = "CHECKOUT_JS"
	// FlowKindFormPost means the client auto-submits a signed HTML form
	// to the gateway's payment page (PayU).
	FlowKindFormPost FlowKind = "FORM_POST"
)

// CreateOrderRequest asks a gateway to open a payment for an order
type CreateOrderRequest struct {
	// OrderID is our internal order ID
	OrderID uuid.UUID
	// OrderNumber is our internal order number, used as the gateway receipt
	OrderNumber string
	// Amount is the payable amount in rupees
	Amount decimal.Decimal
	// Currency is the payment currency (default: INR)
	Currency string
	// CustomerName, CustomerEmail and CustomerPhone prefill the gateway form
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	// SuccessURL and FailureURL are where the gateway sends the browser back
	SuccessURL string
	FailureURL string
	// Notes is additional key-value data attached to the gateway order
	Notes map[string]string
}

// Validate validates the create order request
func (r *CreateOrderRequest) Validate() error {
	if r.OrderID == uuid.Nil {
		return ErrInvalidOrderID
	}
	if r.OrderNumber == "" {
		return ErrInvalidOrderNumber
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if r.CustomerEmail == "" || r.CustomerPhone == "" {
		return ErrInvalidCustomer
	}
	return nil
}

// CreateOrderResponse carries what the client needs to start the payment
type CreateOrderResponse struct {
	// GatewayOrderID is the payment order ID in the gateway
	GatewayOrderID string
	// GatewayType identifies which gateway opened this order
	GatewayType GatewayType
	// Flow tells the client how to proceed
	Flow FlowKind
	// KeyID is the public key the client-side SDK needs (Razorpay)
	KeyID string
	// FormAction and FormFields describe the auto-submit form (PayU)
	FormAction string
	FormFields map[string]string
	// AmountMinor is the amount in the gateway's minor unit (paise)
	AmountMinor int64
	// Currency echoes the payment currency
	Currency string
}

// CallbackResult is the verified outcome of a gateway callback
type CallbackResult struct {
	// GatewayType identifies which gateway sent the callback
	GatewayType GatewayType
	// GatewayOrderID is the payment order ID in the gateway
	GatewayOrderID string
	// GatewayTxnID is the gateway's payment/transaction reference
	GatewayTxnID string
	// OrderNumber is our internal order number echoed by the gateway
	OrderNumber string
	// Success reports whether the gateway marked the payment successful
	Success bool
	// Amount is the paid amount in rupees
	Amount decimal.Decimal
	// FailureReason is the gateway's error detail when Success is false
	FailureReason string
	// PaidAt is when the gateway recorded the payment
	PaidAt *time.Time
}

// Gateway is the port interface for online payment providers. It is
// declared here in the domain layer; concrete adapters (Razorpay, PayU)
// live in the infrastructure layer.
type Gateway interface {
	// GatewayType returns the type of this gateway
	GatewayType() GatewayType

	// CreateOrder opens a payment order in the gateway and returns what
	// the client needs to complete the payment
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error)

	// VerifyCallback authenticates a gateway callback and parses the
	// outcome. Returns ErrInvalidSignature when the payload was tampered.
	VerifyCallback(ctx context.Context, params map[string]string) (*CallbackResult, error)
}

// Registry provides access to configured gateways by type
type Registry interface {
	// Get returns the gateway for the given type
	Get(gatewayType GatewayType) (Gateway, error)

	// List returns all registered gateways
	List() []Gateway

	// IsEnabled reports whether the gateway type is configured
	IsEnabled(gatewayType GatewayType) bool
}
