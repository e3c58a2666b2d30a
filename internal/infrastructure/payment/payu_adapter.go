package payment

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// PayUAdapter implements the payment gateway port for PayU. The client
// auto-submits a signed HTML form to PayU's hosted payment page; PayU
// posts the outcome back with a reverse hash.
type PayUAdapter struct {
	cfg config.PayUConfig
}

// NewPayUAdapter creates a new PayU adapter
func NewPayUAdapter(cfg config.PayUConfig) (*PayUAdapter, error) {
	if cfg.MerchantKey == "" || cfg.Salt == "" {
		return nil, payment.ErrGatewayNotConfigured
	}
	return &PayUAdapter{cfg: cfg}, nil
}

// GatewayType returns the gateway type
func (a *PayUAdapter) GatewayType() payment.GatewayType {
	return payment.GatewayTypePayU
}

// CreateOrder builds the signed form the client posts to PayU. PayU has
// no server-side order creation; the transaction opens when the form is
// submitted, keyed by our order number.
func (a *PayUAdapter) CreateOrder(ctx context.Context, req *payment.CreateOrderRequest) (*payment.CreateOrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	amount := req.Amount.StringFixed(2)
	productInfo := "Order " + req.OrderNumber
	firstName := firstWord(req.CustomerName)

	fields := map[string]string{
		"key":         a.cfg.MerchantKey,
		"txnid":       req.OrderNumber,
		"amount":      amount,
		"productinfo": productInfo,
		"firstname":   firstName,
		"email":       req.CustomerEmail,
		"phone":       req.CustomerPhone,
		"surl":        req.SuccessURL,
		"furl":        req.FailureURL,
	}
	fields["hash"] = a.requestHash(req.OrderNumber, amount, productInfo, firstName, req.CustomerEmail)

	return &payment.CreateOrderResponse{
		GatewayOrderID: req.OrderNumber,
		GatewayType:    payment.GatewayTypePayU,
		Flow:           payment.FlowKindFormPost,
		FormAction:     a.cfg.BaseURL + "/_payment",
		FormFields:     fields,
		AmountMinor:    req.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
		Currency:       "INR",
	}, nil
}

// VerifyCallback authenticates a PayU callback using the reverse hash
func (a *PayUAdapter) VerifyCallback(ctx context.Context, params map[string]string) (*payment.CallbackResult, error) {
	status := params["status"]
	txnid := params["txnid"]
	hash := params["hash"]
	if status == "" || txnid == "" || hash == "" {
		return nil, payment.ErrInvalidSignature
	}

	expected := a.responseHash(status, params["udf5"], params["udf4"], params["udf3"], params["udf2"], params["udf1"],
		params["email"], params["firstname"], params["productinfo"], params["amount"], txnid)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(hash))) != 1 {
		return nil, payment.ErrInvalidSignature
	}

	result := &payment.CallbackResult{
		GatewayType:    payment.GatewayTypePayU,
		GatewayOrderID: txnid,
		GatewayTxnID:   params["mihpayid"],
		OrderNumber:    txnid,
		Success:        strings.EqualFold(status, "success"),
	}
	if amount, err := decimal.NewFromString(params["amount"]); err == nil {
		result.Amount = amount
	}
	if result.Success {
		now := time.Now()
		result.PaidAt = &now
	} else {
		result.FailureReason = params["error_Message"]
		if result.FailureReason == "" {
			result.FailureReason = params["error"]
		}
		if result.FailureReason == "" {
			result.FailureReason = "payment " + strings.ToLower(status)
		}
	}
	return result, nil
}

// requestHash is SHA-512 of
// key|txnid|amount|productinfo|firstname|email|udf1..udf5||||||salt
func (a *PayUAdapter) requestHash(txnid, amount, productInfo, firstName, email string) string {
	parts := []string{
		a.cfg.MerchantKey, txnid, amount, productInfo, firstName, email,
		"", "", "", "", "", // udf1..udf5, unused
		"", "", "", "", "",
		a.cfg.Salt,
	}
	return sha512Hex(strings.Join(parts, "|"))
}

// responseHash is the reverse sequence with the salt first:
// salt|status|udf5..udf1|email|firstname|productinfo|amount|txnid|key
func (a *PayUAdapter) responseHash(status, udf5, udf4, udf3, udf2, udf1, email, firstName, productInfo, amount, txnid string) string {
	parts := []string{
		a.cfg.Salt, status,
		"", "", "", "", "",
		udf5, udf4, udf3, udf2, udf1,
		email, firstName, productInfo, amount, txnid,
		a.cfg.MerchantKey,
	}
	return sha512Hex(strings.Join(parts, "|"))
}

func sha512Hex(data string) string {
	sum := sha512.Sum512([]byte(data))
	return hex.EncodeToString(sum[:])
}

func firstWord(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, ' '); idx > 0 {
		return s[:idx]
	}
	if s == "" {
		return "Customer"
	}
	return s
}

var _ payment.Gateway = (*PayUAdapter)(nil)
