package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// RazorpayAdapter implements the payment gateway port for Razorpay.
// The client completes the payment through Razorpay's JS checkout using
// the gateway order ID returned by CreateOrder.
type RazorpayAdapter struct {
	cfg        config.RazorpayConfig
	httpClient *http.Client
}

// NewRazorpayAdapter creates a new Razorpay adapter
func NewRazorpayAdapter(cfg config.RazorpayConfig) (*RazorpayAdapter, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, payment.ErrGatewayNotConfigured
	}
	return &RazorpayAdapter{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// GatewayType returns the gateway type
func (a *RazorpayAdapter) GatewayType() payment.GatewayType {
	return payment.GatewayTypeRazorpay
}

// razorpayOrderRequest is the body of POST /v1/orders
type razorpayOrderRequest struct {
	Amount   int64             `json:"amount"` // in paise
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// razorpayOrderResponse is the relevant part of Razorpay's order object
type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type razorpayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder opens a payment order in Razorpay
func (a *RazorpayAdapter) CreateOrder(ctx context.Context, req *payment.CreateOrderRequest) (*payment.CreateOrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	amountMinor := req.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	body := razorpayOrderRequest{
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  req.OrderNumber,
		Notes:    req.Notes,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to marshal order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to build request: %w", err)
	}
	httpReq.SetBasicAuth(a.cfg.KeyID, a.cfg.KeySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrGatewayRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrGatewayInvalidResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp razorpayErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Description != "" {
			return nil, fmt.Errorf("%w: %s - %s", payment.ErrGatewayRequestFailed,
				errResp.Error.Code, errResp.Error.Description)
		}
		return nil, fmt.Errorf("%w: status %d", payment.ErrGatewayRequestFailed, resp.StatusCode)
	}

	var orderResp razorpayOrderResponse
	if err := json.Unmarshal(respBody, &orderResp); err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrGatewayInvalidResponse, err)
	}
	if orderResp.ID == "" {
		return nil, fmt.Errorf("%w: missing order id", payment.ErrGatewayInvalidResponse)
	}

	return &payment.CreateOrderResponse{
		GatewayOrderID: orderResp.ID,
		GatewayType:    payment.GatewayTypeRazorpay,
		Flow:           payment.FlowKindCheckoutJS,
		KeyID:          a.cfg.KeyID,
		AmountMinor:    amountMinor,
		Currency:       currency,
	}, nil
}

// VerifyCallback authenticates a Razorpay checkout callback. The
// signature is HMAC-SHA256 of "order_id|payment_id" with the key secret.
func (a *RazorpayAdapter) VerifyCallback(ctx context.Context, params map[string]string) (*payment.CallbackResult, error) {
	orderID := params["razorpay_order_id"]
	paymentID := params["razorpay_payment_id"]
	signature := params["razorpay_signature"]

	// Razorpay reports failures without a signature; the error payload
	// identifies the order instead.
	if errDescription := params["error_description"]; signature == "" && errDescription != "" {
		failedOrderID := orderID
		if failedOrderID == "" {
			failedOrderID = params["error_metadata_order_id"]
		}
		return &payment.CallbackResult{
			GatewayType:    payment.GatewayTypeRazorpay,
			GatewayOrderID: failedOrderID,
			GatewayTxnID:   params["error_metadata_payment_id"],
			Success:        false,
			FailureReason:  errDescription,
		}, nil
	}

	if orderID == "" || paymentID == "" || signature == "" {
		return nil, payment.ErrInvalidSignature
	}

	expected := razorpaySignature(a.cfg.KeySecret, orderID+"|"+paymentID)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) != 1 {
		return nil, payment.ErrInvalidSignature
	}

	now := time.Now()
	return &payment.CallbackResult{
		GatewayType:    payment.GatewayTypeRazorpay,
		GatewayOrderID: orderID,
		GatewayTxnID:   paymentID,
		Success:        true,
		PaidAt:         &now,
	}, nil
}

func razorpaySignature(secret, data string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

var _ payment.Gateway = (*RazorpayAdapter)(nil)
