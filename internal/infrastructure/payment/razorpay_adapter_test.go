package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/infrastructure/config"
)

func razorpayTestConfig(baseURL string) config.RazorpayConfig {
	return config.RazorpayConfig{
		Enabled:   true,
		KeyID:     "rzp_test_key",
		KeySecret: "rzp_test_secret",
		BaseURL:   baseURL,
	}
}

func TestNewRazorpayAdapter_RequiresCredentials(t *testing.T) {
	_, err := NewRazorpayAdapter(config.RazorpayConfig{KeyID: "only-key"})
	assert.ErrorIs(t, err, payment.ErrGatewayNotConfigured)
}

func TestRazorpayCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "rzp_test_secret", pass)

		var body struct {
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
			Receipt  string `json:"receipt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(119900), body.Amount, "amount must be sent in paise")
		assert.Equal(t, "INR", body.Currency)
		assert.Equal(t, "ORD-20260901-0001", body.Receipt)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_Nxy123","amount":119900,"currency":"INR","receipt":"ORD-20260901-0001","status":"created"}`))
	}))
	defer server.Close()

	adapter, err := NewRazorpayAdapter(razorpayTestConfig(server.URL))
	require.NoError(t, err)

	resp, err := adapter.CreateOrder(context.Background(), &payment.CreateOrderRequest{
		OrderID:       uuid.New(),
		OrderNumber:   "ORD-20260901-0001",
		Amount:        decimal.NewFromInt(1199),
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "9876543210",
	})

	require.NoError(t, err)
	assert.Equal(t, "order_Nxy123", resp.GatewayOrderID)
	assert.Equal(t, payment.FlowKindCheckoutJS, resp.Flow)
	assert.Equal(t, "rzp_test_key", resp.KeyID)
	assert.Equal(t, int64(119900), resp.AmountMinor)
}

func TestRazorpayCreateOrder_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Amount exceeds maximum"}}`))
	}))
	defer server.Close()

	adapter, err := NewRazorpayAdapter(razorpayTestConfig(server.URL))
	require.NoError(t, err)

	_, err = adapter.CreateOrder(context.Background(), &payment.CreateOrderRequest{
		OrderID:       uuid.New(),
		OrderNumber:   "ORD-20260901-0002",
		Amount:        decimal.NewFromInt(100),
		CustomerEmail: "asha@example.com",
		CustomerPhone: "9876543210",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, payment.ErrGatewayRequestFailed)
	assert.Contains(t, err.Error(), "Amount exceeds maximum")
}

func signRazorpay(t *testing.T, secret, orderID, paymentID string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestRazorpayVerifyCallback_ValidSignature(t *testing.T) {
	adapter, err := NewRazorpayAdapter(razorpayTestConfig("https://api.razorpay.com"))
	require.NoError(t, err)

	params := map[string]string{
		"razorpay_order_id":   "order_Nxy123",
		"razorpay_payment_id": "pay_Nxy456",
		"razorpay_signature":  signRazorpay(t, "rzp_test_secret", "order_Nxy123", "pay_Nxy456"),
	}

	result, err := adapter.VerifyCallback(context.Background(), params)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "order_Nxy123", result.GatewayOrderID)
	assert.Equal(t, "pay_Nxy456", result.GatewayTxnID)
	assert.NotNil(t, result.PaidAt)
}

func TestRazorpayVerifyCallback_TamperedSignature(t *testing.T) {
	adapter, err := NewRazorpayAdapter(razorpayTestConfig("https://api.razorpay.com"))
	require.NoError(t, err)

	params := map[string]string{
		"razorpay_order_id":   "order_Nxy123",
		"razorpay_payment_id": "pay_Nxy456",
		"razorpay_signature":  signRazorpay(t, "wrong_secret", "order_Nxy123", "pay_Nxy456"),
	}

	_, err = adapter.VerifyCallback(context.Background(), params)
	assert.ErrorIs(t, err, payment.ErrInvalidSignature)
}

func TestRazorpayVerifyCallback_MissingFields(t *testing.T) {
	adapter, err := NewRazorpayAdapter(razorpayTestConfig("https://api.razorpay.com"))
	require.NoError(t, err)

	_, err = adapter.VerifyCallback(context.Background(), map[string]string{
		"razorpay_order_id": "order_Nxy123",
	})
	assert.ErrorIs(t, err, payment.ErrInvalidSignature)
}

func TestRazorpayVerifyCallback_FailurePayload(t *testing.T) {
	adapter, err := NewRazorpayAdapter(razorpayTestConfig("https://api.razorpay.com"))
	require.NoError(t, err)

	result, err := adapter.VerifyCallback(context.Background(), map[string]string{
		"error_description":       "Payment was declined by the bank",
		"error_metadata_order_id": "order_Nxy123",
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "order_Nxy123", result.GatewayOrderID)
	assert.Equal(t, "Payment was declined by the bank", result.FailureReason)
}
