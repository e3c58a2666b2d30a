package payment

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/infrastructure/config"
)

func payuTestConfig() config.PayUConfig {
	return config.PayUConfig{
		Enabled:     true,
		MerchantKey: "payu_test_key",
		Salt:        "payu_test_salt",
		BaseURL:     "https://test.payu.in",
	}
}

func payuHash(t *testing.T, parts ...string) string {
	t.Helper()
	sum := sha512.Sum512([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func TestNewPayUAdapter_RequiresCredentials(t *testing.T) {
	_, err := NewPayUAdapter(config.PayUConfig{MerchantKey: "only-key"})
	assert.ErrorIs(t, err, payment.ErrGatewayNotConfigured)
}

func TestPayUCreateOrder_BuildsSignedForm(t *testing.T) {
	adapter, err := NewPayUAdapter(payuTestConfig())
	require.NoError(t, err)

	resp, err := adapter.CreateOrder(context.Background(), &payment.CreateOrderRequest{
		OrderID:       uuid.New(),
		OrderNumber:   "ORD-20260901-0005",
		Amount:        decimal.RequireFromString("1499.50"),
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "9876543210",
		SuccessURL:    "https://shop.example.com/api/v1/payments/payu/callback",
		FailureURL:    "https://shop.example.com/api/v1/payments/payu/callback",
	})

	require.NoError(t, err)
	assert.Equal(t, payment.FlowKindFormPost, resp.Flow)
	assert.Equal(t, "https://test.payu.in/_payment", resp.FormAction)
	assert.Equal(t, int64(149950), resp.AmountMinor)

	fields := resp.FormFields
	assert.Equal(t, "payu_test_key", fields["key"])
	assert.Equal(t, "ORD-20260901-0005", fields["txnid"])
	assert.Equal(t, "1499.50", fields["amount"])
	assert.Equal(t, "Asha", fields["firstname"], "only the first name goes to PayU")

	expected := payuHash(t,
		"payu_test_key", "ORD-20260901-0005", "1499.50", "Order ORD-20260901-0005", "Asha", "asha@example.com",
		"", "", "", "", "",
		"", "", "", "", "",
		"payu_test_salt",
	)
	assert.Equal(t, expected, fields["hash"])
}

func payuSuccessParams(t *testing.T, a *PayUAdapter) map[string]string {
	t.Helper()
	params := map[string]string{
		"status":      "success",
		"txnid":       "ORD-20260901-0005",
		"mihpayid":    "403993715527158194",
		"amount":      "1499.50",
		"productinfo": "Order ORD-20260901-0005",
		"firstname":   "Asha",
		"email":       "asha@example.com",
	}
	params["hash"] = a.responseHash(params["status"], "", "", "", "", "",
		params["email"], params["firstname"], params["productinfo"], params["amount"], params["txnid"])
	return params
}

func TestPayUVerifyCallback_Success(t *testing.T) {
	adapter, err := NewPayUAdapter(payuTestConfig())
	require.NoError(t, err)

	result, err := adapter.VerifyCallback(context.Background(), payuSuccessParams(t, adapter))

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "ORD-20260901-0005", result.OrderNumber)
	assert.Equal(t, "403993715527158194", result.GatewayTxnID)
	assert.True(t, result.Amount.Equal(decimal.RequireFromString("1499.50")))
	assert.NotNil(t, result.PaidAt)
}

func TestPayUVerifyCallback_Failure(t *testing.T) {
	adapter, err := NewPayUAdapter(payuTestConfig())
	require.NoError(t, err)

	params := payuSuccessParams(t, adapter)
	params["status"] = "failure"
	params["error_Message"] = "Transaction declined"
	params["hash"] = adapter.responseHash("failure", "", "", "", "", "",
		params["email"], params["firstname"], params["productinfo"], params["amount"], params["txnid"])

	result, err := adapter.VerifyCallback(context.Background(), params)

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Transaction declined", result.FailureReason)
	assert.Nil(t, result.PaidAt)
}

func TestPayUVerifyCallback_TamperedAmount(t *testing.T) {
	adapter, err := NewPayUAdapter(payuTestConfig())
	require.NoError(t, err)

	params := payuSuccessParams(t, adapter)
	params["amount"] = "1.00"

	_, err = adapter.VerifyCallback(context.Background(), params)
	assert.ErrorIs(t, err, payment.ErrInvalidSignature)
}

func TestPayUVerifyCallback_MissingHash(t *testing.T) {
	adapter, err := NewPayUAdapter(payuTestConfig())
	require.NoError(t, err)

	params := payuSuccessParams(t, adapter)
	delete(params, "hash")

	_, err = adapter.VerifyCallback(context.Background(), params)
	assert.ErrorIs(t, err, payment.ErrInvalidSignature)
}
