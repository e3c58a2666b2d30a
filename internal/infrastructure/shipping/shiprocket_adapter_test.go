package shipping

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shipping"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// shiprocketStub is a fake Shiprocket API backed by httptest. Handlers
// are registered per path; every authenticated route checks the bearer
// token issued by the login handler.
type shiprocketStub struct {
	t          *testing.T
	mux        *http.ServeMux
	server     *httptest.Server
	loginCalls int32
	token      string
}

func newShiprocketStub(t *testing.T) *shiprocketStub {
	stub := &shiprocketStub{t: t, mux: http.NewServeMux(), token: "sr-token-1"}
	stub.mux.HandleFunc("/v1/external/auth/login", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ops@shop.example.com", body["email"])
		assert.Equal(t, "sr-secret", body["password"])
		atomic.AddInt32(&stub.loginCalls, 1)
		writeJSON(w, http.StatusOK, map[string]string{"token": stub.token})
	})
	stub.server = httptest.NewServer(stub.mux)
	t.Cleanup(stub.server.Close)
	return stub
}

// authed registers a handler that rejects requests lacking the current token
func (s *shiprocketStub) authed(path string, handler http.HandlerFunc) {
	s.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		handler(w, r)
	})
}

func (s *shiprocketStub) adapter() *ShiprocketAdapter {
	adapter, err := NewShiprocketAdapter(config.ShiprocketConfig{
		Enabled:        true,
		Email:          "ops@shop.example.com",
		Password:       "sr-secret",
		BaseURL:        s.server.URL,
		PickupLocation: "Primary",
		TokenTTL:       time.Hour,
	}, zap.NewNop())
	require.NoError(s.t, err)
	return adapter
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func validBooking() *shipping.BookingRequest {
	return &shipping.BookingRequest{
		OrderNumber:    "ORD-20260901-0001",
		OrderDate:      time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
		PickupLocation: "Primary",
		CustomerName:   "Asha Rao",
		CustomerEmail:  "asha@example.com",
		CustomerPhone:  "9876543210",
		AddressLine1:   "14 MG Road",
		City:           "Bengaluru",
		State:          "Karnataka",
		Country:        "India",
		PinCode:        "560001",
		Items: []shipping.BookingItem{
			{Name: "Wild Honey 500g", SKU: "HNY-500", Units: 2, UnitPrice: decimal.NewFromInt(499)},
		},
		PaymentMode:    "Prepaid",
		SubTotal:       decimal.NewFromInt(998),
		CollectibleAmt: decimal.Zero,
		WeightKg:       decimal.NewFromFloat(1.2),
		LengthCm:       decimal.NewFromInt(20),
		BreadthCm:      decimal.NewFromInt(15),
		HeightCm:       decimal.NewFromInt(10),
	}
}

func TestNewShiprocketAdapter_RequiresCredentials(t *testing.T) {
	_, err := NewShiprocketAdapter(config.ShiprocketConfig{BaseURL: "https://apiv2.shiprocket.in"}, zap.NewNop())
	assert.ErrorIs(t, err, shipping.ErrProviderNotConfigured)
}

func TestBookShipment_RegistersOrder(t *testing.T) {
	stub := newShiprocketStub(t)
	stub.authed("/v1/external/orders/create/adhoc", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ORD-20260901-0001", body["order_id"])
		assert.Equal(t, "2026-09-01 10:30", body["order_date"])
		assert.Equal(t, "Primary", body["pickup_location"])
		assert.Equal(t, "Asha", body["billing_customer_name"])
		assert.Equal(t, "Rao", body["billing_last_name"])
		assert.Equal(t, "Prepaid", body["payment_method"])
		assert.Equal(t, "998.00", body["sub_total"])
		assert.Equal(t, "1.20", body["weight"])
		assert.Equal(t, true, body["shipping_is_billing"])
		// Shiprocket returns numeric ids; keep them numeric here to
		// prove the adapter tolerates both forms via json.Number.
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"order_id":    812345,
			"shipment_id": "908877",
			"status":      "NEW",
		})
	})

	resp, err := stub.adapter().BookShipment(context.Background(), validBooking())
	require.NoError(t, err)
	assert.Equal(t, "812345", resp.ProviderOrderID)
	assert.Equal(t, "908877", resp.ProviderShipID)
	assert.Equal(t, "NEW", resp.Status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.loginCalls))
}

func TestBookShipment_RejectsInvalidRequest(t *testing.T) {
	stub := newShiprocketStub(t)
	adapter := stub.adapter()

	booking := validBooking()
	booking.Items = nil
	_, err := adapter.BookShipment(context.Background(), booking)
	assert.ErrorIs(t, err, shipping.ErrInvalidShipmentOrder)

	booking = validBooking()
	booking.WeightKg = decimal.Zero
	_, err = adapter.BookShipment(context.Background(), booking)
	assert.ErrorIs(t, err, shipping.ErrInvalidPackage)

	// nothing reached the stub
	assert.Equal(t, int32(0), atomic.LoadInt32(&stub.loginCalls))
}

func TestBookShipment_MissingIDsIsInvalidResponse(t *testing.T) {
	stub := newShiprocketStub(t)
	stub.authed("/v1/external/orders/create/adhoc", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "NEW"})
	})

	_, err := stub.adapter().BookShipment(context.Background(), validBooking())
	assert.ErrorIs(t, err, shipping.ErrProviderInvalidResponse)
}

func TestDoJSON_RetriesOnceAfterExpiredToken(t *testing.T) {
	stub := newShiprocketStub(t)
	var attempts int32
	stub.mux.HandleFunc("/v1/external/orders/create/adhoc", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			// simulate a token revoked server-side
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"order_id":    1,
			"shipment_id": 2,
			"status":      "NEW",
		})
	})

	resp, err := stub.adapter().BookShipment(context.Background(), validBooking())
	require.NoError(t, err)
	assert.Equal(t, "1", resp.ProviderOrderID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
	assert.Equal(t, int32(2), atomic.LoadInt32(&stub.loginCalls), "401 should trigger a fresh login")
}

func TestDoJSON_PersistentUnauthorizedFails(t *testing.T) {
	stub := newShiprocketStub(t)
	stub.mux.HandleFunc("/v1/external/orders/create/adhoc", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := stub.adapter().BookShipment(context.Background(), validBooking())
	assert.ErrorIs(t, err, shipping.ErrProviderAuthFailed)
}

func TestDoJSON_ReusesCachedToken(t *testing.T) {
	stub := newShiprocketStub(t)
	stub.authed("/v1/external/courier/generate/label", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"label_created": 1,
			"label_url":     "https://cdn.shiprocket.in/labels/908877.pdf",
		})
	})

	adapter := stub.adapter()
	for i := 0; i < 3; i++ {
		_, err := adapter.GenerateLabel(context.Background(), "908877")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.loginCalls))
}

func TestAssignAWB_Assigned(t *testing.T) {
	stub := newShiprocketStub(t)
	stub.authed("/v1/external/courier/assign/awb", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "908877", body["shipment_id"])
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"awb_assign_status": 1,
			"response": map[string]interface{}{
				"data": map[string]interface{}{
					"awb_code":           "141123221084922",
					"courier_name":       "Delhivery Surface",
					"courier_company_id": 51,
				},
			},
		})
	})

	resp, err := stub.adapter().AssignAWB(context.Background(), "908877")
	require.NoError(t, err)
	assert.Equal(t, "141123221084922", resp.AWB)
	assert.Equal(t, "Delhivery Surface", resp.Courier)
	assert.Equal(t, "51", resp.CourierID)
}

func TestAssignAWB_NotAssignedYet(t *testing.T) {
	stub := newShiprocketStub(t)
	stub.authed("/v1/external/courier/assign/awb", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"awb_assign_status": 0})
	})

	_, err := stub.adapter().AssignAWB(context.Background(), "908877")
	assert.ErrorIs(t, err, shipping.ErrAWBNotAssigned)
}

func TestGenerateLabel_EmptyURLIsInvalidResponse(t *testing.T) {
	stub := newShiprocketStub(t)
	stub.authed("/v1/external/courier/generate/label", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"label_created": 0})
	})

	_, err := stub.adapter().GenerateLabel(context.Background(), "908877")
	assert.ErrorIs(t, err, shipping.ErrProviderInvalidResponse)
}

func TestSchedulePickup_ParsesScheduledDate(t *testing.T) {
	stub := newShiprocketStub(t)
	stub.authed("/v1/external/courier/generate/pickup", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"pickup_status": 1,
			"response": map[string]interface{}{
				"pickup_scheduled_date": "2026-09-02 14:00:00",
				"pickup_token_number":   "PKP-7741",
			},
		})
	})

	resp, err := stub.adapter().SchedulePickup(context.Background(), "908877")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC), resp.ScheduledAt)
	assert.Equal(t, "PKP-7741", resp.TokenNumber)
}

func TestTrack_NormalizesScansAndStatus(t *testing.T) {
	stub := newShiprocketStub(t)
	stub.authed("/v1/external/courier/track/awb/141123221084922", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"tracking_data": map[string]interface{}{
				"shipment_status": 18,
				"shipment_track": []map[string]interface{}{
					{"current_status": "IN TRANSIT", "edd": "2026-09-05 00:00:00"},
				},
				"shipment_track_activities": []map[string]interface{}{
					{
						"date":            "2026-09-02 08:15:00",
						"activity":        "Shipment picked up",
						"location":        "Bengaluru_Hub",
						"sr-status-label": "PICKED UP",
					},
					{
						"date":            "2026-09-03 02:40:00",
						"activity":        "In transit to destination hub",
						"location":        "Hyderabad_Hub",
						"sr-status-label": "IN TRANSIT",
					},
				},
			},
		})
	})

	resp, err := stub.adapter().Track(context.Background(), "141123221084922")
	require.NoError(t, err)
	assert.Equal(t, shipping.StatusInTransit, resp.Status)
	assert.Equal(t, "IN TRANSIT", resp.ProviderStatus)
	require.NotNil(t, resp.EstimatedArrival)
	assert.Equal(t, time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), *resp.EstimatedArrival)
	require.Len(t, resp.Scans, 2)
	assert.Equal(t, "Shipment picked up", resp.Scans[0].Activity)
	assert.Equal(t, "Bengaluru_Hub", resp.Scans[0].Location)
	assert.Equal(t, time.Date(2026, 9, 2, 8, 15, 0, 0, time.UTC), resp.Scans[0].OccurredAt)
}

func TestTrack_UnknownAWB(t *testing.T) {
	stub := newShiprocketStub(t)
	stub.authed("/v1/external/courier/track/awb/000000", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := stub.adapter().Track(context.Background(), "000000")
	assert.ErrorIs(t, err, shipping.ErrShipmentNotFound)
}

func TestCancelShipment(t *testing.T) {
	stub := newShiprocketStub(t)
	stub.authed("/v1/external/orders/cancel", func(w http.ResponseWriter, r *http.Request) {
		var body map[string][]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"812345"}, body["ids"])
		writeJSON(w, http.StatusOK, map[string]string{"message": "cancelled"})
	})

	err := stub.adapter().CancelShipment(context.Background(), "812345")
	assert.NoError(t, err)
}

func TestSplitCustomerName(t *testing.T) {
	cases := []struct {
		in, first, last string
	}{
		{"Asha Rao", "Asha", "Rao"},
		{"  Asha Rao  ", "Asha", "Rao"},
		{"Asha Kumari Rao", "Asha", "Kumari Rao"},
		{"Asha", "Asha", ""},
	}
	for _, tt := range cases {
		first, last := splitCustomerName(tt.in)
		assert.Equal(t, tt.first, first, "input %q", tt.in)
		assert.Equal(t, tt.last, last, "input %q", tt.in)
	}
}

func TestMapProviderStatus(t *testing.T) {
	cases := map[string]shipping.Status{
		"NEW":                        shipping.StatusPending,
		"INVOICED":                   shipping.StatusProcessing,
		"awb assigned":               shipping.StatusProcessing,
		"PICKUP SCHEDULED":           shipping.StatusProcessing,
		"OUT FOR PICKUP":             shipping.StatusProcessing,
		"READY TO SHIP":              shipping.StatusReadyToShip,
		"ready to ship":              shipping.StatusReadyToShip,
		"PICKED UP":                  shipping.StatusPickedUp,
		"SHIPPED":                    shipping.StatusPickedUp,
		"IN TRANSIT":                 shipping.StatusInTransit,
		"REACHED AT DESTINATION HUB": shipping.StatusInTransit,
		"MISROUTED":                  shipping.StatusInTransit,
		"OUT FOR DELIVERY":           shipping.StatusOutForDel,
		"DELIVERED":                  shipping.StatusDelivered,
		"RTO INITIATED":              shipping.StatusReturned,
		"RTO DELIVERED":              shipping.StatusReturned,
		"CANCELLED":                  shipping.StatusCancelled,
		"":                           shipping.Status(""),
		"UNTRANSLATED CARRIER CODE":  shipping.Status(""),
	}
	for input, want := range cases {
		assert.Equal(t, want, mapProviderStatus(input), "status %q", input)
	}
}
