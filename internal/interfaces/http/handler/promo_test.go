package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	promoapp "github.com/storefront/backend/internal/application/promo"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/promo"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

type mockPromoRepo struct{ mock.Mock }

func (m *mockPromoRepo) FindByID(ctx context.Context, id uuid.UUID) (*promo.PromoCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promo.PromoCode), args.Error(1)
}

func (m *mockPromoRepo) FindByCode(ctx context.Context, code string) (*promo.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promo.PromoCode), args.Error(1)
}

func (m *mockPromoRepo) FindAll(ctx context.Context, filter shared.Filter) ([]promo.PromoCode, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]promo.PromoCode), args.Error(1)
}

func (m *mockPromoRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockPromoRepo) Save(ctx context.Context, p *promo.PromoCode) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPromoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPromoRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockCartRepo struct{ mock.Mock }

func (m *mockCartRepo) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *mockCartRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *mockCartRepo) Save(ctx context.Context, c *cart.Cart) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCartRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type promoHandlerFixture struct {
	promoRepo  *mockPromoRepo
	cartRepo   *mockCartRepo
	router     *gin.Engine
	customerID uuid.UUID
}

func newPromoHandlerFixture(t *testing.T, authenticated bool) *promoHandlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &promoHandlerFixture{
		promoRepo:  new(mockPromoRepo),
		cartRepo:   new(mockCartRepo),
		customerID: uuid.New(),
	}

	h := NewPromoHandler(promoapp.NewPromoService(f.promoRepo, f.cartRepo))

	r := gin.New()
	if authenticated {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.JWTCustomerIDKey, f.customerID.String())
		})
	}
	r.POST("/promos/check", h.Check)
	r.GET("/promos/suggestions", h.Suggestions)
	f.router = r
	return f
}

func (f *promoHandlerFixture) cartWithSubtotal(t *testing.T, subtotal int64) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(f.customerID)
	require.NoError(t, err)
	price := valueobject.NewMoneyINR(decimal.NewFromInt(subtotal))
	_, err = c.AddItem(uuid.New(), nil, "Wild Honey 500g", "honey", price, 1, "", "")
	require.NoError(t, err)
	return c
}

func postCheck(router *gin.Engine, code string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"code": code})
	req := httptest.NewRequest(http.MethodPost, "/promos/check", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPromoCheck_AppliesStoredPromo(t *testing.T) {
	f := newPromoHandlerFixture(t, true)

	stored, err := promo.NewPromoCode("WELCOME10", promo.DiscountTypePercentage, decimal.NewFromInt(10), promo.ScopeAll)
	require.NoError(t, err)
	f.cartRepo.On("FindByCustomer", mock.Anything, f.customerID).Return(f.cartWithSubtotal(t, 2000), nil)
	f.promoRepo.On("FindByCode", mock.Anything, "WELCOME10").Return(stored, nil)

	w := postCheck(f.router, "welcome10")

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Code     string          `json:"code"`
			Discount decimal.Decimal `json:"discount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "WELCOME10", resp.Data.Code)
	assert.True(t, resp.Data.Discount.Equal(decimal.NewFromInt(200)), "10%% of 2000, got %s", resp.Data.Discount)
}

func TestPromoCheck_ThresholdFallbackWhenNotStored(t *testing.T) {
	f := newPromoHandlerFixture(t, true)

	f.cartRepo.On("FindByCustomer", mock.Anything, f.customerID).Return(f.cartWithSubtotal(t, 6000), nil)
	f.promoRepo.On("FindByCode", mock.Anything, promo.MidThresholdCode).Return(nil, shared.ErrNotFound)

	w := postCheck(f.router, promo.MidThresholdCode)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), promo.MidThresholdCode)
}

func TestPromoCheck_UnknownCodeIs404(t *testing.T) {
	f := newPromoHandlerFixture(t, true)

	f.cartRepo.On("FindByCustomer", mock.Anything, f.customerID).Return(f.cartWithSubtotal(t, 2000), nil)
	f.promoRepo.On("FindByCode", mock.Anything, "NOPE99").Return(nil, shared.ErrNotFound)

	w := postCheck(f.router, "NOPE99")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PROMO_NOT_FOUND")
}

func TestPromoCheck_EmptyCartIs422(t *testing.T) {
	f := newPromoHandlerFixture(t, true)

	empty, err := cart.NewCart(f.customerID)
	require.NoError(t, err)
	f.cartRepo.On("FindByCustomer", mock.Anything, f.customerID).Return(empty, nil)

	w := postCheck(f.router, "WELCOME10")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "CART_EMPTY")
}

func TestPromoCheck_MissingCodeIs400(t *testing.T) {
	f := newPromoHandlerFixture(t, true)

	w := postCheck(f.router, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPromoCheck_RequiresAuthentication(t *testing.T) {
	f := newPromoHandlerFixture(t, false)

	w := postCheck(f.router, "WELCOME10")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPromoSuggestions_ReturnsBestThreshold(t *testing.T) {
	f := newPromoHandlerFixture(t, true)

	f.cartRepo.On("FindByCustomer", mock.Anything, f.customerID).Return(f.cartWithSubtotal(t, 12000), nil)

	req := httptest.NewRequest(http.MethodGet, "/promos/suggestions", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), promo.HighThresholdCode)
	assert.NotContains(t, w.Body.String(), promo.MidThresholdCode)
}

func TestPromoSuggestions_NoCartIsEmptyList(t *testing.T) {
	f := newPromoHandlerFixture(t, true)

	f.cartRepo.On("FindByCustomer", mock.Anything, f.customerID).Return(nil, shared.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/promos/suggestions", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
