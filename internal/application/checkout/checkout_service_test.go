package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	promoapp "github.com/storefront/backend/internal/application/promo"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/promo"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// MockCustomerRepository is a mock implementation of identity.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*identity.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *identity.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCartRepository is a mock implementation of cart.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*order.Order, error) {
	args := m.Called(ctx, gatewayOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*order.Order, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockPromoCodeRepository is a mock implementation of promo.PromoCodeRepository
type MockPromoCodeRepository struct {
	mock.Mock
}

func (m *MockPromoCodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*promo.PromoCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promo.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) FindByCode(ctx context.Context, code string) (*promo.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promo.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]promo.PromoCode, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]promo.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockPromoCodeRepository) Save(ctx context.Context, p *promo.PromoCode) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPromoCodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPromoCodeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockGateway is a mock implementation of payment.Gateway
type MockGateway struct {
	mock.Mock
	gatewayType payment.GatewayType
}

func (m *MockGateway) GatewayType() payment.GatewayType {
	return m.gatewayType
}

func (m *MockGateway) CreateOrder(ctx context.Context, req *payment.CreateOrderRequest) (*payment.CreateOrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CreateOrderResponse), args.Error(1)
}

func (m *MockGateway) VerifyCallback(ctx context.Context, params map[string]string) (*payment.CallbackResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CallbackResult), args.Error(1)
}

// MockGatewayRegistry is a mock implementation of payment.Registry
type MockGatewayRegistry struct {
	mock.Mock
}

func (m *MockGatewayRegistry) Get(gatewayType payment.GatewayType) (payment.Gateway, error) {
	args := m.Called(gatewayType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(payment.Gateway), args.Error(1)
}

func (m *MockGatewayRegistry) List() []payment.Gateway {
	args := m.Called()
	return args.Get(0).([]payment.Gateway)
}

func (m *MockGatewayRegistry) IsEnabled(gatewayType payment.GatewayType) bool {
	args := m.Called(gatewayType)
	return args.Bool(0)
}

// memIdempotency is a map-backed idempotency store for tests
type memIdempotency struct {
	entries map[string]uuid.UUID
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{entries: make(map[string]uuid.UUID)}
}

func (s *memIdempotency) Get(ctx context.Context, key string) (uuid.UUID, bool, error) {
	id, ok := s.entries[key]
	return id, ok, nil
}

func (s *memIdempotency) Set(ctx context.Context, key string, orderID uuid.UUID, ttl time.Duration) error {
	s.entries[key] = orderID
	return nil
}

type checkoutFixture struct {
	customerRepo *MockCustomerRepository
	cartRepo     *MockCartRepository
	orderRepo    *MockOrderRepository
	promoRepo    *MockPromoCodeRepository
	registry     *MockGatewayRegistry
	idempotency  *memIdempotency
	service      *CheckoutService
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		customerRepo: new(MockCustomerRepository),
		cartRepo:     new(MockCartRepository),
		orderRepo:    new(MockOrderRepository),
		promoRepo:    new(MockPromoCodeRepository),
		registry:     new(MockGatewayRegistry),
		idempotency:  newMemIdempotency(),
	}
	promoService := promoapp.NewPromoService(f.promoRepo, f.cartRepo)
	f.service = NewCheckoutService(
		f.customerRepo,
		f.cartRepo,
		f.orderRepo,
		promoService,
		f.registry,
		f.idempotency,
		time.Hour,
		"https://shop.example.com",
		zap.NewNop(),
	)
	return f
}

func readyCustomer(t *testing.T) *identity.Customer {
	t.Helper()
	c, err := identity.NewCustomer("asha@example.com", "hashed")
	require.NoError(t, err)
	c.FirstName = "Asha"
	c.LastName = "Rao"
	c.Phone = "9876543210"

	addr, err := valueobject.NewPostalAddress("Asha", "Rao", "12 MG Road", "", "Bengaluru", "Karnataka", "India", "560001")
	require.NoError(t, err)
	_, err = c.AddAddress(addr)
	require.NoError(t, err)
	return c
}

func cartWith(t *testing.T, customerID uuid.UUID, unitPrice int64, quantity int) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(customerID)
	require.NoError(t, err)
	_, err = c.AddItem(uuid.New(), nil, "Indigo Tee", "apparel",
		valueobject.NewMoneyINR(decimal.NewFromInt(unitPrice)), quantity, "", "")
	require.NoError(t, err)
	return c
}

func TestQuote_EmptyCartReturnsZeroTotals(t *testing.T) {
	f := newCheckoutFixture()
	customerID := uuid.New()

	f.cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(nil, shared.ErrNotFound)

	resp, err := f.service.Quote(context.Background(), customerID, QuoteRequest{})

	require.NoError(t, err)
	assert.True(t, resp.Subtotal.IsZero())
	assert.True(t, resp.Total.IsZero())
	assert.Empty(t, resp.PromoCode)
}

func TestQuote_AddsFlatShippingBelowThreshold(t *testing.T) {
	f := newCheckoutFixture()
	customerID := uuid.New()
	c := cartWith(t, customerID, 499, 1)

	f.cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(c, nil)

	resp, err := f.service.Quote(context.Background(), customerID, QuoteRequest{})

	require.NoError(t, err)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(499)))
	assert.True(t, resp.Shipping.Equal(decimal.NewFromInt(99)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(598)))
	// Without an applied promo the response nudges toward thresholds
	assert.NotEmpty(t, resp.Suggestions)
}

func TestQuote_DiscountNeverDrivesTotalNegative(t *testing.T) {
	f := newCheckoutFixture()
	customerID := uuid.New()
	c := cartWith(t, customerID, 100, 1)

	p, err := promo.NewPromoCode("BIGOFF", promo.DiscountTypeFixed, decimal.NewFromInt(5000), promo.ScopeAll)
	require.NoError(t, err)

	f.cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(c, nil)
	f.promoRepo.On("FindByCode", mock.Anything, "BIGOFF").Return(p, nil)

	resp, err := f.service.Quote(context.Background(), customerID, QuoteRequest{PromoCode: "BIGOFF"})

	require.NoError(t, err)
	assert.True(t, resp.Total.IsZero(), "total must clamp at zero, got %s", resp.Total)
}

func TestPlaceOrder_CODConfirmsAndClearsCart(t *testing.T) {
	f := newCheckoutFixture()
	customer := readyCustomer(t)
	c := cartWith(t, customer.ID, 499, 2)

	f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.cartRepo.On("FindByCustomer", mock.Anything, customer.ID).Return(c, nil)
	f.orderRepo.On("GenerateOrderNumber", mock.Anything).Return("ORD-20260901-0001", nil)
	f.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	f.cartRepo.On("Save", mock.Anything, c).Return(nil)

	resp, err := f.service.PlaceOrder(context.Background(), customer.ID, PlaceOrderRequest{
		AddressID:     customer.Addresses[0].ID,
		PaymentMethod: order.PaymentMethodCOD,
	})

	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, resp.Status)
	assert.Equal(t, order.PaymentStatusUnpaid, resp.PaymentStatus)
	assert.Nil(t, resp.Payment)
	assert.True(t, c.IsEmpty(), "COD checkout should clear the cart")
	f.orderRepo.AssertCalled(t, "Save", mock.Anything, mock.AnythingOfType("*order.Order"))
}

type failingPublisher struct {
	calls int
}

func (p *failingPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.calls++
	return errors.New("bus unavailable")
}

func TestPlaceOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	f := newCheckoutFixture()
	publisher := &failingPublisher{}
	f.service.SetEventPublisher(publisher)
	customer := readyCustomer(t)
	c := cartWith(t, customer.ID, 499, 2)

	f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.cartRepo.On("FindByCustomer", mock.Anything, customer.ID).Return(c, nil)
	f.orderRepo.On("GenerateOrderNumber", mock.Anything).Return("ORD-20260901-0003", nil)
	f.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	f.cartRepo.On("Save", mock.Anything, c).Return(nil)

	resp, err := f.service.PlaceOrder(context.Background(), customer.ID, PlaceOrderRequest{
		AddressID:     customer.Addresses[0].ID,
		PaymentMethod: order.PaymentMethodCOD,
	})

	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, resp.Status)
	assert.Greater(t, publisher.calls, 0, "events should still be offered to the bus")
}

func TestPlaceOrder_PrepaidStaysPendingWithInstructions(t *testing.T) {
	f := newCheckoutFixture()
	customer := readyCustomer(t)
	c := cartWith(t, customer.ID, 1200, 1)

	gw := &MockGateway{gatewayType: payment.GatewayTypeRazorpay}
	gw.On("CreateOrder", mock.Anything, mock.AnythingOfType("*payment.CreateOrderRequest")).Return(&payment.CreateOrderResponse{
		GatewayOrderID: "order_Nxy123",
		GatewayType:    payment.GatewayTypeRazorpay,
		Flow:           payment.FlowKindCheckoutJS,
		KeyID:          "rzp_test_key",
		AmountMinor:    120000,
		Currency:       "INR",
	}, nil)

	f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.cartRepo.On("FindByCustomer", mock.Anything, customer.ID).Return(c, nil)
	f.orderRepo.On("GenerateOrderNumber", mock.Anything).Return("ORD-20260901-0002", nil)
	f.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	f.orderRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	f.registry.On("Get", payment.GatewayTypeRazorpay).Return(gw, nil)

	resp, err := f.service.PlaceOrder(context.Background(), customer.ID, PlaceOrderRequest{
		AddressID:     customer.Addresses[0].ID,
		PaymentMethod: order.PaymentMethodRazorpay,
	})

	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, resp.Status)
	assert.Equal(t, order.PaymentStatusUnpaid, resp.PaymentStatus)
	require.NotNil(t, resp.Payment)
	assert.Equal(t, payment.FlowKindCheckoutJS, resp.Payment.Flow)
	assert.Equal(t, "order_Nxy123", resp.Payment.GatewayOrderID)
	assert.False(t, c.IsEmpty(), "cart must survive until the payment succeeds")
	f.cartRepo.AssertNotCalled(t, "Save", mock.Anything, c)
}

func TestPlaceOrder_IncompleteProfileRejected(t *testing.T) {
	f := newCheckoutFixture()
	customer, err := identity.NewCustomer("bare@example.com", "hashed")
	require.NoError(t, err)

	f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)

	_, err = f.service.PlaceOrder(context.Background(), customer.ID, PlaceOrderRequest{
		AddressID:     uuid.New(),
		PaymentMethod: order.PaymentMethodCOD,
	})

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "CHECKOUT_NOT_READY", de.Code)
}

func TestPlaceOrder_EmptyCartRejected(t *testing.T) {
	f := newCheckoutFixture()
	customer := readyCustomer(t)
	c, err := cart.NewCart(customer.ID)
	require.NoError(t, err)

	f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.cartRepo.On("FindByCustomer", mock.Anything, customer.ID).Return(c, nil)

	_, err = f.service.PlaceOrder(context.Background(), customer.ID, PlaceOrderRequest{
		AddressID:     customer.Addresses[0].ID,
		PaymentMethod: order.PaymentMethodCOD,
	})

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "CART_EMPTY", de.Code)
}

func TestPlaceOrder_IdempotencyKeyReplaysExistingOrder(t *testing.T) {
	f := newCheckoutFixture()
	customer := readyCustomer(t)
	c := cartWith(t, customer.ID, 499, 1)

	f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.cartRepo.On("FindByCustomer", mock.Anything, customer.ID).Return(c, nil)
	f.orderRepo.On("GenerateOrderNumber", mock.Anything).Return("ORD-20260901-0003", nil)
	f.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	f.cartRepo.On("Save", mock.Anything, c).Return(nil)

	req := PlaceOrderRequest{
		AddressID:      customer.Addresses[0].ID,
		PaymentMethod:  order.PaymentMethodCOD,
		IdempotencyKey: "retry-abc",
	}

	first, err := f.service.PlaceOrder(context.Background(), customer.ID, req)
	require.NoError(t, err)

	replayed, err := order.NewOrder(first.OrderNumber, order.CustomerInfo{
		CustomerID: customer.ID,
		Name:       "Asha Rao",
		Email:      customer.Email,
		Phone:      customer.Phone,
	}, mustPostalAddress(t), order.PaymentMethodCOD, order.CostBreakdown{
		Subtotal: decimal.NewFromInt(499),
		Total:    decimal.NewFromInt(598),
	}, "")
	require.NoError(t, err)
	f.orderRepo.On("FindByID", mock.Anything, first.OrderID).Return(replayed, nil)

	second, err := f.service.PlaceOrder(context.Background(), customer.ID, req)
	require.NoError(t, err)
	assert.Equal(t, first.OrderNumber, second.OrderNumber)

	// The replay never generates a second order
	f.orderRepo.AssertNumberOfCalls(t, "GenerateOrderNumber", 1)
}

func mustPostalAddress(t *testing.T) valueobject.PostalAddress {
	t.Helper()
	addr, err := valueobject.NewPostalAddress("Asha", "Rao", "12 MG Road", "", "Bengaluru", "Karnataka", "India", "560001")
	require.NoError(t, err)
	return addr
}

func prepaidOrder(t *testing.T, customerID uuid.UUID, gatewayOrderID string) *order.Order {
	t.Helper()
	o, err := order.NewOrder("ORD-20260901-0010", order.CustomerInfo{
		CustomerID: customerID,
		Name:       "Asha Rao",
		Email:      "asha@example.com",
		Phone:      "9876543210",
	}, mustPostalAddress(t), order.PaymentMethodRazorpay, order.CostBreakdown{
		Subtotal: decimal.NewFromInt(1200),
		Total:    decimal.NewFromInt(1200),
	}, "")
	require.NoError(t, err)
	require.NoError(t, o.AttachGatewayOrder(gatewayOrderID))
	o.ClearDomainEvents()
	return o
}

func TestHandleCallback_SuccessMarksPaidAndClearsCart(t *testing.T) {
	f := newCheckoutFixture()
	customerID := uuid.New()
	o := prepaidOrder(t, customerID, "order_Nxy456")
	c := cartWith(t, customerID, 1200, 1)

	gw := &MockGateway{gatewayType: payment.GatewayTypeRazorpay}
	gw.On("VerifyCallback", mock.Anything, mock.Anything).Return(&payment.CallbackResult{
		GatewayType:    payment.GatewayTypeRazorpay,
		GatewayOrderID: "order_Nxy456",
		GatewayTxnID:   "pay_Nxy789",
		Success:        true,
	}, nil)

	f.registry.On("Get", payment.GatewayTypeRazorpay).Return(gw, nil)
	f.orderRepo.On("FindByGatewayOrderID", mock.Anything, "order_Nxy456").Return(o, nil)
	f.orderRepo.On("SaveWithLock", mock.Anything, o).Return(nil)
	f.cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(c, nil)
	f.cartRepo.On("Save", mock.Anything, c).Return(nil)

	resp, err := f.service.HandleCallback(context.Background(), payment.GatewayTypeRazorpay, map[string]string{
		"razorpay_order_id": "order_Nxy456",
	})

	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, resp.Status)
	assert.Equal(t, order.PaymentStatusPaid, resp.PaymentStatus)
	assert.NotNil(t, resp.PaidAt)
	assert.True(t, c.IsEmpty())
}

func TestHandleCallback_FailureLeavesOrderPending(t *testing.T) {
	f := newCheckoutFixture()
	customerID := uuid.New()
	o := prepaidOrder(t, customerID, "order_Nxy457")

	gw := &MockGateway{gatewayType: payment.GatewayTypePayU}
	gw.On("VerifyCallback", mock.Anything, mock.Anything).Return(&payment.CallbackResult{
		GatewayType:    payment.GatewayTypePayU,
		GatewayOrderID: "order_Nxy457",
		Success:        false,
		FailureReason:  "Insufficient funds",
	}, nil)

	f.registry.On("Get", payment.GatewayTypePayU).Return(gw, nil)
	f.orderRepo.On("FindByGatewayOrderID", mock.Anything, "order_Nxy457").Return(o, nil)
	f.orderRepo.On("SaveWithLock", mock.Anything, o).Return(nil)

	resp, err := f.service.HandleCallback(context.Background(), payment.GatewayTypePayU, map[string]string{})

	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, resp.Status)
	assert.Equal(t, order.PaymentStatusFailed, resp.PaymentStatus)
	f.cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestHandleCallback_InvalidSignatureRejected(t *testing.T) {
	f := newCheckoutFixture()

	gw := &MockGateway{gatewayType: payment.GatewayTypeRazorpay}
	gw.On("VerifyCallback", mock.Anything, mock.Anything).Return(nil, payment.ErrInvalidSignature)

	f.registry.On("Get", payment.GatewayTypeRazorpay).Return(gw, nil)

	_, err := f.service.HandleCallback(context.Background(), payment.GatewayTypeRazorpay, map[string]string{
		"razorpay_signature": "tampered",
	})

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_SIGNATURE", de.Code)
	f.orderRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestHandleCallback_ReplayedSuccessReturnsCurrentState(t *testing.T) {
	f := newCheckoutFixture()
	customerID := uuid.New()
	o := prepaidOrder(t, customerID, "order_Nxy458")
	require.NoError(t, o.MarkPaid("pay_first"))
	o.ClearDomainEvents()

	gw := &MockGateway{gatewayType: payment.GatewayTypeRazorpay}
	gw.On("VerifyCallback", mock.Anything, mock.Anything).Return(&payment.CallbackResult{
		GatewayType:    payment.GatewayTypeRazorpay,
		GatewayOrderID: "order_Nxy458",
		GatewayTxnID:   "pay_second",
		Success:        true,
	}, nil)

	f.registry.On("Get", payment.GatewayTypeRazorpay).Return(gw, nil)
	f.orderRepo.On("FindByGatewayOrderID", mock.Anything, "order_Nxy458").Return(o, nil)

	resp, err := f.service.HandleCallback(context.Background(), payment.GatewayTypeRazorpay, map[string]string{})

	require.NoError(t, err)
	assert.Equal(t, order.PaymentStatusPaid, resp.PaymentStatus)
	assert.Equal(t, "pay_first", o.GatewayTxnID, "replay must not overwrite the original transaction")
}
