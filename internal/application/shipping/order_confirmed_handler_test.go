package shipping

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

func TestOrderConfirmedHandler_EventTypes(t *testing.T) {
	handler := NewOrderConfirmedHandler(nil, false, zap.NewNop())
	assert.Equal(t, []string{order.EventTypeOrderConfirmed}, handler.EventTypes())
}

func TestOrderConfirmedHandler_RejectsWrongEventType(t *testing.T) {
	handler := NewOrderConfirmedHandler(nil, true, zap.NewNop())

	o := confirmedOrder(t)
	err := handler.Handle(context.Background(), order.NewOrderCancelledEvent(o))
	assert.Error(t, err)
}

func TestOrderConfirmedHandler_AutoBookDisabledOnlyLogs(t *testing.T) {
	f := newShipmentFixture()
	handler := NewOrderConfirmedHandler(f.service, false, zap.NewNop())

	o := confirmedOrder(t)
	err := handler.Handle(context.Background(), order.NewOrderConfirmedEvent(o))

	require.NoError(t, err)
	f.shipmentRepo.AssertNotCalled(t, "FindByOrderID", mock.Anything, mock.Anything)
}

func TestOrderConfirmedHandler_AutoBookCreatesShipment(t *testing.T) {
	f := newShipmentFixture()
	handler := NewOrderConfirmedHandler(f.service, true, zap.NewNop())

	o := confirmedOrder(t)
	existing := bookedShipment(t, o)
	ctx := context.Background()
	f.shipmentRepo.On("FindByOrderID", ctx, o.ID).Return(existing, nil)

	err := handler.Handle(ctx, order.NewOrderConfirmedEvent(o))

	require.NoError(t, err)
	f.shipmentRepo.AssertExpectations(t)
}

func TestOrderConfirmedHandler_BookingFailureIsReturned(t *testing.T) {
	f := newShipmentFixture()
	handler := NewOrderConfirmedHandler(f.service, true, zap.NewNop())

	ctx := context.Background()
	orderID := uuid.New()
	f.shipmentRepo.On("FindByOrderID", ctx, orderID).Return(nil, shared.ErrNotFound)
	f.orderRepo.On("FindByID", ctx, orderID).Return(nil, shared.ErrNotFound)

	event := order.NewOrderConfirmedEvent(&order.Order{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: shared.BaseEntity{ID: orderID}},
		OrderNumber:       "ORD-20260901-0009",
	})
	err := handler.Handle(ctx, event)

	assert.Error(t, err)
}
