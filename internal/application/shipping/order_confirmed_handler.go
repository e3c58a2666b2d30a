package shipping

import (
	"context"
	"fmt"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderConfirmedHandler books a shipment with the logistics provider
// whenever an order transitions to CONFIRMED. Booking failures are
// logged and left for the operations team to retry from the admin
// panel; they never fail the checkout flow.
type OrderConfirmedHandler struct {
	shipmentService *ShipmentService
	autoBook        bool
	logger          *zap.Logger
}

// NewOrderConfirmedHandler creates a new handler for order confirmed events.
// When autoBook is false the handler only logs the event.
func NewOrderConfirmedHandler(shipmentService *ShipmentService, autoBook bool, logger *zap.Logger) *OrderConfirmedHandler {
	return &OrderConfirmedHandler{
		shipmentService: shipmentService,
		autoBook:        autoBook,
		logger:          logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderConfirmedHandler) EventTypes() []string {
	return []string{order.EventTypeOrderConfirmed}
}

// Handle books a shipment for the confirmed order
func (h *OrderConfirmedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	confirmed, ok := event.(*order.OrderConfirmedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", order.EventTypeOrderConfirmed),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderConfirmed, event.EventType())
	}

	h.logger.Info("order confirmed",
		zap.String("order_id", confirmed.AggregateID().String()),
		zap.String("order_number", confirmed.OrderNumber),
		zap.String("payment_method", string(confirmed.PaymentMethod)),
	)

	if !h.autoBook {
		return nil
	}

	if _, err := h.shipmentService.Create(ctx, CreateShipmentRequest{OrderID: confirmed.AggregateID()}); err != nil {
		h.logger.Error("automatic shipment booking failed",
			zap.String("order_id", confirmed.AggregateID().String()),
			zap.String("order_number", confirmed.OrderNumber),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("shipment booked for confirmed order",
		zap.String("order_id", confirmed.AggregateID().String()),
		zap.String("order_number", confirmed.OrderNumber),
	)
	return nil
}
