package order

import (
	"github.com/storefront/backend/internal/domain/shared"
)

const AggregateTypeOrder = "Order"

// Event type identifiers for order lifecycle events
const (
	EventTypeOrderCreated       = "order.created"
	EventTypeOrderConfirmed     = "order.confirmed"
	EventTypeOrderPaid          = "order.paid"
	EventTypeOrderPaymentFailed = "order.payment_failed"
	EventTypeOrderShipped       = "order.shipped"
	EventTypeOrderCancelled     = "order.cancelled"
)

// OrderCreatedEvent is published when an order is created in PENDING status
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber   string        `json:"order_number"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Total         string        `json:"total"`
}

func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		PaymentMethod:   o.PaymentMethod,
		Total:           o.Total.String(),
	}
}

// OrderConfirmedEvent is published when an order transitions to CONFIRMED
type OrderConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderNumber   string        `json:"order_number"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

func NewOrderConfirmedEvent(o *Order) *OrderConfirmedEvent {
	return &OrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderConfirmed, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		PaymentMethod:   o.PaymentMethod,
	}
}

// OrderPaidEvent is published when a gateway payment is verified
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	OrderNumber  string `json:"order_number"`
	GatewayTxnID string `json:"gateway_txn_id"`
	Total        string `json:"total"`
}

func NewOrderPaidEvent(o *Order) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		GatewayTxnID:    o.GatewayTxnID,
		Total:           o.Total.String(),
	}
}

// OrderPaymentFailedEvent is published when a payment attempt fails
type OrderPaymentFailedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	Reason      string `json:"reason"`
}

func NewOrderPaymentFailedEvent(o *Order, reason string) *OrderPaymentFailedEvent {
	return &OrderPaymentFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaymentFailed, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		Reason:          reason,
	}
}

// OrderShippedEvent is published when an order is handed to the carrier
type OrderShippedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
}

func NewOrderShippedEvent(o *Order) *OrderShippedEvent {
	return &OrderShippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderShipped, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
	}
}

// OrderCancelledEvent is published when an order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	Reason      string `json:"reason"`
}

func NewOrderCancelledEvent(o *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		Reason:          o.CancelReason,
	}
}
