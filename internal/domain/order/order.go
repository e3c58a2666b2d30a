package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Status represents the fulfilment status of an order
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the status is a valid order status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered
	case StatusDelivered, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// PaymentMethod is how the customer chose to pay
type PaymentMethod string

const (
	PaymentMethodCOD      PaymentMethod = "COD"
	PaymentMethodRazorpay PaymentMethod = "RAZORPAY"
	PaymentMethodPayU     PaymentMethod = "PAYU"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodRazorpay, PaymentMethodPayU:
		return true
	}
	return false
}

// IsPrepaid reports whether the method goes through an online gateway
func (m PaymentMethod) IsPrepaid() bool {
	return m == PaymentMethodRazorpay || m == PaymentMethodPayU
}

// PaymentStatus tracks the payment lifecycle independently of fulfilment
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "UNPAID"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Item is an immutable snapshot of a cart line at order time
type Item struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	ProductID     uuid.UUID
	VariantID     *uuid.UUID
	Name          string
	Category      string
	UnitPrice     decimal.Decimal
	Quantity      int
	ImageURL      string
	VariantLabels string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// LineTotal returns unit price times quantity
func (i *Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ShippingAddress is the denormalized delivery address snapshot
type ShippingAddress struct {
	FirstName string
	LastName  string
	Line1     string
	Line2     string
	City      string
	State     string
	Country   string
	PinCode   string
}

// CustomerInfo is the denormalized customer contact snapshot
type CustomerInfo struct {
	CustomerID uuid.UUID
	Name       string
	Email      string
	Phone      string
}

// Order is the aggregate root for a placed order. Item and address snapshots
// are immutable after creation; only status and payment fields transition.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber     string
	Customer        CustomerInfo    `gorm:"embedded;embeddedPrefix:customer_"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_"`
	Items           []Item
	PromoCode       string
	Subtotal        decimal.Decimal
	Discount        decimal.Decimal
	Shipping        decimal.Decimal
	Taxes           decimal.Decimal
	Total           decimal.Decimal
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	GatewayOrderID  string
	GatewayTxnID    string
	Status          Status
	ConfirmedAt     *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string
	PaidAt          *time.Time
	FailureReason   string
}

// TableName specifies the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// CostBreakdown carries the recomputed quote into order creation
type CostBreakdown struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Shipping decimal.Decimal
	Taxes    decimal.Decimal
	Total    decimal.Decimal
}

// NewOrder creates a new pending order from cart and checkout snapshots
func NewOrder(orderNumber string, customer CustomerInfo, address valueobject.PostalAddress, method PaymentMethod, costs CostBreakdown, promoCode string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customer.CustomerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !address.IsComplete() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address is incomplete")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if costs.Total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Order total cannot be negative")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		Customer:          customer,
		ShippingAddress: ShippingAddress{
			FirstName: address.FirstName(),
			LastName:  address.LastName(),
			Line1:     address.Line1(),
			Line2:     address.Line2(),
			City:      address.City(),
			State:     address.State(),
			Country:   address.Country(),
			PinCode:   address.PinCode(),
		},
		Items:         make([]Item, 0),
		PromoCode:     promoCode,
		Subtotal:      costs.Subtotal,
		Discount:      costs.Discount,
		Shipping:      costs.Shipping,
		Taxes:         costs.Taxes,
		Total:         costs.Total,
		PaymentMethod: method,
		PaymentStatus: PaymentStatusUnpaid,
		Status:        StatusPending,
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// AddItemSnapshot appends a cart line snapshot. Only allowed before the
// order leaves PENDING with no payment recorded.
func (o *Order) AddItemSnapshot(productID uuid.UUID, variantID *uuid.UUID, name, category string, unitPrice decimal.Decimal, quantity int, imageURL, variantLabels string) error {
	if o.Status != StatusPending || o.PaymentStatus != PaymentStatusUnpaid {
		return shared.NewDomainError("INVALID_STATE", "Order items are immutable after creation")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	now := time.Now()
	o.Items = append(o.Items, Item{
		ID:            uuid.New(),
		OrderID:       o.ID,
		ProductID:     productID,
		VariantID:     variantID,
		Name:          name,
		Category:      category,
		UnitPrice:     unitPrice,
		Quantity:      quantity,
		ImageURL:      imageURL,
		VariantLabels: variantLabels,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	o.UpdatedAt = now

	return nil
}

// AttachGatewayOrder records the gateway's order reference for a prepaid order
func (o *Order) AttachGatewayOrder(gatewayOrderID string) error {
	if !o.PaymentMethod.IsPrepaid() {
		return shared.NewDomainError("INVALID_STATE", "COD orders have no gateway order")
	}
	if gatewayOrderID == "" {
		return shared.NewDomainError("INVALID_GATEWAY_ORDER", "Gateway order ID cannot be empty")
	}
	o.GatewayOrderID = gatewayOrderID
	o.Touch()
	return nil
}

// ConfirmCOD confirms a cash-on-delivery order without a payment step
func (o *Order) ConfirmCOD() error {
	if o.PaymentMethod != PaymentMethodCOD {
		return shared.NewDomainError("INVALID_STATE", "Only COD orders can be confirmed without payment")
	}
	return o.confirm()
}

// MarkPaid records a verified gateway payment and confirms the order.
// Allowed from UNPAID or FAILED so a customer can retry a failed payment.
func (o *Order) MarkPaid(gatewayTxnID string) error {
	if !o.PaymentMethod.IsPrepaid() {
		return shared.NewDomainError("INVALID_STATE", "COD orders are not paid through a gateway")
	}
	if o.PaymentStatus == PaymentStatusPaid {
		return shared.NewDomainError("ALREADY_PAID", "Order is already paid")
	}
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record payment on a %s order", o.Status))
	}

	now := time.Now()
	o.PaymentStatus = PaymentStatusPaid
	o.GatewayTxnID = gatewayTxnID
	o.PaidAt = &now
	o.FailureReason = ""

	if err := o.confirm(); err != nil {
		return err
	}

	o.AddDomainEvent(NewOrderPaidEvent(o))

	return nil
}

// MarkPaymentFailed records a failed or cancelled payment attempt. The
// order itself stays PENDING for manual reconciliation or retry - the
// created record is never rolled back.
func (o *Order) MarkPaymentFailed(reason string) error {
	if !o.PaymentMethod.IsPrepaid() {
		return shared.NewDomainError("INVALID_STATE", "COD orders have no payment attempts")
	}
	if o.PaymentStatus == PaymentStatusPaid {
		return shared.NewDomainError("ALREADY_PAID", "Order is already paid")
	}

	o.PaymentStatus = PaymentStatusFailed
	o.FailureReason = reason
	o.Touch()

	o.AddDomainEvent(NewOrderPaymentFailedEvent(o, reason))

	return nil
}

// Ship marks the order as shipped
func (o *Order) Ship() error {
	if !o.Status.CanTransitionTo(StatusShipped) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot ship order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = StatusShipped
	o.ShippedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderShippedEvent(o))

	return nil
}

// Deliver marks the order as delivered
func (o *Order) Deliver() error {
	if !o.Status.CanTransitionTo(StatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = StatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now

	return nil
}

// Cancel cancels the order. Allowed only in PENDING or CONFIRMED status.
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	o.Status = StatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderCancelledEvent(o))

	return nil
}

// confirm transitions PENDING -> CONFIRMED
func (o *Order) confirm() error {
	if !o.Status.CanTransitionTo(StatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot confirm an order without items")
	}

	now := time.Now()
	o.Status = StatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderConfirmedEvent(o))

	return nil
}

// IsPaid reports whether payment has been recorded
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

// IsTerminal reports whether the order is delivered or cancelled
func (o *Order) IsTerminal() bool {
	return o.Status == StatusDelivered || o.Status == StatusCancelled
}

// ItemCount returns the number of item lines on the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the total units across all lines
func (o *Order) TotalQuantity() int {
	total := 0
	for idx := range o.Items {
		total += o.Items[idx].Quantity
	}
	return total
}
