package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/order"
)

// ListFilter controls order listing
type ListFilter struct {
	Page          int                 `form:"page"`
	PageSize      int                 `form:"page_size"`
	Status        order.Status        `form:"status"`
	PaymentStatus order.PaymentStatus `form:"payment_status"`
	Search        string              `form:"search"`
}

// CancelRequest represents an order cancellation
type CancelRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}

// ItemResponse represents an order line snapshot
type ItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	VariantID     *uuid.UUID      `json:"variant_id,omitempty"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	LineTotal     decimal.Decimal `json:"line_total"`
	ImageURL      string          `json:"image_url,omitempty"`
	VariantLabels string          `json:"variant_labels,omitempty"`
}

// AddressResponse represents the shipping address snapshot
type AddressResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	PinCode   string `json:"pin_code"`
}

// OrderResponse represents a full order
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"order_number"`
	Status          order.Status        `json:"status"`
	PaymentMethod   order.PaymentMethod `json:"payment_method"`
	PaymentStatus   order.PaymentStatus `json:"payment_status"`
	Items           []ItemResponse      `json:"items"`
	ShippingAddress AddressResponse     `json:"shipping_address"`
	PromoCode       string              `json:"promo_code,omitempty"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	Discount        decimal.Decimal     `json:"discount"`
	Shipping        decimal.Decimal     `json:"shipping"`
	Taxes           decimal.Decimal     `json:"taxes"`
	Total           decimal.Decimal     `json:"total"`
	ConfirmedAt     *time.Time          `json:"confirmed_at,omitempty"`
	ShippedAt       *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason    string              `json:"cancel_reason,omitempty"`
	PaidAt          *time.Time          `json:"paid_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// ListItemResponse is the compact order representation for listings
type ListItemResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"order_number"`
	Status        order.Status        `json:"status"`
	PaymentMethod order.PaymentMethod `json:"payment_method"`
	PaymentStatus order.PaymentStatus `json:"payment_status"`
	ItemCount     int                 `json:"item_count"`
	Total         decimal.Decimal     `json:"total"`
	CreatedAt     time.Time           `json:"created_at"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items))
	for idx := range o.Items {
		item := &o.Items[idx]
		items = append(items, ItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			VariantID:     item.VariantID,
			Name:          item.Name,
			UnitPrice:     item.UnitPrice,
			Quantity:      item.Quantity,
			LineTotal:     item.LineTotal(),
			ImageURL:      item.ImageURL,
			VariantLabels: item.VariantLabels,
		})
	}

	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		Items:         items,
		ShippingAddress: AddressResponse{
			FirstName: o.ShippingAddress.FirstName,
			LastName:  o.ShippingAddress.LastName,
			Line1:     o.ShippingAddress.Line1,
			Line2:     o.ShippingAddress.Line2,
			City:      o.ShippingAddress.City,
			State:     o.ShippingAddress.State,
			Country:   o.ShippingAddress.Country,
			PinCode:   o.ShippingAddress.PinCode,
		},
		PromoCode:    o.PromoCode,
		Subtotal:     o.Subtotal,
		Discount:     o.Discount,
		Shipping:     o.Shipping,
		Taxes:        o.Taxes,
		Total:        o.Total,
		ConfirmedAt:  o.ConfirmedAt,
		ShippedAt:    o.ShippedAt,
		DeliveredAt:  o.DeliveredAt,
		CancelledAt:  o.CancelledAt,
		CancelReason: o.CancelReason,
		PaidAt:       o.PaidAt,
		CreatedAt:    o.CreatedAt,
	}
}

// ToListItemResponse converts a domain order to the compact listing DTO
func ToListItemResponse(o *order.Order) ListItemResponse {
	return ListItemResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		ItemCount:     o.ItemCount(),
		Total:         o.Total,
		CreatedAt:     o.CreatedAt,
	}
}
