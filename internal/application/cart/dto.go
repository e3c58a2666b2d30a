package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/cart"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	VariantID *uuid.UUID `json:"variant_id"`
	Quantity  int        `json:"quantity" binding:"required,min=1,max=99"`
}

// UpdateItemRequest represents a quantity change on a cart line
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=99"`
}

// ItemResponse represents a cart line
type ItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	VariantID     *uuid.UUID      `json:"variant_id,omitempty"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	LineTotal     decimal.Decimal `json:"line_total"`
	ImageURL      string          `json:"image_url,omitempty"`
	VariantLabels string          `json:"variant_labels,omitempty"`
}

// CartResponse represents the full cart
type CartResponse struct {
	ID            uuid.UUID       `json:"id"`
	Items         []ItemResponse  `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalQuantity int             `json:"total_quantity"`
}

// ToCartResponse converts a domain cart to a response DTO
func ToCartResponse(c *cart.Cart) CartResponse {
	items := make([]ItemResponse, 0, len(c.Items))
	for idx := range c.Items {
		item := &c.Items[idx]
		items = append(items, ItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			VariantID:     item.VariantID,
			Name:          item.Name,
			Category:      item.Category,
			UnitPrice:     item.UnitPrice,
			Quantity:      item.Quantity,
			LineTotal:     item.LineTotal(),
			ImageURL:      item.ImageURL,
			VariantLabels: item.VariantLabels,
		})
	}
	return CartResponse{
		ID:            c.ID,
		Items:         items,
		Subtotal:      c.Subtotal(),
		TotalQuantity: c.TotalQuantity(),
	}
}
