package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// CartItem is a line item in a customer's cart
type CartItem struct {
	ID            uuid.UUID
	CartID        uuid.UUID
	ProductID     uuid.UUID
	VariantID     *uuid.UUID
	Name          string
	Category      string
	UnitPrice     decimal.Decimal
	Quantity      int
	ImageURL      string
	VariantLabels string // e.g. "Size: M / Colour: Indigo"
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// LineTotal returns unit price times quantity
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// sameVariant reports whether the item refers to the same product variant
func (i *CartItem) sameVariant(productID uuid.UUID, variantID *uuid.UUID) bool {
	if i.ProductID != productID {
		return false
	}
	if i.VariantID == nil && variantID == nil {
		return true
	}
	if i.VariantID == nil || variantID == nil {
		return false
	}
	return *i.VariantID == *variantID
}

// Cart is the aggregate root for a customer's shopping cart
type Cart struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID
	Items      []CartItem
}

// TableName specifies the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty cart for a customer
func NewCart(customerID uuid.UUID) (*Cart, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Items:             make([]CartItem, 0),
	}, nil
}

// AddItem puts an item into the cart. Adding the same product variant again
// merges quantities rather than creating a duplicate line.
func (c *Cart) AddItem(productID uuid.UUID, variantID *uuid.UUID, name, category string, unitPrice valueobject.Money, quantity int, imageURL, variantLabels string) (*CartItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()

	for idx := range c.Items {
		if c.Items[idx].sameVariant(productID, variantID) {
			c.Items[idx].Quantity += quantity
			c.Items[idx].UpdatedAt = now
			c.UpdatedAt = now
			return &c.Items[idx], nil
		}
	}

	item := CartItem{
		ID:            uuid.New(),
		CartID:        c.ID,
		ProductID:     productID,
		VariantID:     variantID,
		Name:          name,
		Category:      category,
		UnitPrice:     unitPrice.Amount(),
		Quantity:      quantity,
		ImageURL:      imageURL,
		VariantLabels: variantLabels,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	c.Items = append(c.Items, item)
	c.UpdatedAt = now

	return &c.Items[len(c.Items)-1], nil
}

// UpdateItemQuantity sets the quantity of an existing line item
func (c *Cart) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	for idx := range c.Items {
		if c.Items[idx].ID == itemID {
			now := time.Now()
			c.Items[idx].Quantity = quantity
			c.Items[idx].UpdatedAt = now
			c.UpdatedAt = now
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
}

// RemoveItem deletes a line item from the cart
func (c *Cart) RemoveItem(itemID uuid.UUID) error {
	for idx, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.Touch()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
}

// Clear empties the cart. Called after a successful order.
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
	c.Touch()
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal returns the sum of all line totals
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for idx := range c.Items {
		total = total.Add(c.Items[idx].LineTotal())
	}
	return total
}

// ItemCount returns the number of distinct lines in the cart
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

// TotalQuantity returns the total number of units across all lines
func (c *Cart) TotalQuantity() int {
	total := 0
	for idx := range c.Items {
		total += c.Items[idx].Quantity
	}
	return total
}
