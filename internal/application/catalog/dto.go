package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
)

// ==================== Product DTOs ====================

// CreateProductRequest represents an admin product creation
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=2,max=200"`
	Description string          `json:"description" binding:"max=5000"`
	Category    string          `json:"category" binding:"required,max=100"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	MRP         decimal.Decimal `json:"mrp" binding:"required"`
}

// UpdateProductRequest represents an admin product update
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	MRP         *decimal.Decimal `json:"mrp"`
	Active      *bool            `json:"active"`
}

// AddVariantRequest represents adding a purchasable option
type AddVariantRequest struct {
	Label      string          `json:"label" binding:"required,min=1,max=100"`
	SKU        string          `json:"sku" binding:"max=50"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

// VariantResponse represents a product variant
type VariantResponse struct {
	ID         uuid.UUID       `json:"id"`
	Label      string          `json:"label"`
	SKU        string          `json:"sku,omitempty"`
	PriceDelta decimal.Decimal `json:"price_delta"`
	Price      decimal.Decimal `json:"price"`
	Active     bool            `json:"active"`
}

// ProductResponse represents a product
type ProductResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category"`
	Price       decimal.Decimal   `json:"price"`
	MRP         decimal.Decimal   `json:"mrp"`
	ImageURLs   []string          `json:"image_urls"`
	Variants    []VariantResponse `json:"variants"`
	Active      bool              `json:"active"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ==================== Bundle DTOs ====================

// TierInput is one quantity threshold of a tiered bundle
type TierInput struct {
	MinQuantity int             `json:"min_quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateBundleRequest represents an admin bundle creation
type CreateBundleRequest struct {
	Name       string              `json:"name" binding:"required,min=2,max=200"`
	ProductID  uuid.UUID           `json:"product_id" binding:"required"`
	UnitPrice  decimal.Decimal     `json:"unit_price" binding:"required"`
	Rule       catalog.PricingRule `json:"rule" binding:"required"`
	Tiers      []TierInput         `json:"tiers"`
	BuyQty     int                 `json:"buy_qty"`
	FreeQty    int                 `json:"free_qty"`
	PercentOff decimal.Decimal     `json:"percent_off"`
}

// BundleResponse represents a bundle
type BundleResponse struct {
	ID         uuid.UUID           `json:"id"`
	Name       string              `json:"name"`
	Slug       string              `json:"slug"`
	ProductID  uuid.UUID           `json:"product_id"`
	UnitPrice  decimal.Decimal     `json:"unit_price"`
	Rule       catalog.PricingRule `json:"rule"`
	Tiers      []TierInput         `json:"tiers,omitempty"`
	BuyQty     int                 `json:"buy_qty,omitempty"`
	FreeQty    int                 `json:"free_qty,omitempty"`
	PercentOff decimal.Decimal     `json:"percent_off,omitempty"`
	Active     bool                `json:"active"`
}

// BundleQuoteResponse represents a priced bundle purchase
type BundleQuoteResponse struct {
	Quantity      int             `json:"quantity"`
	PayableUnits  int             `json:"payable_units"`
	EffectiveUnit decimal.Decimal `json:"effective_unit"`
	ListTotal     decimal.Decimal `json:"list_total"`
	Total         decimal.Decimal `json:"total"`
	Savings       decimal.Decimal `json:"savings"`
}

// ==================== Mappers ====================

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	variants := make([]VariantResponse, 0, len(p.Variants))
	for idx := range p.Variants {
		v := &p.Variants[idx]
		variants = append(variants, VariantResponse{
			ID:         v.ID,
			Label:      v.Label,
			SKU:        v.SKU,
			PriceDelta: v.PriceDelta,
			Price:      p.Price.Add(v.PriceDelta),
			Active:     v.Active,
		})
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		MRP:         p.MRP,
		ImageURLs:   p.ImageURLs,
		Variants:    variants,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}

// ToBundleResponse converts a domain bundle to a response DTO
func ToBundleResponse(b *catalog.Bundle) BundleResponse {
	tiers := make([]TierInput, 0, len(b.Tiers))
	for _, t := range b.Tiers {
		tiers = append(tiers, TierInput{MinQuantity: t.MinQuantity, UnitPrice: t.UnitPrice})
	}
	return BundleResponse{
		ID:         b.ID,
		Name:       b.Name,
		Slug:       b.Slug,
		ProductID:  b.ProductID,
		UnitPrice:  b.UnitPrice,
		Rule:       b.Rule,
		Tiers:      tiers,
		BuyQty:     b.BuyQty,
		FreeQty:    b.FreeQty,
		PercentOff: b.PercentOff,
		Active:     b.Active,
	}
}

// ToBundleQuoteResponse converts a domain bundle quote to a response DTO
func ToBundleQuoteResponse(q *catalog.BundleQuote) BundleQuoteResponse {
	return BundleQuoteResponse{
		Quantity:      q.Quantity,
		PayableUnits:  q.PayableUnits,
		EffectiveUnit: q.EffectiveUnit,
		ListTotal:     q.ListTotal,
		Total:         q.Total,
		Savings:       q.Savings,
	}
}
