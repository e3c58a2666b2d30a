package promo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/promo"
)

// CreatePromoCodeRequest represents an admin promo code creation
type CreatePromoCodeRequest struct {
	Code         string             `json:"code" binding:"required,min=2,max=40"`
	Description  string             `json:"description" binding:"max=500"`
	DiscountType promo.DiscountType `json:"discount_type" binding:"required"`
	Value        decimal.Decimal    `json:"value" binding:"required"`
	Scope        promo.Scope        `json:"scope" binding:"required"`
	ProductIDs   []uuid.UUID        `json:"product_ids"`
	Categories   []string           `json:"categories"`
	MinSubtotal  *decimal.Decimal   `json:"min_subtotal"`
	ExpiresAt    *time.Time         `json:"expires_at"`
}

// UpdatePromoCodeRequest represents an admin promo code update
type UpdatePromoCodeRequest struct {
	Description *string          `json:"description"`
	MinSubtotal *decimal.Decimal `json:"min_subtotal"`
	ExpiresAt   *time.Time       `json:"expires_at"`
	Active      *bool            `json:"active"`
}

// CheckRequest asks whether a code applies to the customer's cart
type CheckRequest struct {
	Code string `json:"code" binding:"required,min=2,max=40"`
}

// AppliedPromoResponse describes a promo that applies to the cart
type AppliedPromoResponse struct {
	Code         string             `json:"code"`
	DiscountType promo.DiscountType `json:"discount_type"`
	Value        decimal.Decimal    `json:"value"`
	Discount     decimal.Decimal    `json:"discount"`
}

// PromoCodeResponse represents a stored promo code
type PromoCodeResponse struct {
	ID           uuid.UUID          `json:"id"`
	Code         string             `json:"code"`
	Description  string             `json:"description,omitempty"`
	DiscountType promo.DiscountType `json:"discount_type"`
	Value        decimal.Decimal    `json:"value"`
	Scope        promo.Scope        `json:"scope"`
	ProductIDs   []uuid.UUID        `json:"product_ids,omitempty"`
	Categories   []string           `json:"categories,omitempty"`
	MinSubtotal  decimal.Decimal    `json:"min_subtotal"`
	Active       bool               `json:"active"`
	ExpiresAt    *time.Time         `json:"expires_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// ToPromoCodeResponse converts a domain promo code to a response DTO
func ToPromoCodeResponse(p *promo.PromoCode) PromoCodeResponse {
	return PromoCodeResponse{
		ID:           p.ID,
		Code:         p.Code,
		Description:  p.Description,
		DiscountType: p.DiscountType,
		Value:        p.Value,
		Scope:        p.Scope,
		ProductIDs:   p.ProductIDs,
		Categories:   p.Categories,
		MinSubtotal:  p.MinSubtotal,
		Active:       p.Active,
		ExpiresAt:    p.ExpiresAt,
		CreatedAt:    p.CreatedAt,
	}
}
