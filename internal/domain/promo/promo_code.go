package promo

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// DiscountType distinguishes percentage and fixed-amount promos
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFixed      DiscountType = "FIXED"
)

// IsValid checks if the discount type is known
func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixed
}

// Scope restricts which cart lines a percentage promo applies to
type Scope string

const (
	ScopeAll        Scope = "ALL"
	ScopeProducts   Scope = "PRODUCTS"
	ScopeCategories Scope = "CATEGORIES"
)

// IsValid checks if the scope is known
func (s Scope) IsValid() bool {
	return s == ScopeAll || s == ScopeProducts || s == ScopeCategories
}

// CartLine is the snapshot of a cart item used for promo evaluation
type CartLine struct {
	ProductID uuid.UUID
	Category  string
	LineTotal decimal.Decimal
}

// PromoCode is the aggregate root for a discount code
type PromoCode struct {
	shared.BaseAggregateRoot
	Code         string
	Description  string
	DiscountType DiscountType
	Value        decimal.Decimal // percent (0-100) or fixed amount
	Scope        Scope
	ProductIDs   []uuid.UUID `gorm:"serializer:json"` // when Scope == PRODUCTS
	Categories   []string    `gorm:"serializer:json"` // when Scope == CATEGORIES
	MinSubtotal  decimal.Decimal
	Active       bool
	ExpiresAt    *time.Time
}

// TableName specifies the table name for GORM
func (PromoCode) TableName() string {
	return "promo_codes"
}

// NewPromoCode creates a new promo code
func NewPromoCode(code string, discountType DiscountType, value decimal.Decimal, scope Scope) (*PromoCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Promo code cannot be empty")
	}
	if !discountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Discount type must be PERCENTAGE or FIXED")
	}
	if value.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_VALUE", "Discount value must be positive")
	}
	if discountType == DiscountTypePercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_VALUE", "Percentage discount cannot exceed 100")
	}
	if !scope.IsValid() {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Scope must be ALL, PRODUCTS or CATEGORIES")
	}

	return &PromoCode{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		DiscountType:      discountType,
		Value:             value,
		Scope:             scope,
		ProductIDs:        make([]uuid.UUID, 0),
		Categories:        make([]string, 0),
		MinSubtotal:       decimal.Zero,
		Active:            true,
	}, nil
}

// RestrictToProducts limits the promo to a set of product IDs
func (p *PromoCode) RestrictToProducts(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return shared.NewDomainError("INVALID_SCOPE", "Product scope requires at least one product ID")
	}
	p.Scope = ScopeProducts
	p.ProductIDs = ids
	p.Touch()
	return nil
}

// RestrictToCategories limits the promo to a set of categories
func (p *PromoCode) RestrictToCategories(categories []string) error {
	if len(categories) == 0 {
		return shared.NewDomainError("INVALID_SCOPE", "Category scope requires at least one category")
	}
	p.Scope = ScopeCategories
	p.Categories = categories
	p.Touch()
	return nil
}

// SetMinSubtotal requires a minimum cart subtotal for the promo to apply
func (p *PromoCode) SetMinSubtotal(min decimal.Decimal) error {
	if min.IsNegative() {
		return shared.NewDomainError("INVALID_MIN_SUBTOTAL", "Minimum subtotal cannot be negative")
	}
	p.MinSubtotal = min
	p.Touch()
	return nil
}

// SetExpiry sets the promo expiry time
func (p *PromoCode) SetExpiry(t time.Time) {
	p.ExpiresAt = &t
	p.Touch()
}

// Deactivate turns the promo off
func (p *PromoCode) Deactivate() {
	p.Active = false
	p.Touch()
}

// Activate turns the promo on
func (p *PromoCode) Activate() {
	p.Active = true
	p.Touch()
}

// IsExpired reports whether the promo has passed its expiry
func (p *PromoCode) IsExpired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}

// matches reports whether a cart line falls inside the promo's scope
func (p *PromoCode) matches(line CartLine) bool {
	switch p.Scope {
	case ScopeAll:
		return true
	case ScopeProducts:
		for _, id := range p.ProductIDs {
			if id == line.ProductID {
				return true
			}
		}
		return false
	case ScopeCategories:
		for _, category := range p.Categories {
			if strings.EqualFold(category, line.Category) {
				return true
			}
		}
		return false
	}
	return false
}

// EligibleSubtotal returns the portion of the cart subtotal the promo's
// scope covers
func (p *PromoCode) EligibleSubtotal(lines []CartLine) decimal.Decimal {
	eligible := decimal.Zero
	for _, line := range lines {
		if p.matches(line) {
			eligible = eligible.Add(line.LineTotal)
		}
	}
	return eligible
}

// DiscountFor computes the discount amount for the given cart lines.
// Percentage discounts apply only to the in-scope subtotal; fixed discounts
// subtract a flat amount once, capped at the full subtotal.
func (p *PromoCode) DiscountFor(lines []CartLine) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal)
	}

	var discount decimal.Decimal
	switch p.DiscountType {
	case DiscountTypePercentage:
		eligible := p.EligibleSubtotal(lines)
		discount = eligible.Mul(p.Value).Div(decimal.NewFromInt(100)).Round(2)
	case DiscountTypeFixed:
		discount = p.Value
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	return discount
}

// CheckAgainst validates the promo against a cart snapshot and returns the
// reason it cannot apply, or nil if it can
func (p *PromoCode) CheckAgainst(lines []CartLine, now time.Time) error {
	if !p.Active {
		return shared.NewDomainError("PROMO_INACTIVE", "This promo code is no longer active")
	}
	if p.IsExpired(now) {
		return shared.NewDomainError("PROMO_EXPIRED", "This promo code has expired")
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal)
	}
	if subtotal.LessThan(p.MinSubtotal) {
		return shared.NewDomainError("PROMO_BELOW_MINIMUM", "Cart subtotal is below the promo minimum")
	}

	if p.DiscountType == DiscountTypePercentage && p.EligibleSubtotal(lines).IsZero() {
		return shared.NewDomainError("PROMO_NOT_APPLICABLE", "No items in the cart are eligible for this promo")
	}

	return nil
}
