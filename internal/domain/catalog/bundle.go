package catalog

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// PricingRule selects how a bundle discounts quantity purchases
type PricingRule string

const (
	// PricingRuleTiered applies a per-unit price once quantity crosses a threshold
	PricingRuleTiered PricingRule = "TIERED"
	// PricingRuleBOGO gives M free units for every N purchased
	PricingRuleBOGO PricingRule = "BOGO"
	// PricingRulePercentage takes a flat percentage off the line total
	PricingRulePercentage PricingRule = "PERCENTAGE"
)

// IsValid checks if the pricing rule is known
func (r PricingRule) IsValid() bool {
	switch r {
	case PricingRuleTiered, PricingRuleBOGO, PricingRulePercentage:
		return true
	}
	return false
}

// Tier is one quantity threshold of a tiered bundle
type Tier struct {
	MinQuantity int
	UnitPrice   decimal.Decimal
}

// Bundle is the aggregate root for a multi-buy offer on a product
type Bundle struct {
	shared.BaseAggregateRoot
	Name      string
	Slug      string
	ProductID uuid.UUID
	UnitPrice decimal.Decimal
	Rule      PricingRule
	Tiers     []Tier `gorm:"serializer:json"`
	// BOGO parameters: buy BuyQty, get FreeQty free
	BuyQty  int
	FreeQty int
	// Percentage off for PricingRulePercentage
	PercentOff decimal.Decimal
	Active     bool
}

// TableName specifies the table name for GORM
func (Bundle) TableName() string {
	return "bundles"
}

// NewBundle creates an active bundle for a product
func NewBundle(name string, productID uuid.UUID, unitPrice decimal.Decimal, rule PricingRule) (*Bundle, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Bundle name cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Bundle product cannot be empty")
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Bundle unit price must be positive")
	}
	if !rule.IsValid() {
		return nil, shared.NewDomainError("INVALID_RULE", "Unknown bundle pricing rule")
	}

	return &Bundle{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              Slugify(name),
		ProductID:         productID,
		UnitPrice:         unitPrice,
		Rule:              rule,
		Tiers:             make([]Tier, 0),
		Active:            true,
	}, nil
}

// SetTiers replaces the tier table for a tiered bundle. Tiers are kept
// sorted by minimum quantity ascending.
func (b *Bundle) SetTiers(tiers []Tier) error {
	if b.Rule != PricingRuleTiered {
		return shared.NewDomainError("INVALID_RULE", "Tiers only apply to tiered bundles")
	}
	for _, t := range tiers {
		if t.MinQuantity <= 0 {
			return shared.NewDomainError("INVALID_TIER", "Tier minimum quantity must be positive")
		}
		if t.UnitPrice.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_TIER", "Tier unit price must be positive")
		}
	}
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinQuantity < sorted[j].MinQuantity })
	b.Tiers = sorted
	b.Touch()
	return nil
}

// SetBOGO configures buy-N-get-M-free parameters
func (b *Bundle) SetBOGO(buyQty, freeQty int) error {
	if b.Rule != PricingRuleBOGO {
		return shared.NewDomainError("INVALID_RULE", "BOGO parameters only apply to BOGO bundles")
	}
	if buyQty <= 0 || freeQty <= 0 {
		return shared.NewDomainError("INVALID_BOGO", "Buy and free quantities must be positive")
	}
	b.BuyQty = buyQty
	b.FreeQty = freeQty
	b.Touch()
	return nil
}

// SetPercentOff configures the flat percentage discount
func (b *Bundle) SetPercentOff(percent decimal.Decimal) error {
	if b.Rule != PricingRulePercentage {
		return shared.NewDomainError("INVALID_RULE", "Percentage only applies to percentage bundles")
	}
	if percent.LessThanOrEqual(decimal.Zero) || percent.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_PERCENT", "Percentage must be between 0 and 100")
	}
	b.PercentOff = percent
	b.Touch()
	return nil
}

// Activate makes the bundle available
func (b *Bundle) Activate() {
	b.Active = true
	b.Touch()
}

// Deactivate withdraws the bundle
func (b *Bundle) Deactivate() {
	b.Active = false
	b.Touch()
}

// BundleQuote is the priced outcome of a bundle purchase
type BundleQuote struct {
	Quantity      int
	PayableUnits  int
	EffectiveUnit decimal.Decimal
	ListTotal     decimal.Decimal
	Total         decimal.Decimal
	Savings       decimal.Decimal
}

// Price computes the bundle total for a quantity
func (b *Bundle) Price(quantity int) (*BundleQuote, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	listTotal := b.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	q := &BundleQuote{
		Quantity:     quantity,
		PayableUnits: quantity,
		ListTotal:    listTotal,
		Total:        listTotal,
	}

	switch b.Rule {
	case PricingRuleTiered:
		unit := b.UnitPrice
		for _, t := range b.Tiers {
			if quantity >= t.MinQuantity {
				unit = t.UnitPrice
			}
		}
		q.Total = unit.Mul(decimal.NewFromInt(int64(quantity)))

	case PricingRuleBOGO:
		if b.BuyQty > 0 {
			group := b.BuyQty + b.FreeQty
			free := (quantity / group) * b.FreeQty
			q.PayableUnits = quantity - free
			q.Total = b.UnitPrice.Mul(decimal.NewFromInt(int64(q.PayableUnits)))
		}

	case PricingRulePercentage:
		factor := decimal.NewFromInt(100).Sub(b.PercentOff).Div(decimal.NewFromInt(100))
		q.Total = listTotal.Mul(factor).Round(2)
	}

	q.Savings = q.ListTotal.Sub(q.Total)
	if q.PayableUnits > 0 {
		q.EffectiveUnit = q.Total.Div(decimal.NewFromInt(int64(q.PayableUnits))).Round(2)
	}

	return q, nil
}
