package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/promo"
)

// Pricing constants for the storefront. Prices are GST-inclusive; the tax
// figure on a quote is informational and never added on top.
var (
	// FlatShippingFee is charged below the free-shipping threshold
	FlatShippingFee = decimal.NewFromInt(99)

	// FreeShippingThreshold is the subtotal at which shipping becomes free
	FreeShippingThreshold = decimal.NewFromInt(1000)

	// GSTRate is the inclusive goods-and-services tax rate
	GSTRate = decimal.NewFromFloat(0.18)
)

// Quote is the derived order summary for a cart. It is never stored on its
// own - it is recomputed from the cart lines and the applied promo.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Taxes    decimal.Decimal `json:"taxes"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeQuote derives the order summary from cart lines and an optional
// promo code. Deterministic: the same inputs always produce the same quote.
//
// Total always satisfies total = max(0, subtotal + shipping - discount).
func ComputeQuote(lines []promo.CartLine, applied *promo.PromoCode) Quote {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal)
	}

	discount := decimal.Zero
	if applied != nil {
		discount = applied.DiscountFor(lines)
	}

	shipping := decimal.Zero
	if subtotal.IsPositive() && subtotal.LessThan(FreeShippingThreshold) {
		shipping = FlatShippingFee
	}

	total := subtotal.Add(shipping).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	// Inclusive GST share of the total: total * r / (1 + r)
	taxes := total.Mul(GSTRate).Div(decimal.NewFromInt(1).Add(GSTRate)).Round(2)

	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Taxes:    taxes,
		Total:    total,
	}
}
