package promo

import "github.com/shopspring/decimal"

// Built-in threshold promotions offered as one-click suggestions at
// checkout. The high threshold earns 10% off, the mid threshold 5%.
var (
	HighThresholdSubtotal = decimal.NewFromInt(10000)
	MidThresholdSubtotal  = decimal.NewFromInt(5000)

	HighThresholdPercent = decimal.NewFromInt(10)
	MidThresholdPercent  = decimal.NewFromInt(5)
)

const (
	HighThresholdCode = "SAVE10"
	MidThresholdCode  = "SAVE5"
)

// ThresholdSuggestion is a built-in promotion the customer qualifies for
type ThresholdSuggestion struct {
	Code    string          `json:"code"`
	Percent decimal.Decimal `json:"percent"`
}

// SuggestionsFor returns the threshold promotions available at the given
// subtotal. At most the single best suggestion is returned.
func SuggestionsFor(subtotal decimal.Decimal) []ThresholdSuggestion {
	switch {
	case subtotal.GreaterThanOrEqual(HighThresholdSubtotal):
		return []ThresholdSuggestion{{Code: HighThresholdCode, Percent: HighThresholdPercent}}
	case subtotal.GreaterThanOrEqual(MidThresholdSubtotal):
		return []ThresholdSuggestion{{Code: MidThresholdCode, Percent: MidThresholdPercent}}
	}
	return nil
}

// ThresholdPromo materialises a built-in threshold code as a PromoCode so
// the quote pipeline can treat it like any stored promo. Returns nil when
// the code is not a threshold code or the subtotal does not qualify.
func ThresholdPromo(code string, subtotal decimal.Decimal) *PromoCode {
	var percent, min decimal.Decimal
	switch code {
	case HighThresholdCode:
		percent, min = HighThresholdPercent, HighThresholdSubtotal
	case MidThresholdCode:
		percent, min = MidThresholdPercent, MidThresholdSubtotal
	default:
		return nil
	}
	if subtotal.LessThan(min) {
		return nil
	}

	promo, err := NewPromoCode(code, DiscountTypePercentage, percent, ScopeAll)
	if err != nil {
		return nil
	}
	_ = promo.SetMinSubtotal(min)
	return promo
}
