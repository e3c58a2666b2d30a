package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/promo"
)

func lines(totals ...int64) []promo.CartLine {
	out := make([]promo.CartLine, 0, len(totals))
	for _, t := range totals {
		out = append(out, promo.CartLine{LineTotal: decimal.NewFromInt(t)})
	}
	return out
}

func TestComputeQuote_EmptyCart(t *testing.T) {
	q := ComputeQuote(nil, nil)
	assert.True(t, q.Subtotal.IsZero())
	assert.True(t, q.Shipping.IsZero())
	assert.True(t, q.Total.IsZero())
}

func TestComputeQuote_FlatShippingBelowThreshold(t *testing.T) {
	q := ComputeQuote(lines(600), nil)
	assert.True(t, q.Shipping.Equal(FlatShippingFee))
	assert.True(t, q.Total.Equal(decimal.NewFromInt(699)))
}

func TestComputeQuote_FreeShippingAtThreshold(t *testing.T) {
	q := ComputeQuote(lines(1000), nil)
	assert.True(t, q.Shipping.IsZero())
	assert.True(t, q.Total.Equal(decimal.NewFromInt(1000)))
}

func TestComputeQuote_TenPercentPromo(t *testing.T) {
	p := promo.ThresholdPromo("SAVE10", decimal.NewFromInt(12000))
	require.NotNil(t, p)

	q := ComputeQuote(lines(7000, 5000), p)

	assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(12000)))
	assert.True(t, q.Discount.Equal(decimal.NewFromInt(1200)))
	assert.True(t, q.Shipping.IsZero())
	assert.True(t, q.Total.Equal(decimal.NewFromInt(10800)))
}

func TestComputeQuote_TotalNeverNegative(t *testing.T) {
	p, err := promo.NewPromoCode("BIGFLAT", promo.DiscountTypeFixed, decimal.NewFromInt(5000), promo.ScopeAll)
	require.NoError(t, err)

	q := ComputeQuote(lines(300), p)
	assert.False(t, q.Total.IsNegative())
}

func TestComputeQuote_Invariant(t *testing.T) {
	p := promo.ThresholdPromo("SAVE5", decimal.NewFromInt(6000))
	require.NotNil(t, p)

	for _, subtotals := range [][]int64{{500}, {999}, {1000}, {6000}, {2500, 3500}} {
		q := ComputeQuote(lines(subtotals...), p)
		want := q.Subtotal.Add(q.Shipping).Sub(q.Discount)
		if want.IsNegative() {
			want = decimal.Zero
		}
		assert.True(t, q.Total.Equal(want), "subtotals %v", subtotals)
	}
}

func TestComputeQuote_Deterministic(t *testing.T) {
	in := lines(1500, 2500)
	p := promo.ThresholdPromo("SAVE10", decimal.NewFromInt(4000))

	a := ComputeQuote(in, p)
	b := ComputeQuote(in, p)
	assert.Equal(t, a, b)
}

func TestComputeQuote_InclusiveTaxes(t *testing.T) {
	q := ComputeQuote(lines(1180), nil)
	// GST share of an inclusive 1180 at 18% is 180
	assert.True(t, q.Taxes.Equal(decimal.NewFromInt(180)), "got %s", q.Taxes)
	// Taxes are informational and never added to the total
	assert.True(t, q.Total.Equal(decimal.NewFromInt(1180)))
}
