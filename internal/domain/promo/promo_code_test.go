package promo

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared"
)

func rejectionCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

// ============================================
// Discount Calculation Tests
// ============================================

func TestPromoCode_DiscountFor_PercentageAll(t *testing.T) {
	p, err := NewPromoCode("save10", DiscountTypePercentage, decimal.NewFromInt(10), ScopeAll)
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", p.Code, "codes are normalized to upper case")

	d := p.DiscountFor([]CartLine{
		{ProductID: uuid.New(), LineTotal: decimal.NewFromInt(7000)},
		{ProductID: uuid.New(), LineTotal: decimal.NewFromInt(5000)},
	})
	assert.True(t, d.Equal(decimal.NewFromInt(1200)))
}

func TestPromoCode_DiscountFor_ScopedToProducts(t *testing.T) {
	inScope := uuid.New()
	p, err := NewPromoCode("PROD20", DiscountTypePercentage, decimal.NewFromInt(20), ScopeProducts)
	require.NoError(t, err)
	require.NoError(t, p.RestrictToProducts([]uuid.UUID{inScope}))

	d := p.DiscountFor([]CartLine{
		{ProductID: inScope, LineTotal: decimal.NewFromInt(1000)},
		{ProductID: uuid.New(), LineTotal: decimal.NewFromInt(9000)},
	})
	// Only the in-scope line earns the percentage
	assert.True(t, d.Equal(decimal.NewFromInt(200)))
}

func TestPromoCode_DiscountFor_ScopedToCategories(t *testing.T) {
	p, err := NewPromoCode("KITCHEN15", DiscountTypePercentage, decimal.NewFromInt(15), ScopeCategories)
	require.NoError(t, err)
	require.NoError(t, p.RestrictToCategories([]string{"kitchen"}))

	d := p.DiscountFor([]CartLine{
		{ProductID: uuid.New(), Category: "Kitchen", LineTotal: decimal.NewFromInt(2000)},
		{ProductID: uuid.New(), Category: "decor", LineTotal: decimal.NewFromInt(3000)},
	})
	assert.True(t, d.Equal(decimal.NewFromInt(300)), "category match is case insensitive")
}

func TestPromoCode_DiscountFor_FixedCappedAtSubtotal(t *testing.T) {
	p, err := NewPromoCode("FLAT500", DiscountTypeFixed, decimal.NewFromInt(500), ScopeAll)
	require.NoError(t, err)

	d := p.DiscountFor([]CartLine{{ProductID: uuid.New(), LineTotal: decimal.NewFromInt(300)}})
	assert.True(t, d.Equal(decimal.NewFromInt(300)))
}

// ============================================
// CheckAgainst Tests
// ============================================

func TestPromoCode_CheckAgainst(t *testing.T) {
	cart := []CartLine{{ProductID: uuid.New(), Category: "decor", LineTotal: decimal.NewFromInt(2000)}}
	now := time.Now()

	t.Run("valid", func(t *testing.T) {
		p, _ := NewPromoCode("OK10", DiscountTypePercentage, decimal.NewFromInt(10), ScopeAll)
		assert.NoError(t, p.CheckAgainst(cart, now))
	})

	t.Run("inactive", func(t *testing.T) {
		p, _ := NewPromoCode("OFF", DiscountTypePercentage, decimal.NewFromInt(10), ScopeAll)
		p.Deactivate()
		assert.Equal(t, "PROMO_INACTIVE", rejectionCode(t, p.CheckAgainst(cart, now)))
	})

	t.Run("expired", func(t *testing.T) {
		p, _ := NewPromoCode("OLD", DiscountTypePercentage, decimal.NewFromInt(10), ScopeAll)
		p.SetExpiry(now.Add(-time.Hour))
		assert.Equal(t, "PROMO_EXPIRED", rejectionCode(t, p.CheckAgainst(cart, now)))
	})

	t.Run("below minimum", func(t *testing.T) {
		p, _ := NewPromoCode("MIN5K", DiscountTypePercentage, decimal.NewFromInt(10), ScopeAll)
		require.NoError(t, p.SetMinSubtotal(decimal.NewFromInt(5000)))
		assert.Equal(t, "PROMO_BELOW_MINIMUM", rejectionCode(t, p.CheckAgainst(cart, now)))
	})

	t.Run("nothing eligible", func(t *testing.T) {
		p, _ := NewPromoCode("SHOES", DiscountTypePercentage, decimal.NewFromInt(10), ScopeCategories)
		require.NoError(t, p.RestrictToCategories([]string{"footwear"}))
		assert.Equal(t, "PROMO_NOT_APPLICABLE", rejectionCode(t, p.CheckAgainst(cart, now)))
	})
}

// ============================================
// Threshold Promotion Tests
// ============================================

func TestSuggestionsFor(t *testing.T) {
	assert.Nil(t, SuggestionsFor(decimal.NewFromInt(4999)))

	mid := SuggestionsFor(decimal.NewFromInt(5000))
	require.Len(t, mid, 1)
	assert.Equal(t, "SAVE5", mid[0].Code)

	high := SuggestionsFor(decimal.NewFromInt(10000))
	require.Len(t, high, 1)
	assert.Equal(t, "SAVE10", high[0].Code, "only the best suggestion is offered")
}

func TestThresholdPromo(t *testing.T) {
	assert.Nil(t, ThresholdPromo("SAVE10", decimal.NewFromInt(9999)))
	assert.Nil(t, ThresholdPromo("NOTREAL", decimal.NewFromInt(50000)))

	p := ThresholdPromo("SAVE10", decimal.NewFromInt(12000))
	require.NotNil(t, p)
	d := p.DiscountFor([]CartLine{{ProductID: uuid.New(), LineTotal: decimal.NewFromInt(12000)}})
	assert.True(t, d.Equal(decimal.NewFromInt(1200)))
}
