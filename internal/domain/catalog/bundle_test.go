package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// Slug Tests
// ============================================

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Copper Bottle 1L", "copper-bottle-1l"},
		{"  Neem & Tulsi Soap  ", "neem-tulsi-soap"},
		{"Pack of 3!", "pack-of-3"},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.name))
	}
}

// ============================================
// Bundle Pricing Tests
// ============================================

func TestBundle_Price_Tiered(t *testing.T) {
	b, err := NewBundle("Bottle Multi-Pack", uuid.New(), decimal.NewFromInt(500), PricingRuleTiered)
	require.NoError(t, err)
	require.NoError(t, b.SetTiers([]Tier{
		{MinQuantity: 3, UnitPrice: decimal.NewFromInt(450)},
		{MinQuantity: 6, UnitPrice: decimal.NewFromInt(400)},
	}))

	tests := []struct {
		qty   int
		total int64
	}{
		{1, 500},
		{2, 1000},
		{3, 1350},  // crosses first tier
		{5, 2250},
		{6, 2400},  // crosses second tier
		{10, 4000},
	}
	for _, tt := range tests {
		q, err := b.Price(tt.qty)
		require.NoError(t, err)
		assert.True(t, q.Total.Equal(decimal.NewFromInt(tt.total)), "qty %d: got %s", tt.qty, q.Total)
	}
}

func TestBundle_Price_BOGO(t *testing.T) {
	b, err := NewBundle("Soap Buy 2 Get 1", uuid.New(), decimal.NewFromInt(100), PricingRuleBOGO)
	require.NoError(t, err)
	require.NoError(t, b.SetBOGO(2, 1))

	tests := []struct {
		qty     int
		payable int
	}{
		{1, 1},
		{2, 2},
		{3, 2}, // one full group
		{5, 4},
		{6, 4}, // two full groups
		{7, 5},
	}
	for _, tt := range tests {
		q, err := b.Price(tt.qty)
		require.NoError(t, err)
		assert.Equal(t, tt.payable, q.PayableUnits, "qty %d", tt.qty)
		assert.True(t, q.Total.Equal(decimal.NewFromInt(int64(tt.payable*100))))
	}
}

func TestBundle_Price_Percentage(t *testing.T) {
	b, err := NewBundle("Festive 15 Off", uuid.New(), decimal.NewFromInt(200), PricingRulePercentage)
	require.NoError(t, err)
	require.NoError(t, b.SetPercentOff(decimal.NewFromInt(15)))

	q, err := b.Price(4)
	require.NoError(t, err)
	assert.True(t, q.ListTotal.Equal(decimal.NewFromInt(800)))
	assert.True(t, q.Total.Equal(decimal.NewFromInt(680)))
	assert.True(t, q.Savings.Equal(decimal.NewFromInt(120)))
	assert.True(t, q.EffectiveUnit.Equal(decimal.NewFromInt(170)))
}

func TestBundle_Price_InvalidQuantity(t *testing.T) {
	b, err := NewBundle("Anything", uuid.New(), decimal.NewFromInt(100), PricingRulePercentage)
	require.NoError(t, err)
	_, err = b.Price(0)
	assert.Error(t, err)
}

func TestBundle_RuleParamGuards(t *testing.T) {
	tiered, _ := NewBundle("T", uuid.New(), decimal.NewFromInt(100), PricingRuleTiered)
	assert.Error(t, tiered.SetBOGO(2, 1))
	assert.Error(t, tiered.SetPercentOff(decimal.NewFromInt(10)))

	bogo, _ := NewBundle("B", uuid.New(), decimal.NewFromInt(100), PricingRuleBOGO)
	assert.Error(t, bogo.SetTiers([]Tier{{MinQuantity: 2, UnitPrice: decimal.NewFromInt(90)}}))
	assert.Error(t, bogo.SetBOGO(0, 1))

	pct, _ := NewBundle("P", uuid.New(), decimal.NewFromInt(100), PricingRulePercentage)
	assert.Error(t, pct.SetPercentOff(decimal.NewFromInt(100)))
	assert.Error(t, pct.SetPercentOff(decimal.Zero))
}

// ============================================
// Product Tests
// ============================================

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("Copper Bottle 1L", "kitchen", decimal.NewFromInt(1200), decimal.NewFromInt(1500))
	require.NoError(t, err)
	assert.Equal(t, "copper-bottle-1l", p.Slug)
	assert.True(t, p.Active)

	_, err = NewProduct("", "kitchen", decimal.NewFromInt(1), decimal.NewFromInt(1))
	assert.Error(t, err)

	_, err = NewProduct("Cheap MRP", "kitchen", decimal.NewFromInt(100), decimal.NewFromInt(50))
	assert.Error(t, err)
}

func TestProduct_Variants(t *testing.T) {
	p, err := NewProduct("Bottle", "kitchen", decimal.NewFromInt(1000), decimal.NewFromInt(1200))
	require.NoError(t, err)

	v, err := p.AddVariant("750ml", "BTL-750", decimal.NewFromInt(-200))
	require.NoError(t, err)

	_, err = p.AddVariant("750ml", "BTL-750B", decimal.Zero)
	assert.Error(t, err, "duplicate label")

	price, err := p.VariantPrice(&v.ID)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(800)))

	base, err := p.VariantPrice(nil)
	require.NoError(t, err)
	assert.True(t, base.Equal(decimal.NewFromInt(1000)))

	require.NoError(t, p.RemoveVariant(v.ID))
	_, err = p.VariantPrice(&v.ID)
	assert.Error(t, err)
}
