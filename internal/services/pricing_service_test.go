package services

import (
	"testing"

	"campaign-system/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func cartItem(total string, slots, adverts int) models.CartItem {
	return models.CartItem{
		SlotsRequired:  slots,
		TotalPrice:     decimal.RequireFromString(total),
		AdvertsPerSlot: adverts,
	}
}

func TestPricingService_EmptyCart(t *testing.T) {
	pricing := NewPricingService()

	breakdown := pricing.Price(nil)

	assert.True(t, breakdown.Subtotal.IsZero())
	assert.True(t, breakdown.DiscountAmount.IsZero())
	assert.True(t, breakdown.VAT.IsZero())
	assert.True(t, breakdown.Total.IsZero())
	assert.Equal(t, 0, breakdown.TotalSlots)
	assert.Equal(t, 0, breakdown.TotalAdverts)
}

func TestPricingService_DiscountTierBoundaries(t *testing.T) {
	pricing := NewPricingService()

	tests := []struct {
		name     string
		slots    int
		discount string
	}{
		{"Single slot gets no discount", 1, "0"},
		{"Two slots hit the 10 percent tier", 2, "10"},
		{"Three slots stay on 10 percent", 3, "10"},
		{"Four slots hit the 15 percent tier", 4, "15"},
		{"Five slots stay on 15 percent", 5, "15"},
		{"Six slots hit the 20 percent tier", 6, "20"},
		{"Twenty slots stay on 20 percent", 20, "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown := pricing.Price([]models.CartItem{cartItem("100.00", tt.slots, 1)})
			assert.True(t, breakdown.DiscountPercentage.Equal(decimal.RequireFromString(tt.discount)),
				"expected %s%%, got %s%%", tt.discount, breakdown.DiscountPercentage)
		})
	}
}

func TestPricingService_RoundingAtOutputOnly(t *testing.T) {
	pricing := NewPricingService()

	// 3 slots on the 10% tier: intermediate math keeps full precision,
	// rounding half away from zero happens only on the outputs.
	breakdown := pricing.Price([]models.CartItem{cartItem("89.99", 3, 1)})

	assert.Equal(t, "89.99", breakdown.Subtotal.StringFixed(2))
	assert.Equal(t, "9.00", breakdown.DiscountAmount.StringFixed(2))
	assert.Equal(t, "80.99", breakdown.DiscountedSubtotal.StringFixed(2))
	assert.Equal(t, "16.20", breakdown.VAT.StringFixed(2))
	assert.Equal(t, "97.19", breakdown.Total.StringFixed(2))
}

func TestPricingService_VATOnDiscountedSubtotal(t *testing.T) {
	pricing := NewPricingService()

	// 6 slots at 100 each: 600 - 20% = 480, VAT 96, total 576.
	breakdown := pricing.PriceSingle(decimal.RequireFromString("100.00"), 6, 2)

	assert.Equal(t, "600.00", breakdown.Subtotal.StringFixed(2))
	assert.Equal(t, "120.00", breakdown.DiscountAmount.StringFixed(2))
	assert.Equal(t, "480.00", breakdown.DiscountedSubtotal.StringFixed(2))
	assert.Equal(t, "96.00", breakdown.VAT.StringFixed(2))
	assert.Equal(t, "576.00", breakdown.Total.StringFixed(2))
	assert.Equal(t, 6, breakdown.TotalSlots)
	assert.Equal(t, 12, breakdown.TotalAdverts)
}

func TestPricingService_MultiItemCartSumsSlotsAcrossLines(t *testing.T) {
	pricing := NewPricingService()

	// Two lines of 2 slots each: the tier is keyed to the cart total
	// of 4 slots, not to any single line.
	items := []models.CartItem{
		cartItem("200.00", 2, 1),
		cartItem("300.00", 2, 3),
	}
	breakdown := pricing.Price(items)

	assert.Equal(t, 4, breakdown.TotalSlots)
	assert.Equal(t, 8, breakdown.TotalAdverts)
	assert.True(t, breakdown.DiscountPercentage.Equal(decimal.RequireFromString("15")))
	assert.Equal(t, "75.00", breakdown.DiscountAmount.StringFixed(2))
}

func TestPricingService_Deterministic(t *testing.T) {
	pricing := NewPricingService()
	items := []models.CartItem{cartItem("89.99", 3, 1), cartItem("45.50", 2, 2)}

	first := pricing.Price(items)
	second := pricing.Price(items)

	assert.Equal(t, first.Subtotal.String(), second.Subtotal.String())
	assert.Equal(t, first.DiscountAmount.String(), second.DiscountAmount.String())
	assert.Equal(t, first.VAT.String(), second.VAT.String())
	assert.Equal(t, first.Total.String(), second.Total.String())
	assert.Equal(t, first.TotalSlots, second.TotalSlots)
}
