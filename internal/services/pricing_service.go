package services

import (
	"campaign-system/models"

	"github.com/shopspring/decimal"
)

// VAT is the flat UK rate applied after the bulk discount. Not
// configurable at runtime.
var vatRate = decimal.NewFromFloat(0.20)

// Bulk discount tiers keyed by total slots across the cart. Checked
// highest first; tiers do not stack.
var discountTiers = []struct {
	minSlots   int
	percentage decimal.Decimal
}{
	{6, decimal.NewFromFloat(0.20)},
	{4, decimal.NewFromFloat(0.15)},
	{2, decimal.NewFromFloat(0.10)},
}

// PricingService computes the price breakdown for a cart. Pure and
// deterministic: no I/O, no error paths. Callers validate slot bounds
// before pricing.
type PricingService struct{}

func NewPricingService() *PricingService {
	return &PricingService{}
}

// Price derives a fresh breakdown from the cart. Intermediate math
// keeps full precision; rounding to 2dp (half away from zero) happens
// only on the output fields.
func (s *PricingService) Price(items []models.CartItem) models.PricingBreakdown {
	subtotal := decimal.Zero
	totalSlots := 0
	totalAdverts := 0

	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice)
		totalSlots += item.SlotsRequired
		totalAdverts += item.SlotsRequired * item.AdvertsPerSlot
	}

	discountPct := discountFor(totalSlots)
	discountAmount := subtotal.Mul(discountPct)
	discountedSubtotal := subtotal.Sub(discountAmount)
	vat := discountedSubtotal.Mul(vatRate)
	total := discountedSubtotal.Add(vat)

	return models.PricingBreakdown{
		Subtotal:           subtotal.Round(2),
		DiscountPercentage: discountPct.Mul(decimal.NewFromInt(100)),
		DiscountAmount:     discountAmount.Round(2),
		DiscountedSubtotal: discountedSubtotal.Round(2),
		VAT:                vat.Round(2),
		Total:              total.Round(2),
		TotalSlots:         totalSlots,
		TotalAdverts:       totalAdverts,
	}
}

// PriceSingle prices a one-campaign booking request.
func (s *PricingService) PriceSingle(pricePerSlot decimal.Decimal, slots, advertsPerSlot int) models.PricingBreakdown {
	return s.Price([]models.CartItem{{
		SlotsRequired:  slots,
		PricePerSlot:   pricePerSlot,
		TotalPrice:     pricePerSlot.Mul(decimal.NewFromInt(int64(slots))),
		AdvertsPerSlot: advertsPerSlot,
	}})
}

func discountFor(totalSlots int) decimal.Decimal {
	for _, tier := range discountTiers {
		if totalSlots >= tier.minSlots {
			return tier.percentage
		}
	}
	return decimal.Zero
}
