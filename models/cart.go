package models

import "github.com/shopspring/decimal"

// CartItem is a client-held line item. It only exists to feed the
// pricing engine; it is never persisted.
type CartItem struct {
	CampaignID     string          `json:"campaign_id"`
	SlotsRequired  int             `json:"slots_required"`
	PricePerSlot   decimal.Decimal `json:"price_per_slot"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	AdvertsPerSlot int             `json:"adverts_per_slot"`
}

// PricingBreakdown is derived fresh on every pricing call. All monetary
// fields are rounded to 2dp; never cached.
type PricingBreakdown struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	DiscountedSubtotal decimal.Decimal `json:"discounted_subtotal"`
	VAT                decimal.Decimal `json:"vat"`
	Total              decimal.Decimal `json:"total"`
	TotalSlots         int             `json:"total_slots"`
	TotalAdverts       int             `json:"total_adverts"`
}
