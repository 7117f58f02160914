package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityFor(t *testing.T) {
	tests := []struct {
		name     string
		slots    int
		expected Availability
	}{
		{"Zero slots is full", 0, AvailabilityFull},
		{"One slot is limited", 1, AvailabilityLimited},
		{"Four slots is limited", 4, AvailabilityLimited},
		{"Five slots is available", 5, AvailabilityAvailable},
		{"Many slots is available", 250, AvailabilityAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AvailabilityFor(tt.slots))
		})
	}
}

func TestAvailability_IsValid(t *testing.T) {
	assert.True(t, AvailabilityAvailable.IsValid())
	assert.True(t, AvailabilityLimited.IsValid())
	assert.True(t, AvailabilityFull.IsValid())
	assert.False(t, Availability("soldout").IsValid())
	assert.False(t, Availability("").IsValid())
}

func TestBookingStatus_IsValid(t *testing.T) {
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled} {
		assert.True(t, s.IsValid())
	}
	assert.False(t, BookingStatus("done").IsValid())
}

func TestPaymentStatus_IsValid(t *testing.T) {
	for _, s := range []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded} {
		assert.True(t, s.IsValid())
	}
	assert.False(t, PaymentStatus("complete").IsValid())
}

func TestCampaign_JSONSerialization(t *testing.T) {
	campaign := Campaign{
		ID:             "campaign-123",
		Name:           "Spring Push",
		Date:           time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		StartTime:      "09:00",
		EndTime:        "17:00",
		Location:       "Leeds",
		SlotsAvailable: 3,
		NumberAdverts:  12,
		Price:          decimal.RequireFromString("149.99"),
		Availability:   AvailabilityLimited,
	}

	jsonData, err := json.Marshal(campaign)
	require.NoError(t, err)

	var unmarshaled Campaign
	err = json.Unmarshal(jsonData, &unmarshaled)
	require.NoError(t, err)

	assert.Equal(t, campaign.ID, unmarshaled.ID)
	assert.Equal(t, campaign.Name, unmarshaled.Name)
	assert.Equal(t, campaign.SlotsAvailable, unmarshaled.SlotsAvailable)
	assert.Equal(t, campaign.Availability, unmarshaled.Availability)
	assert.True(t, campaign.Price.Equal(unmarshaled.Price))
}

func TestBooking_JSONSerialization(t *testing.T) {
	booking := Booking{
		ID:            "booking-123",
		Reference:     "A1B2C3",
		CampaignID:    "campaign-456",
		CustomerName:  "Jo Smith",
		CustomerEmail: "jo@example.com",
		CustomerPhone: "+44 113 496 0000",
		SlotsRequired: 2,
		TotalPrice:    decimal.RequireFromString("323.98"),
		Status:        BookingPending,
		PaymentStatus: PaymentPending,
	}

	jsonData, err := json.Marshal(booking)
	require.NoError(t, err)

	var unmarshaled Booking
	err = json.Unmarshal(jsonData, &unmarshaled)
	require.NoError(t, err)

	assert.Equal(t, booking.ID, unmarshaled.ID)
	assert.Equal(t, booking.Reference, unmarshaled.Reference)
	assert.Equal(t, booking.CampaignID, unmarshaled.CampaignID)
	assert.Equal(t, booking.SlotsRequired, unmarshaled.SlotsRequired)
	assert.Equal(t, booking.Status, unmarshaled.Status)
	assert.Equal(t, booking.PaymentStatus, unmarshaled.PaymentStatus)
	assert.False(t, unmarshaled.ContractSigned)
	assert.True(t, booking.TotalPrice.Equal(unmarshaled.TotalPrice))
}
