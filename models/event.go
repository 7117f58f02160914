package models

import "time"

// ChangeEventType is the push-channel message type.
type ChangeEventType string

const (
	ChangeEventBooking      ChangeEventType = "booking"
	ChangeEventAvailability ChangeEventType = "availability"
)

// ChangeEvent is fanned out to connected listeners after a successful
// booking or availability change. Delivery is best-effort.
type ChangeEvent struct {
	Type      ChangeEventType `json:"type"`
	Data      ChangeEventData `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

type ChangeEventData struct {
	CampaignID     string       `json:"campaign_id"`
	BookingID      string       `json:"booking_id,omitempty"`
	SlotsBooked    int          `json:"slots_booked,omitempty"`
	SlotsAvailable int          `json:"slots_available"`
	Availability   Availability `json:"availability,omitempty"`
}
