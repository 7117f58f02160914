package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Availability is the derived three-state label for a campaign's
// remaining slots.
type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityLimited   Availability = "limited"
	AvailabilityFull      Availability = "full"
)

// Remaining-slot thresholds for the availability label.
const (
	limitedThreshold   = 1
	availableThreshold = 5
)

// AvailabilityFor derives the label from a remaining slot count.
func AvailabilityFor(slotsAvailable int) Availability {
	switch {
	case slotsAvailable >= availableThreshold:
		return AvailabilityAvailable
	case slotsAvailable >= limitedThreshold:
		return AvailabilityLimited
	default:
		return AvailabilityFull
	}
}

func (a Availability) IsValid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityLimited, AvailabilityFull:
		return true
	}
	return false
}

type Campaign struct {
	ID             string          `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	Date           time.Time       `db:"date" json:"date"`
	StartTime      string          `db:"start_time" json:"start_time"`
	EndTime        string          `db:"end_time" json:"end_time"`
	Location       string          `db:"location" json:"location"`
	SlotsAvailable int             `db:"slots_available" json:"slots_available"`
	NumberAdverts  int             `db:"number_adverts" json:"number_adverts"`
	Price          decimal.Decimal `db:"price" json:"price"`
	Availability   Availability    `json:"availability"`
}

// Reservation is the result of an atomic slot decrement against one
// campaign.
type Reservation struct {
	CampaignID     string       `json:"campaign_id"`
	Slots          int          `json:"slots"`
	SlotsAvailable int          `json:"slots_available"`
	Availability   Availability `json:"availability"`
}
