package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

type Booking struct {
	ID             string          `db:"id" json:"id"`
	Reference      string          `db:"reference" json:"reference"`
	CampaignID     string          `db:"campaign_id" json:"campaign_id"`
	CustomerName   string          `db:"customer_name" json:"customer_name"`
	CustomerEmail  string          `db:"customer_email" json:"customer_email"`
	CustomerPhone  string          `db:"customer_phone" json:"customer_phone"`
	Company        string          `db:"company" json:"company,omitempty"`
	Requirements   string          `db:"requirements" json:"requirements,omitempty"`
	SlotsRequired  int             `db:"slots_required" json:"slots_required"`
	TotalPrice     decimal.Decimal `db:"total_price" json:"total_price"`
	Status         BookingStatus   `db:"status" json:"status"`
	PaymentStatus  PaymentStatus   `db:"payment_status" json:"payment_status"`
	ContractSigned bool            `db:"contract_signed" json:"contract_signed"`
	Created        time.Time       `db:"created" json:"created"`
}

// BookingRequest is the inbound payload for creating a booking.
type BookingRequest struct {
	CampaignID    string `json:"campaign_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Company       string `json:"company,omitempty"`
	SlotsRequired int    `json:"slots_required"`
	Requirements  string `json:"requirements,omitempty"`
}
