package store

import (
	"context"

	"campaign-system/models"
)

// CampaignStore is the persistence collaborator for campaigns and
// bookings. DecrementSlots must be a single atomic conditional
// mutation: the remaining-count precondition is checked at write time,
// never in a separate read.
type CampaignStore interface {
	ListCampaigns(ctx context.Context) ([]models.Campaign, error)
	GetCampaign(ctx context.Context, campaignID string) (*models.Campaign, error)

	// DecrementSlots atomically subtracts n from the campaign's
	// remaining slots iff at least n remain. ok reports whether the
	// decrement happened; when ok is false, remaining holds the
	// current count. A missing campaign returns
	// status.ErrCampaignNotFound.
	DecrementSlots(ctx context.Context, campaignID string, n int) (remaining int, ok bool, err error)

	// IncrementSlots returns previously reserved slots to the
	// campaign. Used only by the compensation path.
	IncrementSlots(ctx context.Context, campaignID string, n int) (remaining int, err error)

	InsertBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	SetPaymentStatus(ctx context.Context, bookingID string, ps models.PaymentStatus) error
	SetContractSigned(ctx context.Context, bookingID string, signed bool) error
}
