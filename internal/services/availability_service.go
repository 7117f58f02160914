package services

import (
	"context"
	"fmt"
	"log"

	"campaign-system/internal/status"
	"campaign-system/internal/store"
	"campaign-system/models"
)

// Slot bounds for a single reservation.
const (
	MinSlotsPerBooking = 1
	MaxSlotsPerBooking = 20
)

// AvailabilityService owns every mutation of a campaign's remaining
// slots. The read-check-write sequence is pushed down to the store's
// conditional decrement so two concurrent requests for the last slots
// cannot both succeed.
type AvailabilityService struct {
	store store.CampaignStore
}

func NewAvailabilityService(campaignStore store.CampaignStore) *AvailabilityService {
	return &AvailabilityService{store: campaignStore}
}

// Reserve atomically takes slots from a campaign. There is no partial
// reservation and no retry: a failed reservation is terminal for that
// request.
func (s *AvailabilityService) Reserve(ctx context.Context, campaignID string, slots int) (*models.Reservation, error) {
	if slots < MinSlotsPerBooking || slots > MaxSlotsPerBooking {
		return nil, &status.ValidationError{
			Field:  "slots_required",
			Reason: fmt.Sprintf("must be between %d and %d", MinSlotsPerBooking, MaxSlotsPerBooking),
		}
	}

	remaining, ok, err := s.store.DecrementSlots(ctx, campaignID, slots)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &status.InsufficientAvailabilityError{
			CampaignID: campaignID,
			Requested:  slots,
			Remaining:  remaining,
		}
	}

	return &models.Reservation{
		CampaignID:     campaignID,
		Slots:          slots,
		SlotsAvailable: remaining,
		Availability:   models.AvailabilityFor(remaining),
	}, nil
}

// Release returns previously reserved slots. Compensation path only;
// the booking flow calls it when the booking insert fails after a
// successful reserve.
func (s *AvailabilityService) Release(ctx context.Context, campaignID string, slots int) (*models.Reservation, error) {
	remaining, err := s.store.IncrementSlots(ctx, campaignID, slots)
	if err != nil {
		log.Printf("Failed to release %d slots for campaign %s: %v", slots, campaignID, err)
		return nil, err
	}

	return &models.Reservation{
		CampaignID:     campaignID,
		Slots:          slots,
		SlotsAvailable: remaining,
		Availability:   models.AvailabilityFor(remaining),
	}, nil
}
