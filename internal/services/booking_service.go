package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"campaign-system/internal/status"
	"campaign-system/internal/store"
	"campaign-system/models"
	"campaign-system/monitoring"
	"campaign-system/utils"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]{6,19}$`)
)

// BookingService sequences a booking: validate, price, reserve,
// persist, invalidate cache, broadcast. It short-circuits on the first
// failure, and compensates the reservation when the persist step fails
// so no inventory is lost.
type BookingService struct {
	pricing      *PricingService
	availability *AvailabilityService
	store        store.CampaignStore
	cache        *CacheService
	broadcaster  *BroadcastService
	monitor      *monitoring.Monitor
}

func NewBookingService(
	pricing *PricingService,
	availability *AvailabilityService,
	campaignStore store.CampaignStore,
	cache *CacheService,
	broadcaster *BroadcastService,
	monitor *monitoring.Monitor,
) *BookingService {
	return &BookingService{
		pricing:      pricing,
		availability: availability,
		store:        campaignStore,
		cache:        cache,
		broadcaster:  broadcaster,
		monitor:      monitor,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	started := time.Now()

	if err := validateBookingRequest(req); err != nil {
		s.trackBooking(req.CampaignID, "validation_failed")
		return nil, err
	}

	campaign, err := s.store.GetCampaign(ctx, req.CampaignID)
	if err != nil {
		s.trackBooking(req.CampaignID, "not_found")
		return nil, err
	}

	// Booking creation is always one campaign; multi-campaign carts
	// are priced client-side for display only.
	breakdown := s.pricing.PriceSingle(campaign.Price, req.SlotsRequired, campaign.NumberAdverts)

	reservation, err := s.availability.Reserve(ctx, req.CampaignID, req.SlotsRequired)
	if err != nil {
		if _, ok := status.IsInsufficientAvailability(err); ok {
			if s.monitor != nil {
				s.monitor.TrackReservationConflict(req.CampaignID)
			}
			s.trackBooking(req.CampaignID, "insufficient")
		} else {
			s.trackBooking(req.CampaignID, "reserve_failed")
		}
		return nil, err
	}

	reference, err := utils.GenerateCode(6)
	if err != nil {
		reference = fmt.Sprintf("BK%d", time.Now().UnixNano())
	}

	booking := &models.Booking{
		Reference:     reference,
		CampaignID:    req.CampaignID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Company:       strings.TrimSpace(req.Company),
		Requirements:  strings.TrimSpace(req.Requirements),
		SlotsRequired: req.SlotsRequired,
		TotalPrice:    breakdown.Total,
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentPending,
	}

	saved, err := s.store.InsertBooking(ctx, booking)
	if err != nil {
		// Return the reserved slots or they are lost for good.
		if _, releaseErr := s.availability.Release(ctx, req.CampaignID, req.SlotsRequired); releaseErr != nil {
			log.Printf("Compensation failed for campaign %s after persist error: %v", req.CampaignID, releaseErr)
		}
		s.trackBooking(req.CampaignID, "persist_failed")
		return nil, err
	}

	s.invalidateCampaignCache(ctx, req.CampaignID)
	s.publishChange(saved, reservation)

	if s.monitor != nil {
		s.monitor.TrackSlotsReserved(req.CampaignID, req.SlotsRequired)
		s.monitor.TrackBookingDuration(time.Since(started))
	}
	s.trackBooking(req.CampaignID, "created")

	return saved, nil
}

// invalidateCampaignCache drops the affected campaign's entries and the
// all-campaigns listing. Best-effort.
func (s *BookingService) invalidateCampaignCache(ctx context.Context, campaignID string) {
	if s.cache == nil {
		return
	}
	s.cache.InvalidatePattern(ctx, campaignID)
	s.cache.InvalidatePattern(ctx, CampaignListCacheKey)
}

// publishChange emits the booking and availability events. Broadcaster
// failure never rolls back the booking.
func (s *BookingService) publishChange(booking *models.Booking, reservation *models.Reservation) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.Publish(models.ChangeEventBooking, models.ChangeEventData{
		CampaignID:     booking.CampaignID,
		BookingID:      booking.ID,
		SlotsBooked:    booking.SlotsRequired,
		SlotsAvailable: reservation.SlotsAvailable,
		Availability:   reservation.Availability,
	})
	s.broadcaster.Publish(models.ChangeEventAvailability, models.ChangeEventData{
		CampaignID:     booking.CampaignID,
		SlotsAvailable: reservation.SlotsAvailable,
		Availability:   reservation.Availability,
	})
}

func (s *BookingService) trackBooking(campaignID, outcome string) {
	if s.monitor != nil {
		s.monitor.TrackBooking(campaignID, outcome)
	}
}

func validateBookingRequest(req models.BookingRequest) error {
	if strings.TrimSpace(req.CampaignID) == "" {
		return &status.ValidationError{Field: "campaign_id", Reason: "is required"}
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return &status.ValidationError{Field: "customer_name", Reason: "is required"}
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.CustomerEmail)) {
		return &status.ValidationError{Field: "customer_email", Reason: "is not a valid email address"}
	}
	if !phonePattern.MatchString(strings.TrimSpace(req.CustomerPhone)) {
		return &status.ValidationError{Field: "customer_phone", Reason: "is not a valid phone number"}
	}
	if req.SlotsRequired < MinSlotsPerBooking || req.SlotsRequired > MaxSlotsPerBooking {
		return &status.ValidationError{
			Field:  "slots_required",
			Reason: fmt.Sprintf("must be between %d and %d", MinSlotsPerBooking, MaxSlotsPerBooking),
		}
	}
	return nil
}
