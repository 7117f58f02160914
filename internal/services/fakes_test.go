package services

import (
	"context"
	"fmt"
	"sync"

	"campaign-system/internal/status"
	"campaign-system/models"
	"campaign-system/utils"
)

func newTestBreaker() *utils.CircuitBreaker {
	return utils.NewCircuitBreaker("test")
}

// fakeStore is an in-memory CampaignStore. The conditional decrement
// is guarded by the mutex, mirroring the check-at-write semantics of
// the real store.
type fakeStore struct {
	mu        sync.Mutex
	campaigns map[string]*models.Campaign
	bookings  map[string]*models.Booking
	nextID    int

	insertErr     error
	insertedCount int
}

func newFakeStore(campaigns ...*models.Campaign) *fakeStore {
	fs := &fakeStore{
		campaigns: make(map[string]*models.Campaign),
		bookings:  make(map[string]*models.Booking),
	}
	for _, c := range campaigns {
		c.Availability = models.AvailabilityFor(c.SlotsAvailable)
		fs.campaigns[c.ID] = c
	}
	return fs
}

func (f *fakeStore) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Campaign, 0, len(f.campaigns))
	for _, c := range f.campaigns {
		copy := *c
		copy.Availability = models.AvailabilityFor(copy.SlotsAvailable)
		out = append(out, copy)
	}
	return out, nil
}

func (f *fakeStore) GetCampaign(ctx context.Context, campaignID string) (*models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.campaigns[campaignID]
	if !ok {
		return nil, status.ErrCampaignNotFound
	}
	copy := *c
	copy.Availability = models.AvailabilityFor(copy.SlotsAvailable)
	return &copy, nil
}

func (f *fakeStore) DecrementSlots(ctx context.Context, campaignID string, n int) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.campaigns[campaignID]
	if !ok {
		return 0, false, status.ErrCampaignNotFound
	}
	if c.SlotsAvailable < n {
		return c.SlotsAvailable, false, nil
	}
	c.SlotsAvailable -= n
	return c.SlotsAvailable, true, nil
}

func (f *fakeStore) IncrementSlots(ctx context.Context, campaignID string, n int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.campaigns[campaignID]
	if !ok {
		return 0, status.ErrCampaignNotFound
	}
	c.SlotsAvailable += n
	return c.SlotsAvailable, nil
}

func (f *fakeStore) InsertBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.insertErr != nil {
		return nil, f.insertErr
	}

	f.nextID++
	saved := *booking
	saved.ID = fmt.Sprintf("booking-%d", f.nextID)
	f.bookings[saved.ID] = &saved
	f.insertedCount++
	return &saved, nil
}

func (f *fakeStore) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, status.ErrBookingNotFound
	}
	copy := *b
	return &copy, nil
}

func (f *fakeStore) SetPaymentStatus(ctx context.Context, bookingID string, ps models.PaymentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok {
		return status.ErrBookingNotFound
	}
	b.PaymentStatus = ps
	if ps == models.PaymentPaid {
		b.Status = models.BookingConfirmed
	}
	return nil
}

func (f *fakeStore) SetContractSigned(ctx context.Context, bookingID string, signed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok {
		return status.ErrBookingNotFound
	}
	b.ContractSigned = signed
	return nil
}

func (f *fakeStore) slots(campaignID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.campaigns[campaignID].SlotsAvailable
}
