package store

import (
	"context"
	"fmt"

	"campaign-system/internal/status"
	"campaign-system/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
)

// PocketBaseStore implements CampaignStore on top of the embedded
// PocketBase database. The slot decrement goes through a raw
// conditional UPDATE so the availability check happens at write time
// inside SQLite's single-writer lock.
type PocketBaseStore struct {
	app core.App
}

func NewPocketBaseStore(app core.App) *PocketBaseStore {
	return &PocketBaseStore{app: app}
}

func (s *PocketBaseStore) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	records, err := s.app.FindRecordsByFilter(
		"campaigns",
		"id != ''",
		"+date",
		-1,
		0,
	)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}

	campaigns := make([]models.Campaign, 0, len(records))
	for _, record := range records {
		campaigns = append(campaigns, campaignFromRecord(record))
	}
	return campaigns, nil
}

func (s *PocketBaseStore) GetCampaign(ctx context.Context, campaignID string) (*models.Campaign, error) {
	record, err := s.app.FindRecordById("campaigns", campaignID)
	if err != nil {
		return nil, status.ErrCampaignNotFound
	}
	campaign := campaignFromRecord(record)
	return &campaign, nil
}

func (s *PocketBaseStore) DecrementSlots(ctx context.Context, campaignID string, n int) (int, bool, error) {
	result, err := s.app.DB().
		NewQuery("UPDATE campaigns SET slots_available = slots_available - {:n} WHERE id = {:id} AND slots_available >= {:n}").
		Bind(dbx.Params{"n": n, "id": campaignID}).
		Execute()
	if err != nil {
		return 0, false, fmt.Errorf("decrement slots: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("decrement slots: %w", err)
	}

	remaining, err := s.slotsAvailable(campaignID)
	if err != nil {
		return 0, false, err
	}

	return remaining, affected > 0, nil
}

func (s *PocketBaseStore) IncrementSlots(ctx context.Context, campaignID string, n int) (int, error) {
	_, err := s.app.DB().
		NewQuery("UPDATE campaigns SET slots_available = slots_available + {:n} WHERE id = {:id}").
		Bind(dbx.Params{"n": n, "id": campaignID}).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("increment slots: %w", err)
	}
	return s.slotsAvailable(campaignID)
}

func (s *PocketBaseStore) slotsAvailable(campaignID string) (int, error) {
	var remaining int
	err := s.app.DB().
		NewQuery("SELECT slots_available FROM campaigns WHERE id = {:id}").
		Bind(dbx.Params{"id": campaignID}).
		Row(&remaining)
	if err != nil {
		return 0, status.ErrCampaignNotFound
	}
	return remaining, nil
}

func (s *PocketBaseStore) InsertBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	collection, err := s.app.FindCollectionByNameOrId("bookings")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrPersistenceFailed, err)
	}

	record := core.NewRecord(collection)
	record.Set("reference", booking.Reference)
	record.Set("campaign_id", booking.CampaignID)
	record.Set("customer_name", booking.CustomerName)
	record.Set("customer_email", booking.CustomerEmail)
	record.Set("customer_phone", booking.CustomerPhone)
	record.Set("company", booking.Company)
	record.Set("requirements", booking.Requirements)
	record.Set("slots_required", booking.SlotsRequired)
	record.Set("total_price", booking.TotalPrice.InexactFloat64())
	record.Set("status", string(booking.Status))
	record.Set("payment_status", string(booking.PaymentStatus))
	record.Set("contract_signed", booking.ContractSigned)

	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrPersistenceFailed, err)
	}

	saved := bookingFromRecord(record)
	return &saved, nil
}

func (s *PocketBaseStore) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	record, err := s.app.FindRecordById("bookings", bookingID)
	if err != nil {
		return nil, status.ErrBookingNotFound
	}
	booking := bookingFromRecord(record)
	return &booking, nil
}

func (s *PocketBaseStore) SetPaymentStatus(ctx context.Context, bookingID string, ps models.PaymentStatus) error {
	record, err := s.app.FindRecordById("bookings", bookingID)
	if err != nil {
		return status.ErrBookingNotFound
	}
	record.Set("payment_status", string(ps))
	if ps == models.PaymentPaid {
		record.Set("status", string(models.BookingConfirmed))
	}
	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("%w: %v", status.ErrPersistenceFailed, err)
	}
	return nil
}

func (s *PocketBaseStore) SetContractSigned(ctx context.Context, bookingID string, signed bool) error {
	record, err := s.app.FindRecordById("bookings", bookingID)
	if err != nil {
		return status.ErrBookingNotFound
	}
	record.Set("contract_signed", signed)
	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("%w: %v", status.ErrPersistenceFailed, err)
	}
	return nil
}

func campaignFromRecord(record *core.Record) models.Campaign {
	slots := record.GetInt("slots_available")
	return models.Campaign{
		ID:             record.Id,
		Name:           record.GetString("name"),
		Date:           record.GetDateTime("date").Time(),
		StartTime:      record.GetString("start_time"),
		EndTime:        record.GetString("end_time"),
		Location:       record.GetString("location"),
		SlotsAvailable: slots,
		NumberAdverts:  record.GetInt("number_adverts"),
		Price:          decimal.NewFromFloat(record.GetFloat("price")),
		Availability:   models.AvailabilityFor(slots),
	}
}

func bookingFromRecord(record *core.Record) models.Booking {
	return models.Booking{
		ID:             record.Id,
		Reference:      record.GetString("reference"),
		CampaignID:     record.GetString("campaign_id"),
		CustomerName:   record.GetString("customer_name"),
		CustomerEmail:  record.GetString("customer_email"),
		CustomerPhone:  record.GetString("customer_phone"),
		Company:        record.GetString("company"),
		Requirements:   record.GetString("requirements"),
		SlotsRequired:  record.GetInt("slots_required"),
		TotalPrice:     decimal.NewFromFloat(record.GetFloat("total_price")),
		Status:         models.BookingStatus(record.GetString("status")),
		PaymentStatus:  models.PaymentStatus(record.GetString("payment_status")),
		ContractSigned: record.GetBool("contract_signed"),
		Created:        record.GetDateTime("created").Time(),
	}
}
