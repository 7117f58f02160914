package handlers

import (
	"errors"
	"net/http"

	"campaign-system/internal/services"
	"campaign-system/internal/status"
	"campaign-system/models"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type BookingHandler struct {
	bookingService *services.BookingService
	paymentService *services.PaymentService
}

func NewBookingHandler(bookingService *services.BookingService, paymentService *services.PaymentService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		paymentService: paymentService,
	}
}

// CreateBooking - Validate, price and reserve slots for one campaign
func (h *BookingHandler) CreateBooking(e *core.RequestEvent) error {
	var req models.BookingRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	booking, err := h.bookingService.CreateBooking(e.Request.Context(), req)
	if err != nil {
		return mapBookingError(err)
	}

	return e.JSON(http.StatusCreated, map[string]any{
		"booking": booking,
	})
}

// InitiatePayment - Hand the booking to the payment collaborator
func (h *BookingHandler) InitiatePayment(e *core.RequestEvent) error {
	bookingID := e.Request.PathValue("id")

	paymentID, err := h.paymentService.InitiatePayment(e.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, status.ErrBookingNotFound) {
			return apis.NewNotFoundError("Booking not found", err)
		}
		if _, ok := status.IsValidation(err); ok {
			return apis.NewBadRequestError(err.Error(), err)
		}
		return apis.NewApiError(http.StatusServiceUnavailable, "Payment provider unavailable", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"payment_id": paymentID,
		"booking_id": bookingID,
	})
}

// SignContract - Record the e-signature outcome on the booking
func (h *BookingHandler) SignContract(e *core.RequestEvent) error {
	bookingID := e.Request.PathValue("id")

	if err := h.paymentService.SignContract(e.Request.Context(), bookingID); err != nil {
		if errors.Is(err, status.ErrBookingNotFound) {
			return apis.NewNotFoundError("Booking not found", err)
		}
		return apis.NewApiError(http.StatusInternalServerError, "Failed to update booking", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"booking_id":      bookingID,
		"contract_signed": true,
	})
}

// mapBookingError translates the service taxonomy into API errors.
// InsufficientAvailability keeps the remaining count so the UI can
// tell the customer how many slots are left.
func mapBookingError(err error) error {
	if ve, ok := status.IsValidation(err); ok {
		return apis.NewBadRequestError(ve.Error(), err)
	}
	if ia, ok := status.IsInsufficientAvailability(err); ok {
		return apis.NewApiError(http.StatusConflict, ia.Error(), map[string]any{
			"campaign_id":     ia.CampaignID,
			"slots_requested": ia.Requested,
			"slots_remaining": ia.Remaining,
		})
	}
	if errors.Is(err, status.ErrCampaignNotFound) {
		return apis.NewNotFoundError("Campaign not found", err)
	}
	return apis.NewApiError(http.StatusInternalServerError, "Failed to create booking", err)
}
