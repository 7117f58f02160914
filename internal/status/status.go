package status

import (
	"errors"
	"fmt"
)

var (
	ErrCampaignNotFound  = errors.New("campaign: campaign not found")
	ErrBookingNotFound   = errors.New("booking: booking not found")
	ErrPersistenceFailed = errors.New("store: persistence failed")
)

// ValidationError reports a malformed booking request. Field names the
// first offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// InsufficientAvailabilityError is an expected business outcome, not a
// fault. Remaining carries the exact slot count left so the caller can
// tell the customer how many slots remain.
type InsufficientAvailabilityError struct {
	CampaignID string
	Requested  int
	Remaining  int
}

func (e *InsufficientAvailabilityError) Error() string {
	return fmt.Sprintf("availability: requested %d slots but only %d remain for campaign %s",
		e.Requested, e.Remaining, e.CampaignID)
}

// IsInsufficientAvailability unwraps an InsufficientAvailabilityError
// from err when present.
func IsInsufficientAvailability(err error) (*InsufficientAvailabilityError, bool) {
	var ia *InsufficientAvailabilityError
	if errors.As(err, &ia) {
		return ia, true
	}
	return nil, false
}

// IsValidation unwraps a ValidationError from err when present.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
