package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"campaign-system/internal/status"
	"campaign-system/internal/store"
	"campaign-system/models"
	"campaign-system/utils"

	pubnub "github.com/pubnub/go"
	"github.com/redis/go-redis/v9"
)

const (
	paymentRequestChannel      = "payment-requests"
	paymentNotificationChannel = "payment-notifications"
	paymentSessionTTL          = 10 * time.Minute
)

// PaymentProvider is the narrow interface to the external payment
// collaborator. The booking core only reads the status fields it
// updates.
type PaymentProvider interface {
	RequestPayment(ctx context.Context, booking *models.Booking) (string, error)
}

// PubNubPaymentProvider forwards payment requests to the processor's
// PubNub channel. Results come back asynchronously on the notification
// channel.
type PubNubPaymentProvider struct {
	pubnub *pubnub.PubNub
}

func NewPubNubPaymentProvider(pn *pubnub.PubNub) *PubNubPaymentProvider {
	return &PubNubPaymentProvider{pubnub: pn}
}

func (p *PubNubPaymentProvider) RequestPayment(ctx context.Context, booking *models.Booking) (string, error) {
	paymentID := fmt.Sprintf("payment_%s_%d", booking.ID, time.Now().Unix())

	_, _, err := p.pubnub.Publish().
		Channel(paymentRequestChannel).
		Message(map[string]any{
			"payment_id": paymentID,
			"booking_id": booking.ID,
			"reference":  booking.Reference,
			"amount":     booking.TotalPrice.StringFixed(2),
			"currency":   "GBP",
		}).
		Execute()
	if err != nil {
		return "", fmt.Errorf("payment request publish: %w", err)
	}
	return paymentID, nil
}

// PaymentService tracks payment sessions in Redis and reconciles
// provider notifications onto booking records. The provider call runs
// behind a circuit breaker so a dead processor fails fast instead of
// piling up requests.
type PaymentService struct {
	Redis    *redis.Client
	PubNub   *pubnub.PubNub
	store    store.CampaignStore
	provider PaymentProvider
	breaker  *utils.CircuitBreaker
}

func NewPaymentService(redisClient *redis.Client, pn *pubnub.PubNub, campaignStore store.CampaignStore, provider PaymentProvider) *PaymentService {
	service := &PaymentService{
		Redis:    redisClient,
		PubNub:   pn,
		store:    campaignStore,
		provider: provider,
		breaker:  utils.NewCircuitBreaker("payment-provider"),
	}

	if pn != nil {
		go service.SubscribeToPaymentNotifications()
	}

	return service
}

// InitiatePayment asks the provider to collect payment for a pending
// booking and records the session.
func (s *PaymentService) InitiatePayment(ctx context.Context, bookingID string) (string, error) {
	if s.provider == nil {
		return "", fmt.Errorf("payment provider not configured")
	}

	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if booking.PaymentStatus == models.PaymentPaid {
		return "", &status.ValidationError{Field: "payment_status", Reason: "is already paid"}
	}

	result, err := s.breaker.Execute(ctx, func() (any, error) {
		return s.provider.RequestPayment(ctx, booking)
	})
	if err != nil {
		return "", err
	}
	paymentID := result.(string)

	paymentData := map[string]any{
		"payment_id": paymentID,
		"booking_id": booking.ID,
		"amount":     booking.TotalPrice.StringFixed(2),
		"status":     string(models.PaymentPending),
		"created_at": time.Now().Unix(),
	}

	paymentKey := fmt.Sprintf("payment:%s", paymentID)
	for k, v := range paymentData {
		s.Redis.HSet(ctx, paymentKey, k, v)
	}
	s.Redis.Expire(ctx, paymentKey, paymentSessionTTL)

	return paymentID, nil
}

// SignContract records the external e-signature outcome on the
// booking.
func (s *PaymentService) SignContract(ctx context.Context, bookingID string) error {
	return s.store.SetContractSigned(ctx, bookingID, true)
}

func (s *PaymentService) SubscribeToPaymentNotifications() {
	listener := pubnub.NewListener()

	s.PubNub.AddListener(listener)
	s.PubNub.Subscribe().
		Channels([]string{paymentNotificationChannel}).
		Execute()

	for message := range listener.Message {
		go s.handlePaymentNotification(message)
	}
}

func (s *PaymentService) handlePaymentNotification(message *pubnub.PNMessage) {
	var notification struct {
		PaymentID string `json:"payment_id"`
		Status    string `json:"status"`
	}

	data, ok := message.Message.(map[string]interface{})
	if !ok {
		return
	}

	jsonData, _ := json.Marshal(data)
	if err := json.Unmarshal(jsonData, &notification); err != nil {
		log.Printf("Error parsing payment notification: %v", err)
		return
	}

	ctx := context.Background()

	paymentKey := fmt.Sprintf("payment:%s", notification.PaymentID)
	bookingID, err := s.Redis.HGet(ctx, paymentKey, "booking_id").Result()
	if err != nil {
		log.Printf("No payment session for %s: %v", notification.PaymentID, err)
		return
	}

	var outcome models.PaymentStatus
	switch notification.Status {
	case "success":
		outcome = models.PaymentPaid
	case "failed":
		outcome = models.PaymentFailed
	default:
		log.Printf("Ignoring payment notification with status %q", notification.Status)
		return
	}

	if err := s.store.SetPaymentStatus(ctx, bookingID, outcome); err != nil {
		log.Printf("Failed to record payment %s for booking %s: %v", outcome, bookingID, err)
		return
	}

	s.Redis.HSet(ctx, paymentKey, "status", string(outcome))

	channel := fmt.Sprintf("booking-%s", bookingID)
	s.PubNub.Publish().
		Channel(channel).
		Message(map[string]any{
			"type":       "payment_result",
			"payment_id": notification.PaymentID,
			"booking_id": bookingID,
			"status":     string(outcome),
		}).
		Execute()
}
