package services

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"campaign-system/models"

	pubnub "github.com/pubnub/go"
)

const campaignChannel = "campaign-updates"

// subscriberBuffer bounds each subscriber's pending messages. A
// subscriber that falls this far behind starts losing messages rather
// than slowing the publisher.
const subscriberBuffer = 16

// Subscriber is one connected listener. Events arrive in publish
// order; delivery is at-most-once.
type Subscriber struct {
	ID     int
	Events chan models.ChangeEvent
}

// BroadcastService fans out availability and booking events to every
// connected subscriber and mirrors them to the PubNub campaign channel
// for browser clients. Publishing never blocks and never fails the
// caller.
type BroadcastService struct {
	pubnub *pubnub.PubNub

	mu          sync.RWMutex
	subscribers map[int]*Subscriber
	nextID      int
	dropped     int64
	closed      bool
}

func NewBroadcastService(pn *pubnub.PubNub) *BroadcastService {
	return &BroadcastService{
		pubnub:      pn,
		subscribers: make(map[int]*Subscriber),
	}
}

func (s *BroadcastService) Subscribe() *Subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		// Closed channel so stream handlers exit their read loop
		// immediately during shutdown.
		sub := &Subscriber{Events: make(chan models.ChangeEvent)}
		close(sub.Events)
		return sub
	}

	s.nextID++
	sub := &Subscriber{
		ID:     s.nextID,
		Events: make(chan models.ChangeEvent, subscriberBuffer),
	}
	s.subscribers[sub.ID] = sub
	return sub
}

func (s *BroadcastService) Unsubscribe(sub *Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscribers[sub.ID]; !ok {
		return
	}
	delete(s.subscribers, sub.ID)
	close(sub.Events)
}

// Publish delivers event to all current subscribers. A full subscriber
// buffer drops the message for that subscriber only.
func (s *BroadcastService) Publish(eventType models.ChangeEventType, data models.ChangeEventData) {
	event := models.ChangeEvent{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	}

	s.mu.RLock()
	for _, sub := range s.subscribers {
		select {
		case sub.Events <- event:
		default:
			atomic.AddInt64(&s.dropped, 1)
		}
	}
	s.mu.RUnlock()

	if s.pubnub != nil {
		_, _, err := s.pubnub.Publish().
			Channel(campaignChannel).
			Message(map[string]any{
				"type":            string(event.Type),
				"campaign_id":     data.CampaignID,
				"booking_id":      data.BookingID,
				"slots_booked":    data.SlotsBooked,
				"slots_available": data.SlotsAvailable,
				"availability":    string(data.Availability),
				"timestamp":       event.Timestamp.Unix(),
			}).
			Execute()
		if err != nil {
			log.Printf("PubNub publish failed for campaign %s: %v", data.CampaignID, err)
		}
	}
}

// SubscriberCount is used by the metrics collector.
func (s *BroadcastService) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

// DroppedCount reports messages lost to full subscriber buffers.
func (s *BroadcastService) DroppedCount() int64 {
	return atomic.LoadInt64(&s.dropped)
}

// Shutdown disconnects every subscriber and rejects new ones. Safe to
// call more than once.
func (s *BroadcastService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	for id, sub := range s.subscribers {
		delete(s.subscribers, id)
		close(sub.Events)
	}
	log.Println("Broadcast service shut down")
}
