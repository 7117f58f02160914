package monitoring

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	bookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Booking attempts by outcome",
		},
		[]string{"campaign_id", "outcome"},
	)

	slotsReserved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slots_reserved_total",
			Help: "Slots successfully reserved per campaign",
		},
		[]string{"campaign_id"},
	)

	reservationConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservation_conflicts_total",
			Help: "Reservations rejected for insufficient availability",
		},
		[]string{"campaign_id"},
	)

	cacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Cache lookups by result",
		},
		[]string{"cache", "result"},
	)

	pushSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "push_subscribers_total",
			Help: "Currently connected push subscribers",
		},
	)

	bookingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "booking_duration_seconds",
			Help:    "End-to-end duration of booking creation",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
		},
	)

	openPaymentSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "open_payment_sessions_total",
			Help: "Payment sessions currently pending in Redis",
		},
	)
)

// SubscriberCounter is what the collector polls for connected push
// listeners.
type SubscriberCounter interface {
	SubscriberCount() int
}

type Monitor struct {
	redis       *redis.Client
	subscribers SubscriberCounter
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewMonitor(redisClient *redis.Client, subscribers SubscriberCounter) *Monitor {
	monitor := &Monitor{
		redis:       redisClient,
		subscribers: subscribers,
		stopChan:    make(chan struct{}),
	}

	go monitor.collectMetrics()

	return monitor
}

func (m *Monitor) collectMetrics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			if m.subscribers != nil {
				pushSubscribers.Set(float64(m.subscribers.SubscriberCount()))
			}

			ctx := context.Background()
			if keys, err := m.redis.Keys(ctx, "payment:*").Result(); err == nil {
				openPaymentSessions.Set(float64(len(keys)))
			}
		}
	}
}

// Stop ends the background collector.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
}

func (m *Monitor) TrackBooking(campaignID, outcome string) {
	bookingsTotal.WithLabelValues(campaignID, outcome).Inc()
}

func (m *Monitor) TrackSlotsReserved(campaignID string, slots int) {
	slotsReserved.WithLabelValues(campaignID).Add(float64(slots))
}

func (m *Monitor) TrackReservationConflict(campaignID string) {
	reservationConflicts.WithLabelValues(campaignID).Inc()
}

func (m *Monitor) TrackCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheRequests.WithLabelValues(cache, result).Inc()
}

func (m *Monitor) TrackBookingDuration(d time.Duration) {
	bookingDuration.Observe(d.Seconds())
}
