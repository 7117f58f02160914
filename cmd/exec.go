package cmd

import (
	"log"
	"net/http"

	"campaign-system/config"
	"campaign-system/internal/handlers"
	"campaign-system/internal/services"
	"campaign-system/internal/store"
	"campaign-system/monitoring"
	"campaign-system/security"
	"campaign-system/utils"

	_ "campaign-system/migrations"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()

	// Initialize PubNub. Without keys the push mirror and the payment
	// notification listener stay off; local fan-out still works.
	var pn *pubnub.PubNub
	if cfg.PubNubPublishKey != "" && cfg.PubNubSubscribeKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey

		pn = pubnub.NewPubNub(pnConfig)
	} else {
		log.Println("PubNub keys not set, realtime push mirror disabled")
	}

	// Initialize services. The cache is constructed once here and
	// injected everywhere; no package-level cache state.
	campaignStore := store.NewPocketBaseStore(app)
	cache := services.NewCacheService(redisClient, cfg.ListingCacheTTL, cfg.LRUCacheSize, cfg.LRUCacheTTL)
	broadcaster := services.NewBroadcastService(pn)

	var monitor *monitoring.Monitor
	if cfg.EnableMetrics {
		monitor = monitoring.NewMonitor(redisClient, broadcaster)
	}

	pricing := services.NewPricingService()
	availability := services.NewAvailabilityService(campaignStore)
	bookingService := services.NewBookingService(pricing, availability, campaignStore, cache, broadcaster, monitor)
	campaignService := services.NewCampaignService(campaignStore, cache, monitor)

	var provider services.PaymentProvider
	if pn != nil {
		provider = services.NewPubNubPaymentProvider(pn)
	}
	paymentService := services.NewPaymentService(redisClient, pn, campaignStore, provider)

	// Initialize handlers
	campaignHandler := handlers.NewCampaignHandler(campaignService, broadcaster)
	bookingHandler := handlers.NewBookingHandler(bookingService, paymentService)
	rateLimiter := security.NewRateLimiter(redisClient, cfg.BookingRateLimit, cfg.BookingRateWindow)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Expose Prometheus metrics on a separate port
	if cfg.EnableMetrics {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(":"+cfg.MetricsPort, mux); err != nil {
				log.Printf("Metrics server stopped: %v", err)
			}
		}()
	}

	// Register routes
	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Campaign endpoints
		e.Router.GET("/api/campaigns", campaignHandler.ListCampaigns)
		e.Router.GET("/api/campaigns/stream", campaignHandler.StreamChanges)

		// Booking endpoints
		e.Router.POST("/api/bookings", bookingHandler.CreateBooking).
			BindFunc(rateLimiter.BookingRateLimit())
		e.Router.POST("/api/bookings/{id}/payment", bookingHandler.InitiatePayment)
		e.Router.POST("/api/bookings/{id}/contract", bookingHandler.SignContract)

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	// Drain push subscribers and stop the collector before the server
	// closes its listeners.
	app.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		broadcaster.Shutdown()
		if monitor != nil {
			monitor.Stop()
		}
		return e.Next()
	})

	// Start server
	return app.Start()
}
