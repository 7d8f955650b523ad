// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"gridspot/internal/admin"
	"gridspot/internal/bookings"
	"gridspot/internal/grid"
	"gridspot/internal/holders"
	"gridspot/internal/notifications"
	"gridspot/internal/offers"
	"gridspot/internal/payments"
	"gridspot/internal/shared/config"
	"gridspot/internal/shared/database"
	"gridspot/internal/shared/middleware"
	"gridspot/internal/sweeper"
	"gridspot/internal/tiers"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier notifications.Notifier

	// Shared across route groups
	snapshotCache  *grid.SnapshotCache
	bookingService bookings.Service
	sweeperJobs    *sweeper.JobProcessor
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notifier notifications.Notifier) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		notifier: notifier,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	registerValidators()

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	pg := r.db.GetPostgreSQL()

	// Shared building blocks
	r.snapshotCache = grid.NewSnapshotCache(r.db.GetRedisClient(), r.config.Redis.GridSnapshotTTL)
	tierRepo := tiers.NewRepository(pg)
	tierService := tiers.NewService(tierRepo)
	holderRepo := holders.NewRepository(pg)
	bookingRepo := bookings.NewRepository(pg)

	checkout := payments.NewHTTPClient(r.config)
	r.bookingService = bookings.NewService(bookingRepo, tierService, holderRepo, checkout, r.notifier, r.snapshotCache)

	// Payment provider webhook lives outside the versioned API
	webhookController := payments.NewWebhookController(r.bookingService)
	payments.SetupWebhookRoutes(engine, webhookController)

	tokenManager := offers.NewTokenManager(r.config.Offers.TokenSecret)
	offerRepo := offers.NewRepository(pg)
	offerService := offers.NewService(offerRepo, bookingRepo, tierRepo, holderRepo, r.notifier, tokenManager, r.snapshotCache, r.config.Offers)

	gridService := grid.NewService(bookingRepo, tierService, r.snapshotCache)

	adminRepo := admin.NewRepository(pg)
	adminService := admin.NewService(adminRepo, bookingRepo, offerRepo, offerService, tierRepo, r.snapshotCache)

	// Background maintenance; started from main after routes are up
	sweeperRepo := sweeper.NewRepository(pg)
	sweeperService := sweeper.NewService(sweeperRepo, holderRepo, r.notifier, r.snapshotCache, r.config.Sweeper)
	r.sweeperJobs = sweeper.NewJobProcessor(sweeperService, r.config.Sweeper)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		grid.SetupGridRoutes(api, grid.NewController(gridService))
		bookings.SetupBookingRoutes(api, bookings.NewController(r.bookingService))
		offers.SetupOfferRoutes(api, offers.NewController(offerService, tokenManager))
		admin.SetupAdminRoutes(api, admin.NewController(adminService), middleware.OperatorAuthWithConfig(r.config))
	}
}

// Sweeper returns the background job processor built during route setup
func (r *Router) Sweeper() *sweeper.JobProcessor {
	return r.sweeperJobs
}

// registerValidators installs custom binding validators
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("tier", func(fl validator.FieldLevel) bool {
			return tiers.Tier(fl.Field().String()).IsValid()
		})
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "gridspot",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "gridspot",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		status := gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		}
		if r.sweeperJobs != nil {
			status["sweeper"] = r.sweeperJobs.GetJobStatus()
		}
		c.JSON(http.StatusOK, status)
	})
}
