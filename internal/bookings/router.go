package bookings

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	reservations := rg.Group("/reservations")
	{
		reservations.POST("", controller.CreateReservation) // POST /api/v1/reservations
	}

	bookings := rg.Group("/bookings")
	{
		bookings.GET("/:id", controller.GetBooking) // GET /api/v1/bookings/:id
	}
}

// Route definitions for reference:
//
// RESERVATION
// POST   /api/v1/reservations                 - Reserve a slot, returns payment redirect
// Request body: { "x": 18, "y": 18, "tier": "one", "duration_days": 30, ... }
//
// BOOKING RETRIEVAL (public projection, no payment references)
// GET    /api/v1/bookings/:id
//
// Key flow:
// 1. Client reserves a slot with POST /reservations
// 2. Client follows redirect_url to the payment provider
// 3. Provider confirms via POST /webhooks/payment (sessionCompleted)
// 4. Booking flips PENDING -> ACTIVE exactly once
// 5. The expiration sweeper retires it at end of term
