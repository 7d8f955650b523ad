package admin

import (
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes configures the operator override channel. Every route
// sits behind the operator auth middleware.
func SetupAdminRoutes(rg *gin.RouterGroup, controller *Controller, operatorAuth gin.HandlerFunc) {
	admin := rg.Group("/admin")
	admin.Use(operatorAuth)
	{
		admin.POST("/bookings/:id/cancel", controller.CancelBooking)   // POST /api/v1/admin/bookings/:id/cancel
		admin.POST("/bookings/:id/activate", controller.ForceActivate) // POST /api/v1/admin/bookings/:id/activate
		admin.POST("/bookings/:id/extend", controller.ExtendBooking)   // POST /api/v1/admin/bookings/:id/extend
		admin.GET("/bookings", controller.ListBookings)                // GET /api/v1/admin/bookings

		admin.POST("/offers/:id/resolve", controller.ResolveOffer) // POST /api/v1/admin/offers/:id/resolve
		admin.GET("/offers", controller.ListOffers)                // GET /api/v1/admin/offers

		admin.PUT("/tiers/:tier/availability", controller.SetTierAvailability) // PUT /api/v1/admin/tiers/:tier/availability
		admin.PUT("/tiers/:tier/price", controller.SetTierPrice)               // PUT /api/v1/admin/tiers/:tier/price
		admin.GET("/tiers", controller.ListTierConfigs)                        // GET /api/v1/admin/tiers

		admin.GET("/audit-log", controller.ListAudit) // GET /api/v1/admin/audit-log
	}
}

// Route definitions for reference:
//
// OPERATOR OVERRIDES (X-Operator-Secret header required)
// POST   /api/v1/admin/bookings/:id/cancel     - Force any not-yet-cancelled booking to CANCELLED
// POST   /api/v1/admin/bookings/:id/activate   - Flip a PENDING booking to ACTIVE
// POST   /api/v1/admin/bookings/:id/extend     - Push the deadline out by whole days
// POST   /api/v1/admin/offers/:id/resolve      - Decide an offer on the holder's behalf
// PUT    /api/v1/admin/tiers/:tier/availability
// PUT    /api/v1/admin/tiers/:tier/price
//
// READ SURFACE
// GET    /api/v1/admin/bookings   - Paginated, filterable by status/tier/search
// GET    /api/v1/admin/offers     - Paginated, filterable by status/search
// GET    /api/v1/admin/tiers      - Current tier configuration
// GET    /api/v1/admin/audit-log  - Append-only record of every override
