package grid

import (
	"github.com/gin-gonic/gin"
)

// SetupGridRoutes configures the public grid query routes
func SetupGridRoutes(rg *gin.RouterGroup, controller *Controller) {
	grid := rg.Group("/grid")
	{
		grid.GET("", controller.GetSnapshot)         // GET /api/v1/grid
		grid.GET("/slots/:x/:y", controller.GetSlot) // GET /api/v1/grid/slots/:x/:y
	}
}

// Route definitions for reference:
//
// PUBLIC GRID READS (no auth, snapshot served from Redis when warm)
// GET    /api/v1/grid               - Full occupancy snapshot plus tier pricing
// GET    /api/v1/grid/slots/:x/:y   - One slot's tier, price and occupant
