package offers

import (
	"github.com/gin-gonic/gin"
)

// SetupOfferRoutes configures all buyout offer routes
func SetupOfferRoutes(rg *gin.RouterGroup, controller *Controller) {
	offers := rg.Group("/offers")
	{
		offers.POST("", controller.SubmitOffer)              // POST /api/v1/offers
		offers.GET("/:id", controller.GetOffer)              // GET /api/v1/offers/:id
		offers.POST("/:id/resolve", controller.ResolveOffer) // POST /api/v1/offers/:id/resolve
	}
}

// Route definitions for reference:
//
// BUYOUT NEGOTIATION
// POST   /api/v1/offers                - Submit an offer against an active booking
// GET    /api/v1/offers/:id            - Inspect a single offer
// POST   /api/v1/offers/:id/resolve    - Holder accepts or rejects, authorized by decision token
//
// Key flow:
// 1. Buyer submits an offer naming slot, booking and amount
// 2. Holder receives a notification carrying a signed decision token
// 3. Holder resolves within 72h; accept transfers the slot in place,
//    cancels competing pending offers and records the settlement splits
// 4. Silence past the deadline is swept to EXPIRED, no funds move
