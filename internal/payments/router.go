package payments

import (
	"github.com/gin-gonic/gin"
)

// SetupWebhookRoutes configures the payment provider webhook endpoint.
// Mounted outside the versioned API group: the path is part of the provider
// contract and must not move with API versions.
func SetupWebhookRoutes(engine *gin.Engine, controller *WebhookController) {
	webhooks := engine.Group("/webhooks")
	{
		webhooks.POST("/payment", controller.HandlePaymentWebhook) // POST /webhooks/payment
	}
}
