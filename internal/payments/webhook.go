package payments

import (
	"errors"
	"io"
	"net/http"

	"gridspot/internal/bookings"
	"gridspot/internal/shared/apperrors"
	"gridspot/pkg/logger"

	"github.com/gin-gonic/gin"
)

// WebhookController consumes the payment provider's webhook deliveries.
// Delivery is at-least-once; every handler below is idempotent because the
// underlying transitions are status-guarded conditional updates.
type WebhookController struct {
	bookingService bookings.Service
}

func NewWebhookController(bookingService bookings.Service) *WebhookController {
	return &WebhookController{bookingService: bookingService}
}

// HandlePaymentWebhook handles POST /webhooks/payment
func (c *WebhookController) HandlePaymentWebhook(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	event, err := ParseEvent(body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "malformed event", "details": err.Error()})
		return
	}
	if event == nil {
		// Unknown event type; acknowledge so the provider stops redelivering
		ctx.JSON(http.StatusOK, gin.H{"message": "event ignored"})
		return
	}

	switch e := event.(type) {
	case *SessionCompleted:
		err = c.bookingService.ActivateBySession(ctx.Request.Context(), e.SessionRef, e.ChargeRef)
	case *SessionExpired:
		err = c.bookingService.CancelBySession(ctx.Request.Context(), e.SessionRef)
	case *ChargeRefunded:
		err = c.bookingService.CancelByCharge(ctx.Request.Context(), e.ChargeRef)
	}

	if err != nil {
		// A duplicate delivery lands here with ErrAlreadyResolved; the
		// desired state already holds, so acknowledge it as success.
		if errors.Is(err, apperrors.ErrAlreadyResolved) {
			ctx.JSON(http.StatusOK, gin.H{"message": "already processed"})
			return
		}
		logger.GetDefault().LogHTTPError(ctx, err, apperrors.HTTPStatus(err))
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Failed to process payment event",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "event processed"})
}
