package bookings

import (
	"net/http"

	"gridspot/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateReservation handles POST /api/v1/reservations
func (c *Controller) CreateReservation(ctx *gin.Context) {
	var req ReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	resp, err := c.service.CreateReservation(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Failed to create reservation",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Reservation created, complete payment to activate",
		"data":    resp,
	})
}

// GetBooking handles GET /api/v1/bookings/:id (public projection)
func (c *Controller) GetBooking(ctx *gin.Context) {
	bookingIDStr := ctx.Param("id")
	bookingID, err := uuid.Parse(bookingIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	booking, err := c.service.GetPublicBooking(ctx.Request.Context(), bookingID)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Booking not found",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Booking retrieved successfully",
		"data":    booking,
	})
}
