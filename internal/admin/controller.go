package admin

import (
	"net/http"
	"strconv"

	"gridspot/internal/bookings"
	"gridspot/internal/offers"
	"gridspot/internal/shared/apperrors"
	"gridspot/internal/shared/middleware"
	"gridspot/internal/tiers"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CancelBooking handles POST /api/v1/admin/bookings/:id/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req CancelBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && ctx.Request.ContentLength > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	actor := middleware.OperatorActor(ctx)
	if err := c.service.CancelBooking(ctx.Request.Context(), bookingID, actor, req.Reason); err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Failed to cancel booking",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

// ForceActivate handles POST /api/v1/admin/bookings/:id/activate
func (c *Controller) ForceActivate(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	actor := middleware.OperatorActor(ctx)
	if err := c.service.ForceActivate(ctx.Request.Context(), bookingID, actor); err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Failed to activate booking",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Booking activated"})
}

// ExtendBooking handles POST /api/v1/admin/bookings/:id/extend
func (c *Controller) ExtendBooking(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req ExtendBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	actor := middleware.OperatorActor(ctx)
	extended, err := c.service.ExtendBooking(ctx.Request.Context(), bookingID, req.Days, actor)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Failed to extend booking",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Booking extended",
		"data":    extended,
	})
}

// ResolveOffer handles POST /api/v1/admin/offers/:id/resolve
func (c *Controller) ResolveOffer(ctx *gin.Context) {
	offerID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer ID"})
		return
	}

	var req ResolveOfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	actor := middleware.OperatorActor(ctx)
	offer, err := c.service.ResolveOffer(ctx.Request.Context(), offerID, req.Decision, actor)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Failed to resolve offer",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Offer resolved",
		"data":    offer,
	})
}

// SetTierAvailability handles PUT /api/v1/admin/tiers/:tier/availability
func (c *Controller) SetTierAvailability(ctx *gin.Context) {
	tier := tiers.Tier(ctx.Param("tier"))
	if !tier.IsValid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tier"})
		return
	}

	var req TierAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	actor := middleware.OperatorActor(ctx)
	if err := c.service.SetTierAvailability(ctx.Request.Context(), tier, *req.Available, actor); err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Failed to update tier availability",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Tier availability updated"})
}

// SetTierPrice handles PUT /api/v1/admin/tiers/:tier/price
func (c *Controller) SetTierPrice(ctx *gin.Context) {
	tier := tiers.Tier(ctx.Param("tier"))
	if !tier.IsValid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tier"})
		return
	}

	var req TierPriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	actor := middleware.OperatorActor(ctx)
	if err := c.service.SetTierPrice(ctx.Request.Context(), tier, req.PricePerDay, actor); err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Failed to update tier price",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Tier price updated"})
}

// ListBookings handles GET /api/v1/admin/bookings
func (c *Controller) ListBookings(ctx *gin.Context) {
	query := bookings.BookingListQuery{
		Status: ctx.Query("status"),
		Tier:   ctx.Query("tier"),
		Search: ctx.Query("search"),
		Page:   parseIntQuery(ctx, "page", 1),
		Limit:  parseIntQuery(ctx, "limit", 20),
	}

	list, totalCount, err := c.service.ListBookings(ctx.Request.Context(), query)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Failed to list bookings",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Bookings retrieved successfully",
		"data": gin.H{
			"bookings":    list,
			"total_count": totalCount,
			"page":        query.Page,
			"limit":       query.Limit,
			"total_pages": bookings.CalculateTotalPages(totalCount, query.Limit),
		},
	})
}

// ListOffers handles GET /api/v1/admin/offers
func (c *Controller) ListOffers(ctx *gin.Context) {
	query := offers.OfferListQuery{
		Status: ctx.Query("status"),
		Search: ctx.Query("search"),
		Page:   parseIntQuery(ctx, "page", 1),
		Limit:  parseIntQuery(ctx, "limit", 20),
	}

	list, totalCount, err := c.service.ListOffers(ctx.Request.Context(), query)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Failed to list offers",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Offers retrieved successfully",
		"data": gin.H{
			"offers":      list,
			"total_count": totalCount,
			"page":        query.Page,
			"limit":       query.Limit,
			"total_pages": bookings.CalculateTotalPages(totalCount, query.Limit),
		},
	})
}

// ListTierConfigs handles GET /api/v1/admin/tiers
func (c *Controller) ListTierConfigs(ctx *gin.Context) {
	configs, err := c.service.ListTierConfigs(ctx.Request.Context())
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Failed to list tier configs",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Tier configs retrieved successfully",
		"data":    configs,
	})
}

// ListAudit handles GET /api/v1/admin/audit-log
func (c *Controller) ListAudit(ctx *gin.Context) {
	query := AuditListQuery{
		Actor:    ctx.Query("actor"),
		Action:   ctx.Query("action"),
		TargetID: ctx.Query("target_id"),
		Page:     parseIntQuery(ctx, "page", 1),
		Limit:    parseIntQuery(ctx, "limit", 50),
	}

	entries, totalCount, err := c.service.ListAudit(ctx.Request.Context(), query)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Failed to list audit log",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Audit log retrieved successfully",
		"data": gin.H{
			"entries":     entries,
			"total_count": totalCount,
			"page":        query.Page,
			"limit":       query.Limit,
			"total_pages": bookings.CalculateTotalPages(totalCount, query.Limit),
		},
	})
}

func parseIntQuery(ctx *gin.Context, key string, fallback int) int {
	raw := ctx.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
