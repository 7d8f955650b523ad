package offers

import (
	"net/http"

	"gridspot/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
	tokens  *TokenManager
}

func NewController(service Service, tokens *TokenManager) *Controller {
	return &Controller{service: service, tokens: tokens}
}

// SubmitOffer handles POST /api/v1/offers
func (c *Controller) SubmitOffer(ctx *gin.Context) {
	var req SubmitOfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	offer, err := c.service.SubmitOffer(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Failed to submit offer",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Offer submitted, the current holder has been notified",
		"data":    offer,
	})
}

// GetOffer handles GET /api/v1/offers/:id
func (c *Controller) GetOffer(ctx *gin.Context) {
	offerID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer ID"})
		return
	}

	offer, err := c.service.GetOffer(ctx.Request.Context(), offerID)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Offer not found",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Offer retrieved successfully",
		"data":    offer,
	})
}

// ResolveOffer handles POST /api/v1/offers/:id/resolve. The caller proves
// ownership with the decision token mailed alongside the offer notification.
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

	tokenOfferID, holderID, err := c.tokens.ParseDecisionToken(req.Token)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Invalid decision token",
			"details": err.Error(),
		})
		return
	}
	if tokenOfferID != offerID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Decision token does not match this offer"})
		return
	}

	offer, err := c.service.ResolveOffer(ctx.Request.Context(), offerID, req.Decision, holderID)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Failed to resolve offer",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Offer resolved successfully",
		"data":    offer,
	})
}
