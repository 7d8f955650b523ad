package grid

import (
	"net/http"
	"strconv"

	"gridspot/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetSnapshot handles GET /api/v1/grid
func (c *Controller) GetSnapshot(ctx *gin.Context) {
	snapshot, err := c.service.GetSnapshot(ctx.Request.Context())
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Failed to build grid snapshot",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Grid snapshot retrieved successfully",
		"data":    snapshot,
	})
}

// GetSlot handles GET /api/v1/grid/slots/:x/:y
func (c *Controller) GetSlot(ctx *gin.Context) {
	x, errX := strconv.Atoi(ctx.Param("x"))
	y, errY := strconv.Atoi(ctx.Param("y"))
	if errX != nil || errY != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot coordinates"})
		return
	}

	view, err := c.service.GetSlot(ctx.Request.Context(), x, y)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Failed to look up slot",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Slot retrieved successfully",
		"data":    view,
	})
}
