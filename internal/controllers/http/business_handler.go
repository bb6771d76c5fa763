package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopfront/internal/domain"
)

func (h *Handler) LatestBusinessData(c *gin.Context) {
	data, err := h.business.LatestSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if data == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No business data found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (h *Handler) TotalOrdersCount(c *gin.Context) {
	count, err := h.business.TotalOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "totalOrdersCount": count})
}

func (h *Handler) UpdateBusinessData(c *gin.Context) {
	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	data, err := h.business.UpdateSummary(c.Request.Context(), &domain.BusinessData{
		TotalSales:        req.TotalSales,
		AvgOrderValue:     req.AvgOrderValue,
		PaymentMethodPcts: req.PaymentMethodPcts,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Business data updated successfully", "data": data})
}
