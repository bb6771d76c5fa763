package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopfront/internal/domain"
)

// SaveProduct adds a new product, or updates one when productId is set.
// Image URLs come from the client; upload is handled elsewhere.
func (h *Handler) SaveProduct(c *gin.Context) {
	var req SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		OldPrice:    req.OldPrice,
		Images:      req.Images,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Sizes:       req.Sizes,
		Bestseller:  req.Bestseller,
	}
	if req.ProductID != "" {
		id, ok := objectID(c, req.ProductID)
		if !ok {
			return
		}
		product.ID = id
	}

	saved, err := h.products.SaveProduct(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product saved successfully", "product": saved})
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.products.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (h *Handler) SingleProduct(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, ok := objectID(c, req.ProductID)
	if !ok {
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (h *Handler) RemoveProduct(c *gin.Context) {
	var req struct {
		ID string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, ok := objectID(c, req.ID)
	if !ok {
		return
	}

	if err := h.products.RemoveProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product Removed"})
}

func (h *Handler) ToggleBestseller(c *gin.Context) {
	h.toggleFlag(c, h.products.ToggleBestseller, "Bestseller status updated")
}

func (h *Handler) ToggleOutOfStock(c *gin.Context) {
	h.toggleFlag(c, h.products.ToggleOutOfStock, "Out of Stock status updated")
}

func (h *Handler) toggleFlag(
	c *gin.Context,
	toggle func(ctx context.Context, id primitive.ObjectID, value bool) (*domain.Product, error),
	message string,
) {
	var req ProductFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, ok := objectID(c, req.ProductID)
	if !ok {
		return
	}

	product, err := toggle(c.Request.Context(), id, *req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "product": product})
}
