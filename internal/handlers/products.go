package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/nutrisense/backend/internal/service"
)

// ProductHandler handles product catalog requests
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GetProducts returns the resolved catalog and the tier it came from
// GET /api/v1/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	catalog, err := h.productService.GetProducts(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err, "products", userID)
		return
	}

	c.JSON(http.StatusOK, catalog)
}
