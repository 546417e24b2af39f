package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movistock/internal/domain/catalogs/product"
	"movistock/internal/domain/catalogs/unit"
	"movistock/internal/infrastructure/http/v1/dto"
)

// CatalogHandler serves the product and unit catalogs the form binds to.
type CatalogHandler struct {
	*BaseHandler
	products *product.Service
	units    *unit.Service
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(base *BaseHandler, products *product.Service, units *unit.Service) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: base,
		products:    products,
		units:       units,
	}
}

// Products handles GET /catalog/products.
func (h *CatalogHandler) Products(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": dto.FromProducts(products)})
}

// Units handles GET /catalog/units.
func (h *CatalogHandler) Units(c *gin.Context) {
	units, err := h.units.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": dto.FromUnits(units)})
}
