package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shades-shop/internal/service"
)

func (h *Handler) listBrands(c *gin.Context) {
	brands, err := h.catalog.ListBrands(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, brandsToResponse(brands))
}

func (h *Handler) brandProducts(c *gin.Context) {
	products, err := h.catalog.ProductsByBrand(c.Request.Context(), c.Param("brandId"))
	if err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, productsToResponse(products))
}

func (h *Handler) searchProducts(c *gin.Context) {
	products, err := h.catalog.SearchProducts(c.Request.Context(), c.Query("searchTerm"))
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, productsToResponse(products))
}
