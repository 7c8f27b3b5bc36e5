package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"shades-shop/internal/service"
)

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) getCart(c *gin.Context) {
	cart, err := h.carts.GetCart(c.Request.Context(), currentUser(c).Username)
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartToResponse(cart))
}

// addToCart reads only the id of the posted product. An empty body or {} is an empty payload.
func (h *Handler) addToCart(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var productID string
	if len(bytes.TrimSpace(raw)) > 0 {
		var body map[string]any
		if err := binding.JSON.BindBody(raw, &body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		if v, present := body["id"]; present {
			id, ok := v.(string)
			if !ok {
				c.Status(http.StatusBadRequest)
				return
			}
			productID = id
		}
	}

	cart, err := h.carts.AddItem(c.Request.Context(), currentUser(c).Username, productID)
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cartToResponse(cart))
}

// updateCartItem stores the posted quantity as is; a missing quantity counts as 0.
func (h *Handler) updateCartItem(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req updateQuantityRequest
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := binding.JSON.BindBody(raw, &req); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
	}
	quantity := 0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := h.carts.UpdateQuantity(c.Request.Context(), currentUser(c).Username, c.Param("productId"), quantity)
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cartToResponse(cart))
}

func (h *Handler) removeCartItem(c *gin.Context) {
	cart, err := h.carts.RemoveItem(c.Request.Context(), currentUser(c).Username, c.Param("productId"))
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartToResponse(cart))
}

func (h *Handler) cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyPayload),
		errors.Is(err, service.ErrUnknownProduct),
		errors.Is(err, service.ErrInvalidQuantity):
		c.Status(http.StatusBadRequest)
	case errors.Is(err, service.ErrNotInCart):
		c.Status(http.StatusNotFound)
	case errors.Is(err, service.ErrUnknownUser):
		c.Status(http.StatusForbidden)
	default:
		h.internalError(c, err)
	}
}
