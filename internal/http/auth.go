package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shades-shop/internal/service"
)

// login answers 400 for missing, non-string or empty credentials, 401 when no user matches and
// 200 with the token as a JSON string otherwise.
func (h *Handler) login(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil || body == nil {
		c.Status(http.StatusBadRequest)
		return
	}

	username, okUser := body["userName"].(string)
	password, okPass := body["password"].(string)
	if !okUser || !okPass || username == "" || password == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.Status(http.StatusUnauthorized)
			return
		}
		h.internalError(c, err)
		return
	}

	token, err := h.tokens.Issue(c.Request.Context(), user.Username)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}
