package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shades-shop/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	catalog service.CatalogService
	users   service.UserService
	tokens  service.TokenService
	gate    service.RequestGate
	carts   service.CartService
	logger  *logrus.Logger
}

func NewHandler(
	catalog service.CatalogService,
	users service.UserService,
	tokens service.TokenService,
	gate service.RequestGate,
	carts service.CartService,
	logger *logrus.Logger,
) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		catalog: catalog,
		users:   users,
		tokens:  tokens,
		gate:    gate,
		carts:   carts,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger), recoveryHandler(h.logger), corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
	router.GET("/api-docs", h.apiDocs)
	router.GET("/api-docs/openapi.yaml", h.apiDocsYAML)

	router.GET("/brands", h.listBrands)
	router.GET("/brands/:brandId/products", h.brandProducts)
	router.GET("/products", h.searchProducts)

	router.POST("/login", h.login)

	cart := router.Group("/me/cart", h.requireUser())
	{
		cart.GET("", h.getCart)
		cart.POST("", h.addToCart)
		cart.PUT("/:productId", h.updateCartItem)
		cart.DELETE("/:productId", h.removeCartItem)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// internalError is the fallback for errors no route maps to a status of its own.
func (h *Handler) internalError(c *gin.Context, err error) {
	h.logger.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"path":       c.Request.URL.Path,
	}).Errorf("request failed: %v", err)
	c.String(http.StatusInternalServerError, genericFailure)
	c.Abort()
}
