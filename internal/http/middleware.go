package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shades-shop/internal/domain"
	"shades-shop/internal/service"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	userKey         = "user"

	genericFailure = "Something broke!"
)

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency":    time.Since(start).String(),
		})
		if status >= http.StatusInternalServerError {
			entry.Warn("request completed")
			return
		}
		entry.Info("request completed")
	}
}

func recoveryHandler(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString(requestIDKey),
			"path":       c.Request.URL.Path,
		}).Errorf("panic: %v", recovered)
		c.String(http.StatusInternalServerError, genericFailure)
		c.Abort()
	})
}

// requireUser resolves the bearer token into a user. Authentication failures answer 403 with
// an empty body.
func (h *Handler) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.gate.Authorize(c.Request.Context(), service.AuthRequest{
			Authorization: c.GetHeader("Authorization"),
		})
		if err != nil {
			if isAuthError(err) {
				h.logger.WithField("request_id", c.GetString(requestIDKey)).Debugf("unauthorized: %v", err)
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			h.internalError(c, err)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func isAuthError(err error) bool {
	return errors.Is(err, service.ErrMissingHeader) ||
		errors.Is(err, service.ErrMalformedHeader) ||
		errors.Is(err, service.ErrInvalidToken) ||
		errors.Is(err, service.ErrUnknownUser)
}

func currentUser(c *gin.Context) *domain.User {
	return c.MustGet(userKey).(*domain.User)
}
