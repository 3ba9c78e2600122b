package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionHeader = "X-Session-ID"
	sessionQuery  = "session"
	visitorKey    = "visitor"

	cartEventsRoute = "/api/cart/events"
)

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("http request", fields...)
		default:
			logger.Info("http request", fields...)
		}
	}
}

// withVisitor resolves the visitor from the session header (or query, for WebSocket
// clients), issuing a fresh session id when none or an invalid one was sent.
// Plain reads never register a new visitor; the event stream does, since it must
// observe the same cart later requests change.
func withVisitor(s *sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionHeader)
		if id == "" {
			id = c.Query(sessionQuery)
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Header(sessionHeader, id)

		register := c.Request.Method != http.MethodGet || c.FullPath() == cartEventsRoute

		v, err := s.get(c.Request.Context(), id, register)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}

		c.Set(visitorKey, v)
		c.Next()
	}
}

func visitorFrom(c *gin.Context) *visitor {
	return c.MustGet(visitorKey).(*visitor)
}
