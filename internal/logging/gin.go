package logging

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/shift-roster-api/internal/constants"
)

const (
	RequestIDHeader     = "X-Request-ID"
	ContextKeyRequestID = "request_id"
)

// RequestID tags each request with an id, reusing one supplied by a proxy.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GinLogger logs one line per request at a level derived from the status.
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		default:
			event = log.Info()
		}

		if userID, ok := c.Get(constants.ContextKeyUserID); ok {
			event = event.Interface("user_id", userID)
		}

		event.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status_code", status).
			Str("client_ip", c.ClientIP()).
			Dur("latency", time.Since(start)).
			Str("request_id", c.GetString(ContextKeyRequestID)).
			Msg("Request processed")
	}
}

// FromContext returns the global logger enriched with the request id.
func FromContext(c *gin.Context) zerolog.Logger {
	return log.With().Str("request_id", c.GetString(ContextKeyRequestID)).Logger()
}
