package server

import (
	"time"

	"github.com/flowgate/flowgate/engine/mcp"
	"github.com/flowgate/flowgate/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	userIDHeader    = "X-User-ID"
)

// RequestIDMiddleware assigns each request an identifier and scopes the
// request logger to it. The caller identity header, when present, is carried
// into the request context for downstream surfaces.
func RequestIDMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, requestID)

		reqLog := log.With("request_id", requestID)
		ctx := logger.ContextWithLogger(c.Request.Context(), reqLog)
		if userID := c.GetHeader(userIDHeader); userID != "" {
			ctx = mcp.ContextWithUserID(ctx, userID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// LoggerMiddleware logs HTTP request details.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		c.Next()
		if raw != "" {
			path = path + "?" + raw
		}
		log := logger.FromContext(c.Request.Context())
		log.Info("Request completed",
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"method", c.Request.Method,
			"status_code", c.Writer.Status(),
			"body_size", c.Writer.Size(),
			"path", path,
			"error", c.Errors.ByType(gin.ErrorTypePrivate).String(),
		)
	}
}
