package middleware

import (
	"time"

	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logging attaches a request-scoped logger to the request context and writes
// one access log line per request. The logger carries the request ID so every
// downstream log line correlates with the access log.
func Logging(baseLogger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		ctx := c.Request.Context()
		requestLogger := baseLogger
		if requestID := c.GetString(RequestIDKey); requestID != "" {
			ctx, requestLogger = logger.WithRequestID(ctx, baseLogger, requestID)
		}
		ctx = logger.WithContext(ctx, requestLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if query != "" {
			path = path + "?" + query
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.L(c.Request.Context()).Error("request failed", fields...)
		case c.Writer.Status() >= 400:
			logger.L(c.Request.Context()).Warn("request rejected", fields...)
		default:
			logger.L(c.Request.Context()).Info("request handled", fields...)
		}
	}
}
