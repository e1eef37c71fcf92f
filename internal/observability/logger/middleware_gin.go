package logger

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gwak2837/shabangnet-sub003/internal/auditcontext"
)

const (
	requestIDHeader = "X-Request-Id"
	actorHeader     = "X-Actor"
)

// MiddlewareConfig controls the gin request logger.
type MiddlewareConfig struct {
	// SkipPaths are matched against the request path exactly.
	SkipPaths []string
}

// GinMiddleware assigns a request ID, seeds the audit context, and writes
// one access-log entry per request. Failed requests carry their headers
// with credentials masked.
func GinMiddleware(cfg MiddlewareConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[strings.TrimSpace(path)] = struct{}{}
	}

	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, requestID)

		ctx := auditcontext.WithRequestID(c.Request.Context(), requestID)
		ctx = auditcontext.WithActor(ctx, strings.TrimSpace(c.GetHeader(actorHeader)))
		ctx = auditcontext.WithIPAddress(ctx, c.ClientIP())
		ctx = auditcontext.WithUserAgent(ctx, c.Request.UserAgent())
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		if _, ok := skip[c.Request.URL.Path]; ok {
			return
		}

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		}
		if c.Writer.Status() >= 400 {
			fields = append(fields, zap.Any("headers", MaskHeaders(c.Request.Header)))
		}
		FromContext(c.Request.Context()).Info("http request", fields...)
	}
}
