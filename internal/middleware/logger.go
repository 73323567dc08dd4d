package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk/staffdesk/internal/pkg"
)

// Logger returns a gin middleware that writes one slog record per request:
// method, path, matched route, status, latency, client IP, response size,
// and, once the auth middleware has run, the acting user. Handler errors
// collected on the context are folded into the same record.
//
// The record level tracks the response status: 2xx/3xx Info, 4xx Warn,
// 5xx Error. Emission goes through the request context so a ContextHandler
// attaches the request_id automatically.
func Logger(log *slog.Logger) gin.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		log.LogAttrs(c.Request.Context(), levelFor(status), "request",
			requestAttrs(c, status, time.Since(start))...)
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func requestAttrs(c *gin.Context, status int, latency time.Duration) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("route", c.FullPath()),
		slog.Int("status", status),
		slog.Duration("latency", latency),
		slog.String("client_ip", c.ClientIP()),
	}
	if size := c.Writer.Size(); size >= 0 {
		attrs = append(attrs, slog.Int("bytes", size))
	}
	if actor, ok := pkg.Actor(c); ok {
		attrs = append(attrs,
			slog.Uint64("actor_id", uint64(actor.ID)),
			slog.String("actor_role", actor.Role))
	}
	if len(c.Errors) > 0 {
		attrs = append(attrs, slog.String("errors", c.Errors.String()))
	}
	return attrs
}
