package server

import (
	"dlin210/account-portal/internal/api/controller"
	"dlin210/account-portal/internal/limiter"
	"dlin210/account-portal/internal/session"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with a UUID, honoring one supplied by an
// upstream proxy.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Header(requestIDHeader, id)
		c.Set("request_id", id)
		c.Next()
	}
}

// AccessLog writes one slog line per request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.InfoContext(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString("request_id"),
		)
	}
}

// RateLimitLogin rejects login attempts from clients over the attempt limit,
// and forgets the client's count once a login succeeds.
func RateLimitLogin(l *limiter.LoginLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if !l.Allow(c.Request.Context(), ip) {
			_ = session.SetFlash(c, session.FlashError, "Too many login attempts, please try again later")
			c.Redirect(http.StatusFound, session.LoginPath)
			c.Abort()
			return
		}

		c.Next()

		if c.Writer.Status() == http.StatusFound &&
			c.Writer.Header().Get("Location") == controller.DashboardPath {
			l.Reset(c.Request.Context(), ip)
		}
	}
}
