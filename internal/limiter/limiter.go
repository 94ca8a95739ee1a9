// Package limiter throttles login attempts per client IP using Redis
// counters.
package limiter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// LoginLimiter counts login attempts per client within a rolling window.
type LoginLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

// NewLoginLimiter creates a limiter allowing max attempts per window.
func NewLoginLimiter(rdb *redis.Client, max int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{rdb: rdb, max: max, window: window}
}

// Allow records one attempt for the client and reports whether it is still
// under the limit. Redis failures fail open: a broken limiter must not lock
// everyone out of login.
func (l *LoginLimiter) Allow(ctx context.Context, clientIP string) bool {
	key := fmt.Sprintf("login_attempts:%s", clientIP)

	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		slog.WarnContext(ctx, "login limiter unavailable", "error", err)
		return true
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			slog.WarnContext(ctx, "failed to set login limiter expiry", "error", err)
		}
	}
	return count <= int64(l.max)
}

// Reset forgets the client's attempt count, typically after a successful
// login.
func (l *LoginLimiter) Reset(ctx context.Context, clientIP string) {
	key := fmt.Sprintf("login_attempts:%s", clientIP)
	if err := l.rdb.Del(ctx, key).Err(); err != nil {
		slog.WarnContext(ctx, "failed to reset login limiter", "error", err)
	}
}
