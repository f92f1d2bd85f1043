package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/liqma/backend/internal/metrics"
)

// LocalRateLimiter is a per-client token bucket kept in process. It stands in
// for the Redis limiter when no Redis is configured; limits are per instance.
type LocalRateLimiter struct {
	mu          sync.Mutex
	limiters    map[string]*localLimiterEntry
	rate        rate.Limit
	burst       int
	idle        time.Duration
	lastCleanup time.Time
	now         func() time.Time
}

type localLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewLocalRateLimiter allows limit requests per window, refilling evenly.
func NewLocalRateLimiter(limit int, window time.Duration) *LocalRateLimiter {
	limit = max(limit, 1)
	return &LocalRateLimiter{
		limiters: make(map[string]*localLimiterEntry),
		rate:     rate.Every(window / time.Duration(limit)),
		burst:    limit,
		idle:     window,
		now:      time.Now,
	}
}

// Allow reports whether client may make another request.
func (rl *LocalRateLimiter) Allow(client string) bool {
	now := rl.now()

	rl.mu.Lock()
	if now.Sub(rl.lastCleanup) > rl.idle {
		for key, e := range rl.limiters {
			if now.Sub(e.lastAccess) > rl.idle {
				delete(rl.limiters, key)
			}
		}
		rl.lastCleanup = now
	}
	entry, ok := rl.limiters[client]
	if !ok {
		entry = &localLimiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[client] = entry
	}
	entry.lastAccess = now
	limiter := entry.limiter
	rl.mu.Unlock()

	return limiter.AllowN(now, 1)
}

// RateLimitMiddleware enforces the limit per client IP.
func (rl *LocalRateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		if !rl.Allow(c.ClientIP()) {
			metrics.RateLimitRejections.WithLabelValues("local").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
