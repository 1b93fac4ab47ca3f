package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/nutrisense/backend/internal/apierror"
	"github.com/JonnyWalker81/nutrisense/backend/internal/logger"
)

// RateLimiter is a fixed-window limiter keyed by user id, or client IP for
// unauthenticated requests
type RateLimiter struct {
	requests map[string]*clientInfo
	mu       sync.Mutex
	rate     int           // requests per window
	window   time.Duration // time window
	name     string        // identifier for logging
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type clientInfo struct {
	count       int
	windowStart time.Time
}

// NewRateLimiter creates a new rate limiter and starts its cleanup loop
func NewRateLimiter(rate int, window time.Duration, name string) *RateLimiter {
	return newRateLimiter(rate, window, name, time.Now)
}

func newRateLimiter(rate int, window time.Duration, name string, now func() time.Time) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string]*clientInfo),
		rate:     rate,
		window:   window,
		name:     name,
		now:      now,
		stop:     make(chan struct{}),
	}

	go rl.cleanup()

	logger.Default().Debug("rate limiter initialized",
		logger.String("name", name),
		logger.Int("rate", rate),
		logger.Duration("window", window),
	)

	return rl
}

// Stop ends the cleanup loop
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// cleanup removes stale entries periodically
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
		}

		rl.mu.Lock()
		now := rl.now()
		cleaned := 0
		for key, info := range rl.requests {
			if now.Sub(info.windowStart) > rl.window*2 {
				delete(rl.requests, key)
				cleaned++
			}
		}
		rl.mu.Unlock()

		if cleaned > 0 {
			logger.Default().Debug("rate limiter cleanup completed",
				logger.String("name", rl.name),
				logger.Int("cleaned", cleaned),
			)
		}
	}
}

// allow records one request for key. It returns whether the request fits and
// how long until the current window resets.
func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	info, exists := rl.requests[key]
	if !exists || now.Sub(info.windowStart) >= rl.window {
		rl.requests[key] = &clientInfo{count: 1, windowStart: now}
		return true, rl.window
	}

	info.count++
	return info.count <= rl.rate, rl.window - now.Sub(info.windowStart)
}

// RateLimit returns a middleware that limits requests per user (or IP)
func RateLimit(rate int, window time.Duration, name string) gin.HandlerFunc {
	return rateLimitMiddleware(NewRateLimiter(rate, window, name))
}

func rateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID := c.GetString("user_id"); userID != "" {
			key = "user:" + userID
		}

		ok, reset := limiter.allow(key)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
		if !ok {
			logger.Ctx(c.Request.Context()).Warn("rate limit exceeded",
				logger.String("limiter", limiter.name),
				logger.String("key", key),
				logger.Int("limit", limiter.rate),
			)
			c.Header("X-RateLimit-Remaining", "0")
			retryAfter := int(math.Ceil(reset.Seconds()))
			apierror.WriteProblem(c, apierror.NewRateLimitError(apierror.GetRequestID(c), retryAfter))
			return
		}

		c.Next()
	}
}
