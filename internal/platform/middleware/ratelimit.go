package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig controls the token bucket limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig returns the limits applied to the API group.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		BurstSize:         200,
	}
}

// bucket is a single caller's token bucket. Tokens refill continuously at
// rate per second up to burst.
type bucket struct {
	mu     sync.Mutex
	tokens float64
	rate   float64
	burst  float64
	stamp  time.Time
}

func newBucket(rate float64, burstSize int) *bucket {
	return &bucket{
		tokens: float64(burstSize),
		rate:   rate,
		burst:  float64(burstSize),
		stamp:  time.Now(),
	}
}

// take refills based on elapsed time and consumes one token if available.
func (b *bucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.stamp).Seconds() * b.rate
	if b.tokens > b.burst {
		b.tokens = b.burst
	}
	b.stamp = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// waitSeconds estimates how long until one token is available, rounded up.
func (b *bucket) waitSeconds() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rate <= 0 {
		return 1
	}
	return int((1-b.tokens)/b.rate) + 1
}

type limiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	cfg     RateLimitConfig
}

func newLimiter(cfg RateLimitConfig) *limiter {
	return &limiter{buckets: make(map[string]*bucket), cfg: cfg}
}

func (l *limiter) bucketFor(key string) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.buckets[key]; ok {
		return b
	}
	b = newBucket(l.cfg.RequestsPerSecond, l.cfg.BurstSize)
	l.buckets[key] = b
	return b
}

// RateLimit limits request rates per caller. Authenticated requests are keyed
// by user ID and IP so that clients behind a shared NAT do not throttle each
// other; anonymous requests fall back to IP alone.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	lim := newLimiter(cfg)
	limitHeader := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', 0, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if uid, ok := c.Get("user_id").(string); ok {
				key = uid + ":" + key
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", limitHeader)

			b := lim.bucketFor(key)
			if !b.take() {
				h.Set("Retry-After", strconv.Itoa(b.waitSeconds()))
				h.Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}
