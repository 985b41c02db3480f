package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/crime-analytics-go/pkg/response"
)

// RateLimiter is a sliding-window limiter keyed by client
type RateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
	done   chan struct{} // Closed when the sweeper exits
}

// NewRateLimiter creates a limiter allowing limit requests per window. Its
// sweeper runs until ctx is done.
func NewRateLimiter(ctx context.Context, limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
		done:   make(chan struct{}),
	}
	go rl.sweep(ctx)
	return rl
}

func (rl *RateLimiter) sweep(ctx context.Context) {
	defer close(rl.done)
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for key, hits := range rl.hits {
				if live := rl.live(hits, now); len(live) > 0 {
					rl.hits[key] = live
				} else {
					delete(rl.hits, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Take records a request for key. It returns the requests left in the
// window, or false with the wait until the oldest hit expires.
func (rl *RateLimiter) Take(key string) (int, time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	live := rl.live(rl.hits[key], now)
	if len(live) >= rl.limit {
		rl.hits[key] = live
		return 0, live[0].Add(rl.window).Sub(now), false
	}

	rl.hits[key] = append(live, now)
	return rl.limit - len(live) - 1, 0, true
}

// live keeps the hits still inside the window; hits are in time order
func (rl *RateLimiter) live(hits []time.Time, now time.Time) []time.Time {
	i := 0
	for i < len(hits) && now.Sub(hits[i]) >= rl.window {
		i++
	}
	return hits[i:]
}

// RateLimit limits requests per client IP until ctx is done. A limit <= 0
// disables it.
func RateLimit(ctx context.Context, limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := NewRateLimiter(ctx, limit, window)

	return func(c *gin.Context) {
		remaining, wait, ok := limiter.Take(c.ClientIP())
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded", nil)
			return
		}

		c.Next()
	}
}
