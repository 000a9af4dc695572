package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 10
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Cleanup drops keys idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, v := range rl.visitors {
		if time.Since(v.lastSeen) > maxIdle {
			delete(rl.visitors, key)
		}
	}
}

// Middleware limits per authenticated user, falling back to client IP.
// Mount it after RequireAuth.
func (rl *RateLimiter) Middleware(requestsPerMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if uid := GetUserID(c); uid > 0 {
			key = fmt.Sprintf("user:%d", uid)
		}

		lim := rl.limiter(key)
		if !lim.Allow() {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(int(time.Minute.Seconds())/max(requestsPerMinute, 1)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message":    fmt.Sprintf("Too many requests. Limit: %d requests per minute", requestsPerMinute),
				"code":       "rate_limited",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(lim.Tokens())))
		c.Next()
	}
}

// RateLimit builds a limiter and starts its cleanup loop, which stops when
// done is closed. A nil done skips the loop.
func RateLimit(requestsPerMinute, burst int, done <-chan struct{}) gin.HandlerFunc {
	rl := NewRateLimiter(requestsPerMinute, burst)
	if done == nil {
		return rl.Middleware(requestsPerMinute)
	}
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.Cleanup(30 * time.Minute)
			case <-done:
				return
			}
		}
	}()
	return rl.Middleware(requestsPerMinute)
}
