package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ErrorCodeRateLimited is returned when a client exceeds its write rate.
const ErrorCodeRateLimited ErrorCode = "RATE_LIMITED"

// ClientLimiter keeps one token bucket per client address.
type ClientLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

// NewClientLimiter creates a limiter allowing requestsPerSecond with the given burst per client.
func NewClientLimiter(requestsPerSecond float64, burst int) *ClientLimiter {
	if burst <= 0 {
		burst = 5
	}

	return &ClientLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// Allow reports whether the client may make a request now.
func (l *ClientLimiter) Allow(client string) bool {
	return l.getLimiter(client).Allow()
}

func (l *ClientLimiter) getLimiter(client string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[client]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists := l.limiters[client]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.rate, l.burst)
	l.limiters[client] = limiter
	return limiter
}

// RateLimitMiddleware rejects requests over the client's rate with 429.
func RateLimitMiddleware(l *ClientLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			SendError(c, http.StatusTooManyRequests, ErrorCodeRateLimited, "Too many requests, slow down")
			return
		}
		c.Next()
	}
}
