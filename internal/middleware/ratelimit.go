package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/shift-roster-api/internal/apperror"
	apierrors "github.com/yukikurage/shift-roster-api/internal/errors"
	"github.com/yukikurage/shift-roster-api/internal/logging"
	"golang.org/x/time/rate"
)

// clientIdleTTL is how long a client's bucket survives without requests.
const clientIdleTTL = 10 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter keeps one token bucket per client key.
type ClientRateLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	clients   map[string]*clientBucket
	lastSweep time.Time
	now       func() time.Time
}

// NewClientRateLimiter allows each client rps requests per second on average,
// with bursts of up to burst requests.
func NewClientRateLimiter(rps float64, burst int) *ClientRateLimiter {
	return &ClientRateLimiter{
		limit:     rate.Limit(rps),
		burst:     burst,
		clients:   make(map[string]*clientBucket),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Allow reports whether key may make a request now and consumes a token if so.
func (l *ClientRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= clientIdleTTL {
		for k, b := range l.clients {
			if now.Sub(b.lastSeen) >= clientIdleTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.clients[key]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// Clients is the number of client buckets currently held.
func (l *ClientRateLimiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// retryAfter is the whole number of seconds until one token refills.
func (l *ClientRateLimiter) retryAfter() string {
	if l.limit <= 0 {
		return "1"
	}
	return strconv.Itoa(int(math.Ceil(1 / float64(l.limit))))
}

// RateLimit rejects clients that exceed their request budget with 429.
// Clients are keyed by gin's ClientIP.
func RateLimit(limiter *ClientRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.Allow(ip) {
			logger := logging.FromContext(c)
			logger.Warn().
				Str("client_ip", ip).
				Str("path", c.Request.URL.Path).
				Msg("Rate limit exceeded")
			c.Header("Retry-After", limiter.retryAfter())
			apierrors.Respond(c, apperror.TooManyRequests("Too many requests"))
			return
		}
		c.Next()
	}
}
