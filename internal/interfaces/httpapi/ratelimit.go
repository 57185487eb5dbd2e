package httpapi

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/riskibarqy/soccernow/internal/usecase"
	"golang.org/x/time/rate"
)

const (
	rateLimitCleanupThreshold = 500
	rateLimitMaxIdle          = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP. Once the table grows
// past rateLimitCleanupThreshold, idle entries are pruned at most once per
// rateLimitMaxIdle.
type RateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*clientLimiter
	limit      rate.Limit
	burst      int
	trustProxy bool
	lastPrune  time.Time
	now        func() time.Time
}

// NewRateLimiter returns nil when perSecond is not positive, which disables
// limiting. Clients are keyed by socket address unless trustProxyHeaders is
// set, in which case forwarding headers from the fronting proxy win.
func NewRateLimiter(perSecond float64, burst int, trustProxyHeaders bool) *RateLimiter {
	if perSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}

	return &RateLimiter{
		clients:    make(map[string]*clientLimiter),
		limit:      rate.Limit(perSecond),
		burst:      burst,
		trustProxy: trustProxyHeaders,
		now:        time.Now,
	}
}

func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.clients) > rateLimitCleanupThreshold && now.Sub(l.lastPrune) >= rateLimitMaxIdle {
		l.lastPrune = now
		cutoff := now.Add(-rateLimitMaxIdle)
		for k, c := range l.clients {
			if c.lastSeen.Before(cutoff) {
				delete(l.clients, k)
			}
		}
	}

	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

func RateLimit(limiter *RateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RateLimit")
		defer span.End()

		key := remoteIP(r)
		if limiter.trustProxy {
			key = resolveClientIP(r)
		}
		if key == "" {
			key = "unknown"
		}
		if !limiter.Allow(key) {
			w.Header().Set("Retry-After", "1")
			writeError(ctx, w, fmt.Errorf("%w: slow down and retry shortly", usecase.ErrTooManyRequests))
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
