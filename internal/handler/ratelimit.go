package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/careconnect/backend/internal/metrics"
	"github.com/careconnect/backend/internal/service"
)

const (
	limiterIdleTTL    = 10 * time.Minute
	limiterSweepAfter = 1024
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginRateLimiter throttles login attempts per client IP.
type LoginRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

// NewLoginRateLimiter parses perMinute and burst. A perMinute of 0 disables throttling.
func NewLoginRateLimiter(perMinute, burst string, now func() time.Time) (*LoginRateLimiter, error) {
	perMin, err := strconv.Atoi(strings.TrimSpace(perMinute))
	if err != nil || perMin < 0 {
		return nil, fmt.Errorf("%w: invalid LOGIN_RATE_LIMIT", service.ErrMisconfigured)
	}
	b, err := strconv.Atoi(strings.TrimSpace(burst))
	if err != nil || b < 1 {
		return nil, fmt.Errorf("%w: invalid LOGIN_RATE_BURST", service.ErrMisconfigured)
	}
	if now == nil {
		now = time.Now
	}

	limit := rate.Inf
	if perMin > 0 {
		limit = rate.Limit(float64(perMin) / 60)
	}
	return &LoginRateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   limit,
		burst:   b,
		now:     now,
	}, nil
}

func (l *LoginRateLimiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.clients) >= limiterSweepAfter {
		for k, cl := range l.clients {
			if now.Sub(cl.lastSeen) > limiterIdleTTL {
				delete(l.clients, k)
			}
		}
	}

	cl, ok := l.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

func (l *LoginRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			metrics.LoginAttempts.WithLabelValues("throttled").Inc()
			writeDetail(c, http.StatusTooManyRequests, detailTooManyLogins)
			return
		}
		c.Next()
	}
}
