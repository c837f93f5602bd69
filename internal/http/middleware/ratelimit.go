package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/portfolio-contact/internal/observability/metrics"
	"github.com/wolfman30/portfolio-contact/pkg/logging"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryLimiter provides per-key rate limiting using a token bucket algorithm.
type MemoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	rate      float64 // tokens per second
	burst     int     // max tokens
	window    time.Duration
	maxKeys   int
	lastSweep time.Time
	now       func() time.Time
}

// defaultMaxKeys bounds the bucket map. Keys beyond it share overflowKey.
const (
	defaultMaxKeys = 10000
	overflowKey    = "\x00overflow"
)

type bucket struct {
	tokens   float64
	lastTime time.Time
}

// NewMemoryLimiter allows limit requests per window for each key.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		rate:    float64(limit) / window.Seconds(),
		burst:   limit,
		window:  window,
		maxKeys: defaultMaxKeys,
		now:     time.Now,
	}
}

// Allow reports whether key has a token left. Idle buckets are swept at most
// once per window; once the map holds maxKeys entries, unseen keys share a
// single overflow bucket.
func (rl *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.window {
		rl.evictStale(now)
		rl.lastSweep = now
	}

	b, ok := rl.buckets[key]
	if !ok {
		if len(rl.buckets) >= rl.maxKeys {
			key = overflowKey
			b, ok = rl.buckets[key]
		}
		if !ok {
			b = &bucket{tokens: float64(rl.burst), lastTime: now}
			rl.buckets[key] = b
		}
	}

	elapsed := now.Sub(b.lastTime).Seconds()
	b.tokens += elapsed * rl.rate
	if b.tokens > float64(rl.burst) {
		b.tokens = float64(rl.burst)
	}
	b.lastTime = now

	if b.tokens < 1 {
		return false, nil
	}
	b.tokens--
	return true, nil
}

// evictStale drops buckets idle for a full window; they have refilled to
// burst, so a fresh bucket is equivalent.
func (rl *MemoryLimiter) evictStale(now time.Time) {
	cutoff := now.Add(-rl.window)
	for key, b := range rl.buckets {
		if b.lastTime.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

// fixedWindowScript increments the counter and sets its TTL on first hit.
// Returns the current count.
var fixedWindowScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return count
`)

// RedisLimiter is a fixed-window limiter shared across instances.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRedisLimiter allows limit requests per window for each key.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{client: client, limit: limit, window: window, prefix: "rl:contact:"}
}

// Allow increments key's counter in the current window.
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := fixedWindowScript.Run(ctx, rl.client, []string{rl.prefix + key}, strconv.FormatInt(rl.window.Milliseconds(), 10)).Int()
	if err != nil {
		return false, fmt.Errorf("ratelimit: redis: %w", err)
	}
	return count <= rl.limit, nil
}

// RateLimit returns an HTTP middleware that rejects requests exceeding the
// limiter with 429 Too Many Requests. Limiter errors fail open.
func RateLimit(limiter Limiter, m *metrics.ContactMetrics, logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				logger.Warn("rate limiter unavailable", "error", err)
				allowed = true
			}
			if !allowed {
				m.ObserveRateLimited()
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Too many requests"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if xri := r.Header.Get("X-Real-Ip"); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
