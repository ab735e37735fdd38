package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"job-tracker-api/internal/delivery/http/response"
	"job-tracker-api/pkg/apperror"
	"job-tracker-api/pkg/logger"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Whether to fail closed (reject) when Redis errors
	FailClosed bool
}

// Lua script for atomic increment with TTL on first set.
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

func clientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// DefaultRateLimitConfig returns the global per-IP API limit.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Limit:     300,
		Window:    time.Minute,
		KeyPrefix: "rl:ip:",
		KeyFunc:   clientIPKey,
	}
}

// SearchRateLimitConfig limits calls that fan out to the job boards.
func SearchRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	if limit <= 0 {
		limit = 20
	}
	if window <= 0 {
		window = time.Minute
	}
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:search:",
		KeyFunc:   clientIPKey,
	}
}

// memoryWindow is the fixed-window fallback used when Redis is not configured.
type memoryWindow struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	now     func() time.Time
}

type windowEntry struct {
	count   int
	resetAt time.Time
}

func newMemoryWindow() *memoryWindow {
	return &memoryWindow{entries: make(map[string]*windowEntry), now: time.Now}
}

func (m *memoryWindow) hit(key string, window time.Duration) (int, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &windowEntry{resetAt: now.Add(window)}
		m.entries[key] = e
	}
	e.count++

	// Opportunistic cleanup keeps the map bounded by active clients.
	if len(m.entries) > 10000 {
		for k, v := range m.entries {
			if now.After(v.resetAt) {
				delete(m.entries, k)
			}
		}
	}
	return e.count, e.resetAt
}

// RateLimitMiddleware creates a rate limiting middleware with the given config.
// Uses Redis when rdb is non-nil, falls back to in-memory when not.
func RateLimitMiddleware(rdb *goredis.Client, config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = clientIPKey
	}
	fallback := newMemoryWindow()

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)

		var count int
		var resetAt time.Time

		if rdb != nil {
			var err error
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), rdb, fullKey, config)
			if err != nil {
				logger.Log.Warn("rate limit store unavailable",
					"key_prefix", config.KeyPrefix, "fail_closed", config.FailClosed, "error", err)
				if config.FailClosed {
					response.Abort(c, http.StatusServiceUnavailable,
						"Service temporarily unavailable. Please try again.", string(apperror.KindUpstream))
					return
				}
				count, resetAt = fallback.hit(fullKey, config.Window)
			}
		} else {
			count, resetAt = fallback.hit(fullKey, config.Window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("rate limit triggered",
				"ip", c.ClientIP(), "route", c.FullPath(), "request_id", c.GetString("RequestID"))

			response.Abort(c, http.StatusTooManyRequests,
				"Rate limit exceeded. Please try again later.", string(apperror.KindTooManyRequests))
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(config.Limit-count))
		c.Next()
	}
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}
