package security

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

var ErrLimiterUnavailable = errors.New("upload limiter unavailable: redis not connected")

const (
	ipWindowSeconds  = 60
	jobWindowSeconds = 86400
)

// UploadLimiter enforces rate limits on file uploads using a Redis sliding window.
type UploadLimiter struct {
	client       *goredis.Client
	maxPerMinute int // per client IP
	maxPerDay    int // per job
	now          func() time.Time
}

// KEYS[i]       = sliding window key
// ARGV[1]       = current timestamp
// ARGV[2]       = member to record
// ARGV[2i+1]    = max count allowed in KEYS[i]
// ARGV[2i+2]    = window size in seconds of KEYS[i]
// Every window is checked before any is written, so a rejection never
// consumes a slot. Returns 0 if allowed, otherwise the index of the first
// full window.
const uploadRateLimitScript = `
local now = tonumber(ARGV[1])
local member = ARGV[2]

for i, key in ipairs(KEYS) do
    local limit = tonumber(ARGV[2 * i + 1])
    local window = tonumber(ARGV[2 * i + 2])
    redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
    if redis.call('ZCARD', key) >= limit then
        return i
    end
end

for i, key in ipairs(KEYS) do
    redis.call('ZADD', key, now, member)
    redis.call('EXPIRE', key, tonumber(ARGV[2 * i + 2]))
end
return 0
`

// NewUploadLimiter creates an upload rate limiter. A nil client disables limiting.
func NewUploadLimiter(client *goredis.Client, perMin, perDay int) *UploadLimiter {
	if perMin <= 0 {
		perMin = 10
	}
	if perDay <= 0 {
		perDay = 200
	}
	return &UploadLimiter{client: client, maxPerMinute: perMin, maxPerDay: perDay, now: time.Now}
}

// Reservation is the outcome of AllowUpload. An allowed reservation holds one
// slot in the per-IP and per-job windows until Release gives it back.
type Reservation struct {
	Allowed    bool
	RetryAfter int // seconds, set when not allowed

	keys   []string
	member string
}

// AllowUpload reports whether ip may upload another attachment to jobID and,
// if so, records the upload in both windows atomically. Without Redis it fails
// open and returns ErrLimiterUnavailable; on Redis errors it fails closed.
func (ul *UploadLimiter) AllowUpload(ctx context.Context, ip, jobID string) (Reservation, error) {
	if ul.client == nil {
		return Reservation{Allowed: true}, ErrLimiterUnavailable
	}

	now := ul.now().Unix()
	member := strconv.FormatInt(now, 10) + "-" + strconv.FormatUint(rand.Uint64(), 36)

	keys := []string{"ratelimit:upload:ip:" + ip}
	args := []any{now, member, ul.maxPerMinute, ipWindowSeconds}
	retry := []int{ipWindowSeconds}
	if jobID != "" {
		keys = append(keys, "ratelimit:upload:job:"+jobID)
		args = append(args, ul.maxPerDay, jobWindowSeconds)
		retry = append(retry, 3600)
	}

	result, err := ul.client.Eval(ctx, uploadRateLimitScript, keys, args...).Result()
	if err != nil {
		return Reservation{RetryAfter: ipWindowSeconds}, fmt.Errorf("rate limit check failed: %w", err)
	}
	full, ok := result.(int64)
	if !ok || full < 0 || int(full) > len(keys) {
		return Reservation{RetryAfter: ipWindowSeconds}, fmt.Errorf("unexpected result %v from rate limit script", result)
	}
	if full > 0 {
		return Reservation{RetryAfter: retry[full-1]}, nil
	}
	return Reservation{Allowed: true, keys: keys, member: member}, nil
}

// Release returns the slots held by r, for uploads the API ended up rejecting.
func (ul *UploadLimiter) Release(ctx context.Context, r Reservation) error {
	if ul.client == nil || r.member == "" {
		return nil
	}
	pipe := ul.client.TxPipeline()
	for _, key := range r.keys {
		pipe.ZRem(ctx, key, r.member)
	}
	_, err := pipe.Exec(ctx)
	return err
}
