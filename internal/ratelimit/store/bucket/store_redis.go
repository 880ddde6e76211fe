package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"leetcoach/internal/ratelimit/models"
)

const redisKeyPrefix = "leetcoach:ratelimit:"

// allowScript prunes, counts and conditionally records in one round trip.
// Scores are unix milliseconds; members are unique per request.
// Returns {allowed (0|1), count before this request}.
var allowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
if count >= limit then
  return {0, count}
end
redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return {1, count}
`)

// RedisStore implements BucketStore on Redis sorted sets so that several
// instances share one limiter. Every Allow is a single Lua script and
// therefore atomic per key.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedis creates a Redis-backed bucket store.
func NewRedis(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (*models.RateLimitResult, error) {
	member := fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString())
	res, err := allowScript.Run(ctx, s.client,
		[]string{redisKeyPrefix + key},
		now.UnixMilli(), window.Milliseconds(), limit, member,
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("redis allow %s: %w", key, err)
	}
	if len(res) != 2 {
		return nil, fmt.Errorf("redis allow %s: unexpected reply length %d", key, len(res))
	}

	count := int(res[1])
	if res[0] == 0 {
		return &models.RateLimitResult{
			Allowed:    false,
			Limit:      limit,
			Remaining:  0,
			ResetAt:    now.Add(window),
			RetryAfter: window,
		}, nil
	}
	return &models.RateLimitResult{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - count,
		ResetAt:   now.Add(window),
	}, nil
}

// Sweep is a no-op: every bucket carries a PEXPIRE equal to its window.
func (s *RedisStore) Sweep(context.Context, time.Duration, time.Time) (int, error) {
	return 0, nil
}
