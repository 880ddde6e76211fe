package authlockout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "leetcoach:lockout:"

// recordScript prunes, appends and refreshes the expiry in one round trip.
var recordScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
redis.call('ZADD', key, now, ARGV[3])
redis.call('PEXPIRE', key, window)
return redis.call('ZCARD', key)
`)

// RedisStore implements FailureStore on Redis sorted sets scored by unix milliseconds.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) RecordFailure(ctx context.Context, key string, window time.Duration, now time.Time) (int, error) {
	member := fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString())
	count, err := recordScript.Run(ctx, s.client,
		[]string{redisKeyPrefix + key},
		now.UnixMilli(), window.Milliseconds(), member,
	).Int()
	if err != nil {
		return 0, fmt.Errorf("redis record failure %s: %w", key, err)
	}
	return count, nil
}

func (s *RedisStore) Count(ctx context.Context, key string, window time.Duration, now time.Time) (int, error) {
	var card *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		cutoff := fmt.Sprintf("%d", now.Add(-window).UnixMilli())
		pipe.ZRemRangeByScore(ctx, redisKeyPrefix+key, "-inf", cutoff)
		card = pipe.ZCard(ctx, redisKeyPrefix+key)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis count failures %s: %w", key, err)
	}
	return int(card.Val()), nil
}

// Sweep is a no-op: every record carries a PEXPIRE equal to the window.
func (s *RedisStore) Sweep(context.Context, time.Duration, time.Time) (int, error) {
	return 0, nil
}
