package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"leetcoach/internal/captcha/models"
	"leetcoach/internal/sentinel"
)

const redisKeyPrefix = "leetcoach:captcha:"

type redisChallenge struct {
	Question    string `json:"q"`
	Answer      string `json:"a"`
	ExpiresAtMs int64  `json:"exp"`
}

// RedisStore keeps each challenge under its own key with a PEXPIREAT at the
// challenge expiry. Take uses GETDEL, which is atomic on the server.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, challenge *models.Challenge) error {
	if challenge == nil {
		return fmt.Errorf("challenge is required")
	}
	payload, err := json.Marshal(redisChallenge{
		Question:    challenge.Question,
		Answer:      challenge.Answer,
		ExpiresAtMs: challenge.ExpiresAt.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("encode challenge: %w", err)
	}

	key := redisKeyPrefix + challenge.ID
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, payload, 0)
		pipe.PExpireAt(ctx, key, challenge.ExpiresAt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save challenge: %w", err)
	}
	return nil
}

func (s *RedisStore) Take(ctx context.Context, id string) (*models.Challenge, error) {
	raw, err := s.client.GetDel(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("challenge not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("take challenge: %w", err)
	}

	var stored redisChallenge
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode challenge: %w", err)
	}
	return &models.Challenge{
		ID:        id,
		Question:  stored.Question,
		Answer:    stored.Answer,
		ExpiresAt: time.UnixMilli(stored.ExpiresAtMs),
	}, nil
}

// DeleteExpired is a no-op: Redis drops each key at its expiry.
func (s *RedisStore) DeleteExpired(context.Context, time.Time) (int, error) {
	return 0, nil
}
