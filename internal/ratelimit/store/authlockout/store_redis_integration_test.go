//go:build integration

package authlockout_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"leetcoach/internal/ratelimit/store/authlockout"
	"leetcoach/pkg/testutil/containers"
)

type RedisAuthLockoutStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *authlockout.RedisStore
}

func TestRedisAuthLockoutStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisAuthLockoutStoreSuite))
}

func (s *RedisAuthLockoutStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = authlockout.NewRedis(s.redis.Client)
}

func (s *RedisAuthLockoutStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.Flush(context.Background()))
}

func (s *RedisAuthLockoutStoreSuite) TestRecordAndCount() {
	ctx := context.Background()
	now := time.Now()
	const window = 15 * time.Minute

	for i := range 5 {
		count, err := s.store.RecordFailure(ctx, "auth:9.9.9.9", window, now.Add(time.Duration(i)*time.Second))
		s.Require().NoError(err)
		s.Equal(i+1, count)
	}

	count, err := s.store.Count(ctx, "auth:9.9.9.9", window, now.Add(time.Minute))
	s.Require().NoError(err)
	s.Equal(5, count)

	count, err = s.store.Count(ctx, "auth:9.9.9.9", window, now.Add(window+5*time.Second))
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *RedisAuthLockoutStoreSuite) TestUnknownKeyCountsZero() {
	count, err := s.store.Count(context.Background(), "auth:nobody", 15*time.Minute, time.Now())
	s.Require().NoError(err)
	s.Zero(count)
}
