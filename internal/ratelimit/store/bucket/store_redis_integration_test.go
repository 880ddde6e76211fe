//go:build integration

package bucket_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"leetcoach/internal/ratelimit/store/bucket"
	"leetcoach/pkg/testutil"
	"leetcoach/pkg/testutil/containers"
)

type RedisBucketStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *bucket.RedisStore
}

func TestRedisBucketStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisBucketStoreSuite))
}

func (s *RedisBucketStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = bucket.NewRedis(s.redis.Client)
}

func (s *RedisBucketStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.Flush(context.Background()))
}

func (s *RedisBucketStoreSuite) TestSlidingWindowMatchesMemoryStore() {
	ctx := context.Background()
	now := time.Now()

	for i := range 3 {
		res, err := s.store.Allow(ctx, "client:1.2.3.4:login", 3, time.Minute, now.Add(time.Duration(i)*time.Second))
		s.Require().NoError(err)
		s.True(res.Allowed)
		s.Equal(3-i, res.Remaining)
	}

	res, err := s.store.Allow(ctx, "client:1.2.3.4:login", 3, time.Minute, now.Add(5*time.Second))
	s.Require().NoError(err)
	s.False(res.Allowed)
	s.Equal(time.Minute, res.RetryAfter)

	res, err = s.store.Allow(ctx, "client:1.2.3.4:login", 3, time.Minute, now.Add(time.Minute))
	s.Require().NoError(err)
	s.True(res.Allowed, "oldest timestamp aged out")
}

func (s *RedisBucketStoreSuite) TestBucketExpiresWithWindow() {
	ctx := context.Background()
	_, err := s.store.Allow(ctx, "client:ttl:default", 5, 2*time.Second, time.Now())
	s.Require().NoError(err)

	ttl, err := s.redis.Client.PTTL(ctx, "leetcoach:ratelimit:client:ttl:default").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, 2*time.Second)
}

func (s *RedisBucketStoreSuite) TestConcurrentAllowNeverExceedsLimit() {
	ctx := context.Background()
	now := time.Now()

	result := testutil.RunConcurrent(50, func(int) error {
		res, err := s.store.Allow(ctx, "client:shared:default", 10, time.Minute, now)
		if err != nil {
			return err
		}
		if !res.Allowed {
			return errDenied
		}
		return nil
	})

	s.Equal(int32(10), result.Successes)
	s.Equal(int32(40), result.Errors)
}

var errDenied = errors.New("denied")
