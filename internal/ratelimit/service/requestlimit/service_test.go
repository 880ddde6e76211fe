package requestlimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"leetcoach/internal/ratelimit/config"
	"leetcoach/internal/ratelimit/models"
	bucketStore "leetcoach/internal/ratelimit/store/bucket"
	dErrors "leetcoach/pkg/domain-errors"
)

// =============================================================================
// RequestLimit Service Test Suite
// =============================================================================
// Justification for unit tests: the sliding window property needs exact control
// over timestamps, which feature tests cannot give.

type RequestLimitServiceSuite struct {
	suite.Suite
	buckets *bucketStore.InMemoryBucketStore
	service *Service
	now     time.Time
}

func TestRequestLimitServiceSuite(t *testing.T) {
	suite.Run(t, new(RequestLimitServiceSuite))
}

func (s *RequestLimitServiceSuite) SetupTest() {
	s.buckets = bucketStore.New()
	s.now = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	var err error
	s.service, err = New(s.buckets, WithConfig(config.DefaultConfig()))
	s.Require().NoError(err)
}

func (s *RequestLimitServiceSuite) TestNew() {
	s.Run("nil buckets store returns error", func() {
		_, err := New(nil)
		s.Error(err)
		s.Contains(err.Error(), "buckets store is required")
	})
}

func (s *RequestLimitServiceSuite) TestAdmitSlidingWindow() {
	ctx := context.Background()

	// Q admitted within a sub-window, the (Q+1)th denied.
	for i := range 5 {
		res, err := s.service.Admit(ctx, "10.0.0.1", models.ClassLogin, s.now.Add(time.Duration(i)*time.Second))
		s.Require().NoError(err)
		s.True(res.Allowed, "request %d", i+1)
		s.Equal(5-i, res.Remaining)
		s.Equal(s.now.Add(time.Duration(i)*time.Second+time.Minute), res.ResetAt)
	}

	res, err := s.service.Admit(ctx, "10.0.0.1", models.ClassLogin, s.now.Add(30*time.Second))
	s.Require().NoError(err)
	s.False(res.Allowed)
	s.Equal(time.Minute, res.RetryAfter)

	// Still denied until the oldest timestamp ages out.
	res, err = s.service.Admit(ctx, "10.0.0.1", models.ClassLogin, s.now.Add(59*time.Second))
	s.Require().NoError(err)
	s.False(res.Allowed)

	res, err = s.service.Admit(ctx, "10.0.0.1", models.ClassLogin, s.now.Add(time.Minute))
	s.Require().NoError(err)
	s.True(res.Allowed)
}

func (s *RequestLimitServiceSuite) TestAdmitPerClassQuotas() {
	ctx := context.Background()
	cases := map[models.EndpointClass]int{
		models.ClassLogin:    5,
		models.ClassRegister: 3,
		models.ClassCaptcha:  10,
		models.ClassDefault:  60,
	}
	for class, quota := range cases {
		s.Run(class.String(), func() {
			for range quota {
				res, err := s.service.Admit(ctx, "quota-client", class, s.now)
				s.Require().NoError(err)
				s.Require().True(res.Allowed)
			}
			res, err := s.service.Admit(ctx, "quota-client", class, s.now)
			s.Require().NoError(err)
			s.False(res.Allowed)
			s.Equal(quota, res.Limit)
		})
	}
}

func (s *RequestLimitServiceSuite) TestBucketsAreScopedByClientAndClass() {
	ctx := context.Background()
	for range 3 {
		_, err := s.service.Admit(ctx, "10.0.0.2", models.ClassRegister, s.now)
		s.Require().NoError(err)
	}

	res, err := s.service.Admit(ctx, "10.0.0.2", models.ClassLogin, s.now)
	s.Require().NoError(err)
	s.True(res.Allowed, "login bucket is separate from register")

	res, err = s.service.Admit(ctx, "10.0.0.3", models.ClassRegister, s.now)
	s.Require().NoError(err)
	s.True(res.Allowed, "other clients are unaffected")
}

func (s *RequestLimitServiceSuite) TestStoreErrorIsWrapped() {
	svc, err := New(failingStore{})
	s.Require().NoError(err)

	_, err = svc.Admit(context.Background(), "10.0.0.1", models.ClassDefault, s.now)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *RequestLimitServiceSuite) TestMissingConfigIsAnError() {
	svc, err := New(s.buckets, WithConfig(&config.Config{}))
	s.Require().NoError(err)

	_, err = svc.Admit(context.Background(), "10.0.0.1", models.ClassLogin, s.now)
	s.Error(err)
}

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration, time.Time) (*models.RateLimitResult, error) {
	return nil, errors.New("store down")
}

func (failingStore) Sweep(context.Context, time.Duration, time.Time) (int, error) {
	return 0, nil
}
