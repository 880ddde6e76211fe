package authlockout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"leetcoach/internal/ratelimit/config"
	authlockoutStore "leetcoach/internal/ratelimit/store/authlockout"
)

// =============================================================================
// AuthLockout Service Test Suite
// =============================================================================
// Justification: escalation depends on exact failure counts inside a 15 minute
// window; an injected clock keeps these tests instant.

type AuthLockoutServiceSuite struct {
	suite.Suite
	store   *authlockoutStore.InMemoryAuthLockoutStore
	service *Service
	now     time.Time
}

func TestAuthLockoutServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthLockoutServiceSuite))
}

func (s *AuthLockoutServiceSuite) SetupTest() {
	cfg := config.DefaultConfig().Lockout
	s.store = authlockoutStore.New()
	s.now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	var err error
	s.service, err = New(s.store, WithConfig(&cfg))
	s.Require().NoError(err)
}

func (s *AuthLockoutServiceSuite) TestNewRequiresStore() {
	_, err := New(nil)
	s.Error(err)
}

func (s *AuthLockoutServiceSuite) TestDelayForSpecifiedPoints() {
	s.Equal(time.Duration(0), s.service.DelayFor(0))
	s.Equal(30*time.Second, s.service.DelayFor(1))
	s.Equal(60*time.Second, s.service.DelayFor(3))
	s.Equal(120*time.Second, s.service.DelayFor(5))
	s.Equal(300*time.Second, s.service.DelayFor(10))
}

func (s *AuthLockoutServiceSuite) TestNoFailuresNoDelay() {
	delay, err := s.service.CurrentDelay(context.Background(), "10.1.1.1", s.now)
	s.Require().NoError(err)
	s.Zero(delay)
}

func (s *AuthLockoutServiceSuite) TestEscalation() {
	ctx := context.Background()
	want := []time.Duration{
		30 * time.Second, 30 * time.Second,
		60 * time.Second, 60 * time.Second,
		120 * time.Second, 120 * time.Second, 120 * time.Second, 120 * time.Second, 120 * time.Second,
		300 * time.Second,
	}
	for i, expected := range want {
		at := s.now.Add(time.Duration(i) * 10 * time.Second)
		count, err := s.service.RecordFailure(ctx, "10.1.1.1", at)
		s.Require().NoError(err)
		s.Equal(i+1, count)

		delay, err := s.service.CurrentDelay(ctx, "10.1.1.1", at)
		s.Require().NoError(err)
		s.Equal(expected, delay, "after %d failures", i+1)
	}
}

// Five failures within one minute: locked for 120s, released only once all
// five have left the 15 minute window.
func (s *AuthLockoutServiceSuite) TestFiveFailuresSelfHealThroughWindowExpiry() {
	ctx := context.Background()
	for i := range 5 {
		_, err := s.service.RecordFailure(ctx, "10.2.2.2", s.now.Add(time.Duration(i)*10*time.Second))
		s.Require().NoError(err)
	}

	delay, err := s.service.CurrentDelay(ctx, "10.2.2.2", s.now.Add(5*time.Minute))
	s.Require().NoError(err)
	s.Equal(120*time.Second, delay)

	delay, err = s.service.CurrentDelay(ctx, "10.2.2.2", s.now.Add(14*time.Minute))
	s.Require().NoError(err)
	s.Equal(120*time.Second, delay)

	delay, err = s.service.CurrentDelay(ctx, "10.2.2.2", s.now.Add(15*time.Minute+time.Minute))
	s.Require().NoError(err)
	s.Zero(delay)
}

func (s *AuthLockoutServiceSuite) TestClientsAreIndependent() {
	ctx := context.Background()
	_, err := s.service.RecordFailure(ctx, "10.3.3.3", s.now)
	s.Require().NoError(err)

	delay, err := s.service.CurrentDelay(ctx, "10.3.3.4", s.now)
	s.Require().NoError(err)
	s.Zero(delay)
}
