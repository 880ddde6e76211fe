package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type BreakerSuite struct {
	suite.Suite
	now time.Time
}

func TestBreakerSuite(t *testing.T) {
	suite.Run(t, new(BreakerSuite))
}

func (s *BreakerSuite) SetupTest() {
	s.now = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (s *BreakerSuite) TestOpensAfterThreshold() {
	b := New("feedback", WithFailureThreshold(3), WithCooldown(10*time.Second))

	s.False(b.RecordFailure(s.now).Opened)
	s.False(b.RecordFailure(s.now).Opened)
	s.True(b.RecordFailure(s.now).Opened)
	s.Equal(StateOpen, b.State())

	ok, wait := b.Allow(s.now.Add(4 * time.Second))
	s.False(ok)
	s.Equal(6*time.Second, wait)
}

func (s *BreakerSuite) TestSuccessResetsConsecutiveFailures() {
	b := New("feedback", WithFailureThreshold(2))

	b.RecordFailure(s.now)
	b.RecordSuccess()
	s.False(b.RecordFailure(s.now).Opened)
	s.Equal(StateClosed, b.State())
}

func (s *BreakerSuite) TestHalfOpenClosesAfterSuccesses() {
	b := New("feedback", WithFailureThreshold(1), WithSuccessThreshold(2), WithCooldown(time.Second))
	b.RecordFailure(s.now)

	ok, _ := b.Allow(s.now.Add(time.Second))
	s.True(ok)
	s.Equal(StateHalfOpen, b.State())

	s.False(b.RecordSuccess().Closed)
	s.True(b.RecordSuccess().Closed)
	s.Equal(StateClosed, b.State())
}

func (s *BreakerSuite) TestHalfOpenFailureReopens() {
	b := New("feedback", WithFailureThreshold(1), WithCooldown(time.Second))
	b.RecordFailure(s.now)

	later := s.now.Add(2 * time.Second)
	ok, _ := b.Allow(later)
	s.True(ok)
	s.True(b.RecordFailure(later).Opened)

	ok, wait := b.Allow(later)
	s.False(ok)
	s.Equal(time.Second, wait)
}

func (s *BreakerSuite) TestReset() {
	b := New("feedback", WithFailureThreshold(1))
	b.RecordFailure(s.now)
	b.Reset()
	s.Equal(StateClosed, b.State())
	s.Equal("closed", b.State().String())
}
