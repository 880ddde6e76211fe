package challenge_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"leetcoach/internal/captcha/models"
	"leetcoach/internal/captcha/ports"
	"leetcoach/internal/captcha/store/challenge"
	"leetcoach/internal/platform/database/dbtest"
	"leetcoach/internal/sentinel"
	"leetcoach/pkg/testutil"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// ChallengeStoreSuite runs the same contract against every backend.
type ChallengeStoreSuite struct {
	suite.Suite
	newStore func() ports.ChallengeStore
	store    ports.ChallengeStore
}

func TestInMemoryChallengeStore(t *testing.T) {
	suite.Run(t, &ChallengeStoreSuite{newStore: func() ports.ChallengeStore {
		return challenge.New()
	}})
}

func TestSQLiteChallengeStore(t *testing.T) {
	suite.Run(t, &ChallengeStoreSuite{newStore: func() ports.ChallengeStore {
		return challenge.NewSQL(dbtest.NewSQLite(t))
	}})
}

func (s *ChallengeStoreSuite) SetupTest() {
	s.store = s.newStore()
}

func (s *ChallengeStoreSuite) save(expiresAt time.Time) *models.Challenge {
	c := &models.Challenge{
		ID:        uuid.NewString(),
		Question:  "What is 7 + 5?",
		Answer:    "12",
		ExpiresAt: expiresAt,
	}
	s.Require().NoError(s.store.Save(context.Background(), c))
	return c
}

func (s *ChallengeStoreSuite) TestTakeReturnsSavedChallengeOnce() {
	ctx := context.Background()
	saved := s.save(t0.Add(5 * time.Minute))

	got, err := s.store.Take(ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(saved.ID, got.ID)
	s.Equal("What is 7 + 5?", got.Question)
	s.Equal("12", got.Answer)
	s.True(saved.ExpiresAt.Equal(got.ExpiresAt))

	_, err = s.store.Take(ctx, saved.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ChallengeStoreSuite) TestTakeUnknownID() {
	_, err := s.store.Take(context.Background(), uuid.NewString())
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.Take(context.Background(), "not-a-uuid")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ChallengeStoreSuite) TestDeleteExpiredKeepsLiveAndBoundary() {
	ctx := context.Background()
	expired := s.save(t0.Add(-time.Second))
	boundary := s.save(t0)
	live := s.save(t0.Add(time.Minute))

	removed, err := s.store.DeleteExpired(ctx, t0)
	s.Require().NoError(err)
	s.Equal(1, removed)

	_, err = s.store.Take(ctx, expired.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.Take(ctx, boundary.ID)
	s.NoError(err)
	_, err = s.store.Take(ctx, live.ID)
	s.NoError(err)
}

func (s *ChallengeStoreSuite) TestConcurrentTakeSucceedsOnce() {
	saved := s.save(t0.Add(5 * time.Minute))

	var got atomic.Int32
	result := testutil.RunConcurrent(20, func(int) error {
		_, err := s.store.Take(context.Background(), saved.ID)
		if err == nil {
			got.Add(1)
		}
		return err
	})

	s.Equal(int32(1), got.Load())
	s.Equal(int32(1), result.Successes)
	s.Equal(int32(19), result.NotFounds)
}
