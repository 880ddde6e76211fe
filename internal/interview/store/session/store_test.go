package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"leetcoach/internal/interview/models"
	"leetcoach/internal/interview/store/session"
	"leetcoach/internal/platform/database/dbtest"
	"leetcoach/internal/sentinel"
	id "leetcoach/pkg/domain"
)

type sessionStore interface {
	Upsert(ctx context.Context, key models.Key, patch models.Patch, now time.Time) (*models.Session, error)
	Get(ctx context.Context, key models.Key) (*models.Session, error)
}

type SessionStoreSuite struct {
	suite.Suite
	newStore func() sessionStore
	store    sessionStore
	key      models.Key
	t0       time.Time
}

func TestInMemorySessionStore(t *testing.T) {
	suite.Run(t, &SessionStoreSuite{newStore: func() sessionStore { return session.New() }})
}

func TestSQLiteSessionStore(t *testing.T) {
	suite.Run(t, &SessionStoreSuite{newStore: func() sessionStore { return session.NewSQL(dbtest.NewSQLite(t)) }})
}

func (s *SessionStoreSuite) SetupTest() {
	s.store = s.newStore()
	s.key = models.Key{UserID: id.NewUserID(), QuestionID: 1}
	s.t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
}

func ptr(v string) *string { return &v }

func (s *SessionStoreSuite) TestUpsertCreatesRecord() {
	got, err := s.store.Upsert(context.Background(), s.key, models.Patch{Clarification: ptr("Are inputs sorted?")}, s.t0)
	s.Require().NoError(err)

	s.Equal(s.key.UserID, got.UserID)
	s.Equal(s.key.QuestionID, got.QuestionID)
	s.Equal("Are inputs sorted?", got.Clarification)
	s.Equal(models.StateClarified, got.State())
	s.True(got.CreatedAt.Equal(s.t0))
	s.True(got.UpdatedAt.Equal(s.t0))
}

func (s *SessionStoreSuite) TestUpsertKeepsUntouchedFields() {
	ctx := context.Background()
	_, err := s.store.Upsert(ctx, s.key, models.Patch{Clarification: ptr("q1")}, s.t0)
	s.Require().NoError(err)
	_, err = s.store.Upsert(ctx, s.key, models.Patch{
		BruteForce:                ptr("use nested loops"),
		BruteForceTimeComplexity:  ptr("O(n^2)"),
		BruteForceSpaceComplexity: ptr("O(1)"),
	}, s.t0.Add(time.Minute))
	s.Require().NoError(err)

	got, err := s.store.Upsert(ctx, s.key, models.Patch{Optimize: ptr("hash map")}, s.t0.Add(2*time.Minute))
	s.Require().NoError(err)

	s.Equal("q1", got.Clarification)
	s.Equal("use nested loops", got.BruteForce)
	s.Equal("O(n^2)", got.BruteForceTimeComplexity)
	s.Equal("O(1)", got.BruteForceSpaceComplexity)
	s.Equal("hash map", got.Optimize)
	s.Empty(got.OptimizeTimeComplexity)
	s.True(got.CreatedAt.Equal(s.t0))
	s.True(got.UpdatedAt.Equal(s.t0.Add(2 * time.Minute)))
}

func (s *SessionStoreSuite) TestUpsertIsIdempotent() {
	ctx := context.Background()
	patch := models.Patch{Code: ptr("print(1)"), Language: ptr("python")}

	first, err := s.store.Upsert(ctx, s.key, patch, s.t0)
	s.Require().NoError(err)
	second, err := s.store.Upsert(ctx, s.key, patch, s.t0)
	s.Require().NoError(err)

	s.Equal(first.Code, second.Code)
	s.Equal(first.Language, second.Language)
	s.Equal(models.StateReviewed, second.State())
}

func (s *SessionStoreSuite) TestResubmittingAStageOverwrites() {
	ctx := context.Background()
	_, err := s.store.Upsert(ctx, s.key, models.Patch{BruteForce: ptr("first idea")}, s.t0)
	s.Require().NoError(err)

	got, err := s.store.Upsert(ctx, s.key, models.Patch{BruteForce: ptr("second idea")}, s.t0)
	s.Require().NoError(err)
	s.Equal("second idea", got.BruteForce)
}

func (s *SessionStoreSuite) TestSessionsAreScopedByUserAndQuestion() {
	ctx := context.Background()
	_, err := s.store.Upsert(ctx, s.key, models.Patch{Clarification: ptr("mine")}, s.t0)
	s.Require().NoError(err)

	otherQuestion := models.Key{UserID: s.key.UserID, QuestionID: 2}
	otherUser := models.Key{UserID: id.NewUserID(), QuestionID: 1}

	_, err = s.store.Get(ctx, otherQuestion)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.Get(ctx, otherUser)
	s.ErrorIs(err, sentinel.ErrNotFound)

	got, err := s.store.Get(ctx, s.key)
	s.Require().NoError(err)
	s.Equal("mine", got.Clarification)
}

func (s *SessionStoreSuite) TestConcurrentStageWritesAreNotTorn() {
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v := fmt.Sprintf("idea-%d", i)
			_, err := s.store.Upsert(ctx, s.key, models.Patch{
				BruteForce:               ptr(v),
				BruteForceTimeComplexity: ptr(v),
			}, s.t0)
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	got, err := s.store.Get(ctx, s.key)
	s.Require().NoError(err)
	s.Equal(got.BruteForce, got.BruteForceTimeComplexity, "fields of one write land together")
}
