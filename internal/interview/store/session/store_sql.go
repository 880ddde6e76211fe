package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"leetcoach/internal/interview/models"
	"leetcoach/internal/platform/database"
	"leetcoach/internal/sentinel"
	id "leetcoach/pkg/domain"
)

const sessionColumns = `user_id, question_id, clarification, brute_force,
	brute_force_time_complexity, brute_force_space_complexity,
	optimize, optimize_time_complexity, optimize_space_complexity,
	code, language, created_at, updated_at`

// upsertSQL writes only the non-NULL patch columns. Both Postgres and SQLite
// run it as one atomic statement.
const upsertSQL = `INSERT INTO interview_sessions (` + sessionColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, question_id) DO UPDATE SET
	clarification                = COALESCE(excluded.clarification, interview_sessions.clarification),
	brute_force                  = COALESCE(excluded.brute_force, interview_sessions.brute_force),
	brute_force_time_complexity  = COALESCE(excluded.brute_force_time_complexity, interview_sessions.brute_force_time_complexity),
	brute_force_space_complexity = COALESCE(excluded.brute_force_space_complexity, interview_sessions.brute_force_space_complexity),
	optimize                     = COALESCE(excluded.optimize, interview_sessions.optimize),
	optimize_time_complexity     = COALESCE(excluded.optimize_time_complexity, interview_sessions.optimize_time_complexity),
	optimize_space_complexity    = COALESCE(excluded.optimize_space_complexity, interview_sessions.optimize_space_complexity),
	code                         = COALESCE(excluded.code, interview_sessions.code),
	language                     = COALESCE(excluded.language, interview_sessions.language),
	updated_at                   = excluded.updated_at
RETURNING ` + sessionColumns

// SQLStore persists sessions in Postgres or SQLite.
type SQLStore struct {
	pool *database.Pool
}

func NewSQL(pool *database.Pool) *SQLStore {
	return &SQLStore{pool: pool}
}

func (s *SQLStore) Upsert(ctx context.Context, key models.Key, patch models.Patch, now time.Time) (*models.Session, error) {
	now = now.UTC()
	row := s.pool.DB().QueryRowContext(ctx, s.pool.Rebind(upsertSQL),
		key.UserID.String(), int(key.QuestionID),
		patch.Clarification, patch.BruteForce,
		patch.BruteForceTimeComplexity, patch.BruteForceSpaceComplexity,
		patch.Optimize, patch.OptimizeTimeComplexity, patch.OptimizeSpaceComplexity,
		patch.Code, patch.Language,
		now, now,
	)
	session, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("upsert session %s: %w", key, err)
	}
	return session, nil
}

func (s *SQLStore) Get(ctx context.Context, key models.Key) (*models.Session, error) {
	row := s.pool.DB().QueryRowContext(ctx,
		s.pool.Rebind(`SELECT `+sessionColumns+` FROM interview_sessions WHERE user_id = ? AND question_id = ?`),
		key.UserID.String(), int(key.QuestionID),
	)
	session, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", key, err)
	}
	return session, nil
}

func scanSession(row *sql.Row) (*models.Session, error) {
	var (
		rawUserID  string
		questionID int
		clar, bf, bfTime, bfSpace,
		opt, optTime, optSpace,
		code, lang sql.NullString
		s models.Session
	)
	err := row.Scan(&rawUserID, &questionID, &clar, &bf, &bfTime, &bfSpace,
		&opt, &optTime, &optSpace, &code, &lang, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	parsed, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, fmt.Errorf("scan user id: %w", err)
	}
	s.UserID = id.UserID(parsed)
	s.QuestionID = id.QuestionID(questionID)
	s.Clarification = clar.String
	s.BruteForce = bf.String
	s.BruteForceTimeComplexity = bfTime.String
	s.BruteForceSpaceComplexity = bfSpace.String
	s.Optimize = opt.String
	s.OptimizeTimeComplexity = optTime.String
	s.OptimizeSpaceComplexity = optSpace.String
	s.Code = code.String
	s.Language = lang.String
	return &s, nil
}
