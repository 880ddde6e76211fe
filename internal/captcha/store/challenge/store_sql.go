package challenge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"leetcoach/internal/captcha/models"
	"leetcoach/internal/platform/database"
	"leetcoach/internal/sentinel"
	domain "leetcoach/pkg/domain"
)

// SQLStore persists challenges in the captchas table (Postgres or SQLite).
// Take is a single DELETE ... RETURNING so two redemptions of one id can never
// both see the row.
type SQLStore struct {
	pool *database.Pool
}

func NewSQL(pool *database.Pool) *SQLStore {
	return &SQLStore{pool: pool}
}

func (s *SQLStore) Save(ctx context.Context, challenge *models.Challenge) error {
	if challenge == nil {
		return fmt.Errorf("challenge is required")
	}
	_, err := s.pool.DB().ExecContext(ctx,
		s.pool.Rebind(`INSERT INTO captchas (id, question, answer, expires_at_ms) VALUES (?, ?, ?, ?)`),
		challenge.ID, challenge.Question, challenge.Answer, challenge.ExpiresAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save challenge: %w", err)
	}
	return nil
}

func (s *SQLStore) Take(ctx context.Context, id string) (*models.Challenge, error) {
	// Ids are UUIDs; anything else cannot exist and would fail the Postgres cast.
	if _, err := domain.ParseChallengeID(id); err != nil {
		return nil, fmt.Errorf("challenge not found: %w", sentinel.ErrNotFound)
	}

	var (
		c           = models.Challenge{ID: id}
		expiresAtMs int64
	)
	err := s.pool.DB().QueryRowContext(ctx,
		s.pool.Rebind(`DELETE FROM captchas WHERE id = ? RETURNING question, answer, expires_at_ms`),
		id,
	).Scan(&c.Question, &c.Answer, &expiresAtMs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("challenge not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("take challenge: %w", err)
	}
	c.ExpiresAt = time.UnixMilli(expiresAtMs)
	return &c, nil
}

func (s *SQLStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	res, err := s.pool.DB().ExecContext(ctx,
		s.pool.Rebind(`DELETE FROM captchas WHERE expires_at_ms < ?`),
		now.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("delete expired challenges: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired challenges: %w", err)
	}
	return int(n), nil
}
