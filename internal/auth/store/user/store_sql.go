package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"leetcoach/internal/auth/models"
	"leetcoach/internal/platform/database"
	"leetcoach/internal/sentinel"
	id "leetcoach/pkg/domain"
)

const userColumns = `id, username, email, password_hash, created_at`

// SQLStore persists users in Postgres or SQLite.
type SQLStore struct {
	pool *database.Pool
}

func NewSQL(pool *database.Pool) *SQLStore {
	return &SQLStore{pool: pool}
}

func (s *SQLStore) Create(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("user is required")
	}
	_, err := s.pool.DB().ExecContext(ctx,
		s.pool.Rebind(`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?)`),
		user.ID.String(), user.Username, strings.ToLower(user.Email), user.PasswordHash, user.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user already exists: %w", sentinel.ErrAlreadyExists)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *SQLStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	row := s.pool.DB().QueryRowContext(ctx,
		s.pool.Rebind(`SELECT `+userColumns+` FROM users WHERE username = ?`),
		username,
	)
	return scanUser(row)
}

func (s *SQLStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	row := s.pool.DB().QueryRowContext(ctx,
		s.pool.Rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`),
		userID.String(),
	)
	return scanUser(row)
}

func (s *SQLStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var n int
	err := s.pool.DB().QueryRowContext(ctx,
		s.pool.Rebind(`SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`),
		username, strings.ToLower(email),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return n > 0, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u     models.User
		rawID string
	)
	if err := row.Scan(&rawID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	parsed, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan user id: %w", err)
	}
	u.ID = id.UserID(parsed)
	return &u, nil
}

// isUniqueViolation recognizes duplicate-key errors from both drivers.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
