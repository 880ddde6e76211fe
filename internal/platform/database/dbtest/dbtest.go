// Package dbtest opens throwaway migrated databases for store tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"leetcoach/internal/platform/database"

	"github.com/stretchr/testify/require"
)

// NewSQLite returns a migrated SQLite pool in a temp directory, closed on cleanup.
func NewSQLite(t testing.TB) *database.Pool {
	t.Helper()

	cfg := database.DefaultConfig()
	cfg.URL = "sqlite://" + filepath.Join(t.TempDir(), "test.db")

	pool, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })

	require.NoError(t, pool.Migrate())
	return pool
}
