package database

import (
	"errors"
	"fmt"

	"leetcoach/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrate applies pending embedded migrations for the pool's dialect.
// Already-current schemas are not an error.
func (p *Pool) Migrate() error {
	if p == nil || p.db == nil {
		return fmt.Errorf("database not configured")
	}

	var (
		driver database.Driver
		err    error
	)
	switch p.dialect {
	case DialectPostgres:
		driver, err = migratepgx.WithInstance(p.db, &migratepgx.Config{})
	case DialectSQLite:
		driver, err = migratesqlite.WithInstance(p.db, &migratesqlite.Config{})
	default:
		return fmt.Errorf("no migrations for dialect %q", p.dialect)
	}
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	source, err := iofs.New(migrations.FS, string(p.dialect))
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	instance, err := migrate.NewWithInstance("iofs", source, string(p.dialect), driver)
	if err != nil {
		return fmt.Errorf("migration instance: %w", err)
	}

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
