package sqlite

import (
	"context"
	"errors"

	"github.com/fedgate/fedgate/internal/fedgate/store/drivers/sqlite/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "modernc.org/sqlite"
)

// ApplyMigrations applies any pending database migrations to the given Store's
// database. It uses the embedded migration files which are compiled into the
// binary. The accounts, configuration, and operational collections share one
// database, so this is the single migration entrypoint for all three.
func (s *Store) ApplyMigrations() error {
	// 1. Create the SQLite migration driver
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return err
	}

	// 2. Create the iofs (embedded filesystem) source driver
	migrationsFilesystem, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	// 3. Create the migrate instance to run migrations
	instance, err := migrate.NewWithInstance("iofs", migrationsFilesystem, "", driver)
	if err != nil {
		return err
	}

	// 4. Apply all up migrations
	err = instance.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// DropAll destroys every table, including the migration bookkeeping table.
// This exists only for the seeder's explicitly gated development reset and is
// never called during ordinary startup.
func (s *Store) DropAll(ctx context.Context) error {
	stmts := []string{
		`DROP TABLE IF EXISTS persisted_grants`,
		`DROP TABLE IF EXISTS api_resources`,
		`DROP TABLE IF EXISTS identity_resources`,
		`DROP TABLE IF EXISTS clients`,
		`DROP TABLE IF EXISTS user_claims`,
		`DROP TABLE IF EXISTS users`,
		`DROP TABLE IF EXISTS schema_migrations`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
