package store

import (
	"embed"

	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// newMigrator builds a migrator over the store's own connection pool. The
// migrator is never closed: closing it would close the shared pool.
func (s *SQLStore) newMigrator() (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations/"+s.driver)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s migrations", s.driver)
	}

	var driver database.Driver
	switch s.driver {
	case DriverPostgres:
		driver, err = postgres.WithInstance(s.db.DB, &postgres.Config{})
	case DriverSQLite:
		driver, err = sqlite.WithInstance(s.db.DB, &sqlite.Config{})
	default:
		return nil, errors.Newf("no migrations for driver %q", s.driver)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "create %s migration driver", s.driver)
	}

	m, err := migrate.NewWithInstance("iofs", source, s.driver, driver)
	if err != nil {
		return nil, errors.Wrap(err, "create migrate instance")
	}
	return m, nil
}

// MigrateUp applies all pending migrations. It reports whether anything changed.
func (s *SQLStore) MigrateUp() (bool, error) {
	m, err := s.newMigrator()
	if err != nil {
		return false, err
	}
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return false, nil
		}
		return false, errors.Wrap(err, "run migrations")
	}
	return true, nil
}

// MigrateDown rolls back steps migrations (at least one)
func (s *SQLStore) MigrateDown(steps int) error {
	if steps <= 0 {
		steps = 1
	}
	m, err := s.newMigrator()
	if err != nil {
		return err
	}
	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "rollback migrations")
	}
	return nil
}

// MigrationVersion returns the applied version; zero means none applied
func (s *SQLStore) MigrationVersion() (uint, bool, error) {
	m, err := s.newMigrator()
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, errors.Wrap(err, "get migration version")
	}
	return version, dirty, nil
}
