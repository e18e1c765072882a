package database

import (
	"agenda-api/core/logger"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func newMigrator(d *Database) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations: %w", err)
	}

	driver, err := postgres.WithInstance(d.db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate driver: %w", err)
	}

	return migrate.NewWithInstance("iofs", source, "postgres", driver)
}

func (d *Database) MigrateUp() error {
	m, err := newMigrator(d)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Database:MigrateUp", "error", err)
		return err
	}

	version, dirty, _ := m.Version()
	logger.Info("Database:MigrateUp:Done", "version", version, "dirty", dirty)
	return nil
}

// MigrateDown rolls back the given number of steps.
func (d *Database) MigrateDown(steps int) error {
	m, err := newMigrator(d)
	if err != nil {
		return err
	}

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Database:MigrateDown", "error", err)
		return err
	}
	return nil
}
