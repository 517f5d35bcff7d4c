package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/mcguiretech/truapi/internal/common/logger"
)

// ApplyMigrations runs the file-based migrations against the postgres
// database before the pool starts serving repositories.
func ApplyMigrations(log *logger.Logger, databaseURL, migrationsDir string) error {
	m, err := migrate.New("file://"+migrationsDir, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Infof("database schema up to date, no migrations applied")
	} else {
		log.Infof("database migrations applied")
	}
	return nil
}
