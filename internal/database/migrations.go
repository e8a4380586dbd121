package database

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

const migrationDialect = "postgres"

// RunMigrations brings the schema up to date, creating the accounts,
// products, and transactions tables on first run. Safe to call on every
// start: goose skips migrations already applied.
func RunMigrations(db *sql.DB, migrationsDir string, logger *zap.Logger) error {
	if err := goose.SetDialect(migrationDialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	logger.Info("Applying pending migrations", zap.String("dir", migrationsDir))

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// MigrationStatus prints the goose status table, for troubleshooting a
// database whose schema looks out of step with the code.
func MigrationStatus(db *sql.DB, migrationsDir string) error {
	if err := goose.SetDialect(migrationDialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.Status(db, migrationsDir)
}
