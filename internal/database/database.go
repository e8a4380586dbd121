package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stock-tracker/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Connect opens the shared database handle used for the whole process
// lifetime. Every component receives this handle explicitly; no package-level
// connection state.
func Connect(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Health returns a snapshot of connection pool statistics.
func Health(db *sql.DB) map[string]string {
	stats := db.Stats()
	return map[string]string{
		"status":           "up",
		"open_connections": fmt.Sprintf("%d", stats.OpenConnections),
		"in_use":           fmt.Sprintf("%d", stats.InUse),
		"idle":             fmt.Sprintf("%d", stats.Idle),
	}
}
