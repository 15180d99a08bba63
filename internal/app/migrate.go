package app

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/billops-backend/internal/config"
	"github.com/heartmarshall/billops-backend/migrations"
)

// Migrate applies any pending embedded schema migrations. goose works
// over database/sql, so this opens its own short-lived connection
// instead of reusing the pgx pool.
func Migrate(ctx context.Context, cfg config.DatabaseConfig) (int, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return 0, fmt.Errorf("open database for migrations: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return 0, fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}
	return len(results), nil
}
