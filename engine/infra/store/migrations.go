package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/flowgate/flowgate/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var (
	migrationOnce sync.Once
	migrationErr  error
)

// Migrate runs the embedded migrations once per process. A PostgreSQL
// advisory lock keeps concurrent instances from racing each other.
func Migrate(ctx context.Context, cfg *Config) error {
	migrationOnce.Do(func() {
		db, err := sql.Open("pgx", cfg.connString())
		if err != nil {
			migrationErr = fmt.Errorf("opening migration connection: %w", err)
			return
		}
		defer db.Close()
		migrationErr = runEmbeddedMigrations(ctx, db)
	})
	return migrationErr
}

func runEmbeddedMigrations(ctx context.Context, db *sql.DB) error {
	const lockID = 7321

	if _, err := db.ExecContext(ctx, "SELECT pg_advisory_lock($1)", lockID); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	defer func() {
		if _, unlockErr := db.ExecContext(ctx, "SELECT pg_advisory_unlock($1)", lockID); unlockErr != nil {
			logger.FromContext(ctx).Error("failed to release migration lock", "error", unlockErr)
		}
	}()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
