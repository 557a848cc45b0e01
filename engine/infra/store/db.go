package store

import (
	"context"
	"fmt"
	"time"

	"github.com/flowgate/flowgate/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
)

// DBInterface is the minimal surface repositories need. Both a real
// pgxpool.Pool and pgxmock satisfy it.
type DBInterface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Config holds PostgreSQL connection settings.
type Config struct {
	ConnString string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
}

func (c *Config) connString() string {
	if c.ConnString != "" {
		return c.ConnString
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		orDefault(c.Host, "localhost"),
		orDefault(c.Port, "5432"),
		orDefault(c.User, "postgres"),
		orDefault(c.Password, ""),
		orDefault(c.DBName, "flowgate"),
		orDefault(c.SSLMode, "disable"),
	)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

type DB struct {
	pool *pgxpool.Pool
	cfg  *Config
}

// NewDB creates a connection pool and verifies connectivity with a bounded
// exponential backoff.
func NewDB(ctx context.Context, cfg *Config) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.connString())
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}
	poolConfig.MaxConns = 20
	poolConfig.MinConns = 2
	poolConfig.HealthCheckPeriod = 30 * time.Second
	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}

	backoff := retry.WithMaxRetries(5, retry.NewExponential(200*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Info("Database connection established", "db_name", cfg.DBName, "host", cfg.Host)
	return &DB{pool: pool, cfg: cfg}, nil
}

func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) Close(ctx context.Context) {
	db.pool.Close()
	logger.FromContext(ctx).Debug("Database connection pool closed")
}
