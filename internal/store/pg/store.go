// Package pg implementa repository.ProfileRepository con conexión directa a
// Postgres (pgxpool). Se usa cuando el servicio tiene acceso a la base del
// platform o corre contra un Postgres propio.
package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hiredvalley/hired-backend/internal/observability/logger"
	migrations "github.com/hiredvalley/hired-backend/migrations/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PoolConfig ajusta el pool. Ceros = defaults de pgxpool.
type PoolConfig struct {
	MaxConns        int32
	MinConns        int32
	ConnMaxLifetime time.Duration
}

type Store struct{ pool *pgxpool.Pool }

// New abre el pool y verifica conectividad.
func New(ctx context.Context, dsn string, cfg PoolConfig) (*Store, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pcfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxLifetime > 0 {
		pcfg.MaxConnLifetime = cfg.ConnMaxLifetime
		pcfg.MaxConnIdleTime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Pool expone el pool (métricas).
func (s *Store) Pool() *pgxpool.Pool {
	if s == nil {
		return nil
	}
	return s.pool
}

// Close es idempotente.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// Profiles devuelve el repositorio de perfiles sobre este pool.
func (s *Store) Profiles() *ProfileRepo {
	return &ProfileRepo{q: s.pool}
}

// Migrate aplica las migraciones embebidas con goose.
func (s *Store) Migrate(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()
	return migrateUp(ctx, db)
}

// goose usa estado global (base FS, dialecto, logger).
func migrateUp(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, migrations.Dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// gooseLogger adapta el logger de proceso a goose.Logger.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	logger.S().Named("goose").Infof(format, v...)
}

func (gooseLogger) Fatalf(format string, v ...any) {
	logger.S().Named("goose").Fatalf(format, v...)
}
