package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/hiredvalley/hired-backend/internal/config"
	"github.com/hiredvalley/hired-backend/internal/observability/logger"
	"github.com/hiredvalley/hired-backend/internal/store/pg"
	"github.com/spf13/cobra"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones de la tabla users (goose) sobre DATABASE_URL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate(cmd.Context(), *configPath, dsn)
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "DSN de Postgres (default: DATABASE_URL / profiles.dsn)")
	return cmd
}

func migrate(ctx context.Context, configPath, dsn string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(configPath)
	if err != nil && dsn == "" {
		return fmt.Errorf("config: %w", err)
	}
	if cfg != nil {
		logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "hired-backend", Version: version})
		if dsn == "" {
			dsn = cfg.Profiles.DSN
		}
	}
	defer func() { _ = logger.Sync() }()
	if dsn == "" {
		return errors.New("DATABASE_URL (o --dsn) es requerido")
	}

	st, err := pg.New(ctx, dsn, pg.PoolConfig{MaxConns: 2})
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.L().Info("migrations applied")
	return nil
}
