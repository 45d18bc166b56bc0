package postgres

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"signal_bot/internal/journal"
	"signal_bot/internal/modules/config"
	"signal_bot/pkg/db"
	"signal_bot/pkg/logger"
)

// NewRecorder opens the journal database when db_dsn is set and falls back to
// a no-op recorder otherwise.
func NewRecorder(ctx context.Context, lc fx.Lifecycle, cfg *config.Config) (journal.Recorder, error) {
	if cfg.DB == "" {
		logger.Info("[JOURNAL] db_dsn not set, alerts are not journaled")
		return journal.Nop{}, nil
	}

	poolMaster, err := db.NewPool(ctx, db.PoolConfig{
		DSN: cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create poolMaster: %w", err)
	}

	if err = poolMaster.Ping(ctx); err != nil {
		poolMaster.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	tm := db.NewPgTxManager(poolMaster)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			tm.Close()
			return nil
		},
	})

	rec := journal.NewPostgres(tm)
	if err := rec.EnsureSchema(ctx); err != nil {
		tm.Close()
		return nil, err
	}
	return rec, nil
}

func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(NewRecorder),
	)
}
