package main

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"signal_bot/internal/modules/bootstrap"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/health"
	"signal_bot/internal/modules/postgres"
	telegram "signal_bot/internal/modules/telegram_bot"
	"signal_bot/internal/modules/tracing"
	"signal_bot/internal/runner"
	"signal_bot/pkg/logger"
	pkgtracing "signal_bot/pkg/tracing"
)

const serviceName = "signal_bot"

func main() {
	logger.SetServiceName(serviceName)
	pkgtracing.SetServiceName(serviceName)
	defer logger.Sync()

	app := fx.New(
		fx.WithLogger(func(cfg *config.Config) fxevent.Logger {
			l, err := logger.Init(cfg.LogLevel)
			if err != nil {
				l = zap.NewExample()
			}
			return &fxevent.ZapLogger{Logger: l.WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
		}),
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		tracing.Module(),
		health.Module(),
		postgres.Module(),
		telegram.Module(),
		bootstrap.Module(),
		runner.Module(),
	)

	// Run blocks until SIGINT/SIGTERM and then stops every module.
	app.Run()
}
