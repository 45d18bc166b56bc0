package telegram

import (
	"go.uber.org/fx"

	"signal_bot/internal/modules/config"
	"signal_bot/internal/notify"
	"signal_bot/pkg/logger"
)

// NewNotifier returns the Telegram notifier, or a stdout one for dry runs.
func NewNotifier(cfg *config.Config) (notify.Notifier, error) {
	if cfg.DryRun {
		logger.Info("[NOTIFY] dry run: alerts are logged only")
		return notify.NewStdout(), nil
	}
	return notify.NewTelegram(cfg.Telegram.Token, cfg.NotificationDestination, cfg.Runner.RequestTimeout)
}

func Module() fx.Option {
	return fx.Module("telegram",
		fx.Provide(NewNotifier),
	)
}
