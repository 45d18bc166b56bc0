package bootstrap

import (
	"context"
	"time"

	"go.uber.org/fx"

	"signal_bot/internal/exchange"
	bootstrap "signal_bot/internal/modules/bootstrap/service"
	"signal_bot/internal/modules/config"
)

// RegisterWarmup checks every symbol in OnStart, before the runner's hook
// starts ticking. Problems are only logged: the engine keeps retrying them on
// every tick. The pass is bounded by timeout and by the fx start context.
func RegisterWarmup(lc fx.Lifecycle, wu *bootstrap.Warmuper, symbols []string, timeout time.Duration) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			wu.Warmup(ctx, symbols)
			return nil
		},
	})
}

func Module() fx.Option {
	return fx.Module("bootstrap",
		fx.Provide(
			func(cfg *config.Config) *bootstrap.Warmuper {
				src := exchange.NewCoinEx(cfg.Endpoints.Candles, cfg.Runner.RequestTimeout)
				return bootstrap.NewWarmuper(src, cfg.Interval, cfg.Strategy.Window, cfg.Runner.Workers)
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, wu *bootstrap.Warmuper) {
			RegisterWarmup(lc, wu, cfg.Symbols, cfg.Runner.RequestTimeout)
		}),
	)
}
