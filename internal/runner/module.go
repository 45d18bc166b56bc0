package runner

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/fx"

	"signal_bot/internal/exchange"
	"signal_bot/internal/journal"
	"signal_bot/internal/metrics"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/health/service"
	"signal_bot/internal/notify"
	"signal_bot/pkg/logger"
)

// NewEngineFromConfig builds the engine with the CoinEx and CoinMarketCap
// clients described by cfg.
func NewEngineFromConfig(
	cfg *config.Config,
	n notify.Notifier,
	j journal.Recorder,
	m *metrics.Metrics,
	state *service.State,
) *Engine {
	timeout := cfg.Runner.RequestTimeout
	return NewEngine(
		EngineConfig{
			Symbols:  cfg.Symbols,
			Interval: cfg.Interval,
			Window:   cfg.Strategy.Window,
			Params:   cfg.StrategyParams(),
			Risk: RiskPcts{
				BuyTakeProfit:  cfg.Risk.BuyTakeProfitPct,
				BuyStopLoss:    cfg.Risk.BuyStopLossPct,
				SellTakeProfit: cfg.Risk.SellTakeProfitPct,
				SellStopLoss:   cfg.Risk.SellStopLossPct,
			},
			Workers:        cfg.Runner.Workers,
			TickInterval:   cfg.TickInterval(),
			TickDeadline:   cfg.Runner.TickDeadline,
			RequestTimeout: timeout,
		},
		exchange.NewCoinEx(cfg.Endpoints.Candles, timeout),
		exchange.NewCoinMarketCap(cfg.Endpoints.Price, cfg.PriceAPIKey, timeout),
		n, j, m, state,
	)
}

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			NewEngineFromConfig, // *Engine
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			e *Engine,
			_ opentracing.Tracer,
			ctx context.Context,
		) {
			runCtx, cancel := context.WithCancel(ctx)
			done := make(chan struct{})

			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						defer close(done)
						if err := e.Run(runCtx); err != nil {
							logger.Error("[RUNNER] stopped: %v", err)
						}
					}()
					return nil
				},
				OnStop: func(stopCtx context.Context) error {
					cancel()
					select {
					case <-done:
					case <-stopCtx.Done():
						return stopCtx.Err()
					}
					return nil
				},
			})
		}),
	)
}
