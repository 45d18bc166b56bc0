package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"

	"signal_bot/internal/exchange"
	"signal_bot/internal/helper"
	"signal_bot/internal/journal"
	"signal_bot/internal/metrics"
	"signal_bot/internal/models"
	"signal_bot/internal/notify"
	"signal_bot/internal/strategy"
	"signal_bot/pkg/logger"
)

// CandleSource returns ascending kline history for a pair.
type CandleSource interface {
	GetCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error)
}

// PriceSource returns the current USD reference price for an asset.
type PriceSource interface {
	Price(ctx context.Context, asset string) (float64, error)
}

// TickObserver is told about completed ticks and alerts (health endpoint).
type TickObserver interface {
	TouchTick(t time.Time)
	AlertSent()
}

var errNoCandles = errors.New("no candles returned")

// RiskPcts are the take-profit / stop-loss percentages per direction.
type RiskPcts struct {
	BuyTakeProfit  float64
	BuyStopLoss    float64
	SellTakeProfit float64
	SellStopLoss   float64
}

func DefaultRiskPcts() RiskPcts {
	return RiskPcts{
		BuyTakeProfit:  strategy.BuyTakeProfitPct,
		BuyStopLoss:    strategy.BuyStopLossPct,
		SellTakeProfit: strategy.SellTakeProfitPct,
		SellStopLoss:   strategy.SellStopLossPct,
	}
}

// EngineConfig is everything the engine needs from the app config.
type EngineConfig struct {
	Symbols        []string
	Interval       string
	Window         int
	Params         strategy.Params
	Risk           RiskPcts
	Workers        int
	TickInterval   time.Duration
	TickDeadline   time.Duration // 0 means TickInterval
	RequestTimeout time.Duration
}

// Engine evaluates every configured symbol once per tick.
type Engine struct {
	cfg EngineConfig

	candles  CandleSource
	prices   PriceSource
	notifier notify.Notifier
	journal  journal.Recorder
	metrics  *metrics.Metrics
	observer TickObserver

	state *StateStore
}

func NewEngine(
	cfg EngineConfig,
	candles CandleSource,
	prices PriceSource,
	n notify.Notifier,
	j journal.Recorder,
	m *metrics.Metrics,
	obs TickObserver,
) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = exchange.DefaultCandleLimit
	}
	if cfg.TickDeadline <= 0 {
		cfg.TickDeadline = cfg.TickInterval
	}
	cfg.Symbols = dedupe(cfg.Symbols)
	if j == nil {
		j = journal.Nop{}
	}
	if m == nil {
		m = metrics.NewMetrics()
	}

	return &Engine{
		cfg:      cfg,
		candles:  candles,
		prices:   prices,
		notifier: n,
		journal:  j,
		metrics:  m,
		observer: obs,
		state:    NewStateStore(),
	}
}

// State exposes the debounce store (read-only use).
func (e *Engine) State() *StateStore { return e.state }

// Run ticks immediately and then every TickInterval until ctx is cancelled.
// Ticks never overlap: the next one starts only after the previous finished.
func (e *Engine) Run(ctx context.Context) error {
	logger.Info("[RUNNER] ▶️ monitoring %d symbols: %v every %s", len(e.cfg.Symbols), e.cfg.Symbols, e.cfg.TickInterval)
	if err := e.send(ctx, formatStartup(e.cfg.Symbols, e.cfg.Interval, e.cfg.TickInterval)); err != nil {
		logger.Warn("[RUNNER] startup notice failed: %v", err)
	}

	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	for {
		e.Tick(ctx)

		select {
		case <-ctx.Done():
			logger.Info("[RUNNER] ⏹ monitoring stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Tick evaluates all symbols with at most Workers in flight and returns when
// every task is done. Tasks share a deadline of TickDeadline.
func (e *Engine) Tick(ctx context.Context) {
	started := time.Now()
	tickCtx, cancel := context.WithTimeout(ctx, e.cfg.TickDeadline)
	defer cancel()

	sem := make(chan struct{}, e.cfg.Workers)
	var wg sync.WaitGroup

dispatch:
	for _, sym := range e.cfg.Symbols {
		select {
		case sem <- struct{}{}:
		case <-tickCtx.Done():
			logger.Warn("[RUNNER] tick deadline reached before dispatching %s", sym)
			break dispatch
		}

		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			defer func() { <-sem }()
			e.evaluate(tickCtx, sym)
		}(sym)
	}
	wg.Wait()

	e.metrics.Ticks.Inc()
	e.metrics.TickDuration.Observe(time.Since(started).Seconds())
	if e.observer != nil {
		e.observer.TouchTick(time.Now())
	}
	logger.Debug("[RUNNER] tick done in %s", time.Since(started))
}

// evaluate runs the full pipeline for one symbol. Every failure ends here as a
// log line; the state slot is only touched once candles and price are in hand.
func (e *Engine) evaluate(ctx context.Context, symbol string) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "engine.evaluate")
	span.SetTag("symbol", symbol)
	defer span.Finish()

	result, err := e.process(ctx, symbol)
	if err != nil {
		ext.LogError(span, err)
	}
	span.SetTag("result", result)
	e.metrics.Evaluations.WithLabelValues(result).Inc()
}

func (e *Engine) process(ctx context.Context, symbol string) (string, error) {
	candles, err := e.fetchCandles(ctx, symbol)
	if err != nil {
		if errors.Is(err, errNoCandles) {
			logger.Warn("[EVAL] %s: %v", symbol, err)
			return metrics.ResultNoCandles, err
		}
		e.metrics.FetchErrors.WithLabelValues(exchange.SourceCandles).Inc()
		logger.Error("[EVAL] %s: %v", symbol, err)
		return metrics.ResultFetchError, err
	}

	res := strategy.Evaluate(models.Closes(candles), e.cfg.Params)
	side, q1, err := res.Last()
	if errors.Is(err, strategy.ErrDegenerateSample) {
		e.metrics.DegenerateSamples.Inc()
		logger.Warn("[EVAL] %s: %v, treating bar as neutral", symbol, err)
	}
	logger.Debug("[EVAL] %s bars=%d hp=%.8f q1=%.6f side=%s",
		symbol, len(candles), res.Filtered[len(res.Filtered)-1], q1, side)

	asset := helper.BaseAsset(symbol)
	price, err := e.fetchPrice(ctx, asset)
	if err != nil {
		e.metrics.FetchErrors.WithLabelValues(exchange.SourcePrice).Inc()
		logger.Error("[EVAL] %s: %v", symbol, err)
		return metrics.ResultFetchError, err
	}

	tr, ok := e.state.Decide(symbol, side)
	if !ok {
		return metrics.ResultNoChange, nil
	}

	alert := e.buildAlert(symbol, tr, price, q1)
	logger.Info("[SIGNAL] %s %s @ %.6f tp=%s sl=%s", symbol, tr, price, alert.TakeProfit, alert.StopLoss)
	e.metrics.Alerts.WithLabelValues(string(tr)).Inc()

	delivered := true
	if err := e.send(ctx, FormatAlert(alert)); err != nil {
		delivered = false
		e.metrics.NotifyErrors.Inc()
		logger.Error("[NOTIFY] %s: %v", symbol, err)
	} else if e.observer != nil {
		e.observer.AlertSent()
	}

	if err := e.journal.Record(ctx, alert, delivered); err != nil {
		e.metrics.JournalErrors.Inc()
		logger.Error("[JOURNAL] %s: %v", symbol, err)
	}
	return metrics.ResultAlert, nil
}

func (e *Engine) fetchCandles(ctx context.Context, symbol string) ([]models.Candle, error) {
	reqCtx, cancel := e.requestContext(ctx)
	defer cancel()

	candles, err := e.candles.GetCandles(reqCtx, symbol, e.cfg.Interval, e.cfg.Window)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, errNoCandles
	}
	return candles, nil
}

func (e *Engine) fetchPrice(ctx context.Context, asset string) (float64, error) {
	reqCtx, cancel := e.requestContext(ctx)
	defer cancel()
	return e.prices.Price(reqCtx, asset)
}

func (e *Engine) send(ctx context.Context, msg string) error {
	reqCtx, cancel := e.requestContext(ctx)
	defer cancel()
	return e.notifier.Send(reqCtx, msg)
}

func (e *Engine) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.cfg.RequestTimeout)
}

func (e *Engine) buildAlert(symbol string, tr models.Transition, price, q1 float64) models.Alert {
	tp, sl := e.cfg.Risk.BuyTakeProfit, e.cfg.Risk.BuyStopLoss
	if tr == models.EnteredSell {
		tp, sl = e.cfg.Risk.SellTakeProfit, e.cfg.Risk.SellStopLoss
	}
	levels := strategy.RiskLevels(price, tp, sl)
	return models.Alert{
		Symbol:     symbol,
		Interval:   e.cfg.Interval,
		Transition: tr,
		Price:      price,
		TakeProfit: levels.TakeProfit,
		StopLoss:   levels.StopLoss,
		Oscillator: q1,
	}
}

func dedupe(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
