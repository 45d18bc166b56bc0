package service

import (
	"context"
	"sync"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

type CandleSource interface {
	GetCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error)
}

// Report is the outcome of one warmup pass.
type Report struct {
	Ready   []string
	Short   []string // fewer bars than the window
	Missing map[string]error
}

// Warmuper fetches one window per symbol before monitoring starts so broken
// symbols show up in the log at startup rather than on every tick.
type Warmuper struct {
	src      CandleSource
	interval string
	window   int

	// parallelism limit, keeps the exchange rate limit happy
	sem chan struct{}
}

func NewWarmuper(src CandleSource, interval string, window, parallel int) *Warmuper {
	if parallel <= 0 {
		parallel = 1
	}
	return &Warmuper{
		src:      src,
		interval: interval,
		window:   window,
		sem:      make(chan struct{}, parallel),
	}
}

func (w *Warmuper) Warmup(ctx context.Context, symbols []string) Report {
	rep := Report{Missing: map[string]error{}}
	if len(symbols) == 0 {
		return rep
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, sym := range symbols {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.sem <- struct{}{}
			defer func() { <-w.sem }()

			candles, err := w.src.GetCandles(ctx, sym, w.interval, w.window)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				rep.Missing[sym] = err
			case len(candles) < w.window:
				rep.Short = append(rep.Short, sym)
			default:
				rep.Ready = append(rep.Ready, sym)
			}
		}()
	}
	wg.Wait()

	for sym, err := range rep.Missing {
		logger.Warn("[BOOT] %s: %v", sym, err)
	}
	if len(rep.Short) > 0 {
		logger.Warn("[BOOT] short history (<%d bars): %v", w.window, rep.Short)
	}
	logger.Info("[BOOT] warmup done: %d/%d symbols ready", len(rep.Ready), len(symbols))
	return rep
}
