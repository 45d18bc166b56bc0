package bootstrap

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx/fxtest"

	"signal_bot/internal/models"
	bootstrap "signal_bot/internal/modules/bootstrap/service"
)

type countingSource struct {
	calls atomic.Int32
	block bool
}

func (c *countingSource) GetCandles(ctx context.Context, _, _ string, limit int) ([]models.Candle, error) {
	c.calls.Add(1)
	if c.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return make([]models.Candle, limit), nil
}

func TestWarmupFinishesInsideOnStart(t *testing.T) {
	src := &countingSource{}
	lc := fxtest.NewLifecycle(t)
	RegisterWarmup(lc, bootstrap.NewWarmuper(src, "1hour", 50, 2), []string{"BTCUSDT", "ETHUSDT"}, time.Second)

	lc.RequireStart()
	assert.Equal(t, int32(2), src.calls.Load())
	lc.RequireStop()
}

func TestWarmupIsBounded(t *testing.T) {
	src := &countingSource{block: true}
	lc := fxtest.NewLifecycle(t)
	RegisterWarmup(lc, bootstrap.NewWarmuper(src, "1hour", 50, 1), []string{"BTCUSDT"}, 50*time.Millisecond)

	started := time.Now()
	lc.RequireStart()
	assert.Less(t, time.Since(started), 2*time.Second)
	lc.RequireStop()
}
