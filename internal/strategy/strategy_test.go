package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal_bot/internal/models"
)

func TestHighPass(t *testing.T) {
	t.Run("constant window is flat", func(t *testing.T) {
		closes := make([]float64, 50)
		for i := range closes {
			closes[i] = 27350.5
		}
		for i, v := range HighPass(closes, DefaultAlpha1) {
			assert.Zerof(t, v, "index %d", i)
		}
	})

	t.Run("first two samples are zero", func(t *testing.T) {
		hp := HighPass([]float64{10, 250, -3, 7}, DefaultAlpha1)
		require.Len(t, hp, 4)
		assert.Zero(t, hp[0])
		assert.Zero(t, hp[1])
	})

	t.Run("short inputs keep their length", func(t *testing.T) {
		assert.Empty(t, HighPass(nil, DefaultAlpha1))
		assert.Equal(t, []float64{0}, HighPass([]float64{5}, DefaultAlpha1))
		assert.Equal(t, []float64{0, 0}, HighPass([]float64{5, 6}, DefaultAlpha1))
	})

	t.Run("recurrence", func(t *testing.T) {
		hp := HighPass([]float64{1, 2, 4, 4}, DefaultAlpha1)
		a := 1 - DefaultAlpha1/2
		b := 1 - DefaultAlpha1
		assert.InDelta(t, a*a, hp[2], 1e-12)
		// diff = 4 - 8 + 2 = -2
		want := a*a*(-2) + 2*b*hp[2]
		assert.InDelta(t, want, hp[3], 1e-12)
	})

	t.Run("linear trend is removed", func(t *testing.T) {
		closes := make([]float64, 50)
		for i := range closes {
			closes[i] = 100 + 3*float64(i)
		}
		for _, v := range HighPass(closes, DefaultAlpha1) {
			assert.InDelta(t, 0, v, 1e-9)
		}
	})
}

func TestQuotient(t *testing.T) {
	t.Run("zero maps to k", func(t *testing.T) {
		q1, q2 := Quotient([]float64{0}, DefaultK1, DefaultK2)
		assert.Equal(t, DefaultK1, q1[0])
		assert.Equal(t, DefaultK2, q2[0])
	})

	t.Run("saturates at 1/k", func(t *testing.T) {
		q1, q2 := Quotient([]float64{1e6, -1e6, 1000}, DefaultK1, DefaultK2)
		assert.InDelta(t, 2.0, q1[0], 1e-3)
		assert.InDelta(t, 2.0, q1[1], 1e-3)
		assert.InDelta(t, 2.0, q1[2], 1e-2)
		assert.InDelta(t, 1/DefaultK2, q2[0], 1e-3)
	})

	t.Run("singular sample is NaN", func(t *testing.T) {
		q1, q2 := Quotient([]float64{-2}, DefaultK1, DefaultK2)
		assert.True(t, math.IsNaN(q1[0]))
		assert.False(t, math.IsNaN(q2[0]))
	})
}

func TestCross(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want models.Side
	}{
		{name: "below trigger", in: -0.2, want: models.SideBuy},
		{name: "above trigger", in: 0.4, want: models.SideSell},
		{name: "on trigger", in: 0, want: models.SideNone},
		{name: "undefined", in: math.NaN(), want: models.SideNone},
		{name: "negative infinity", in: math.Inf(-1), want: models.SideBuy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cross([]float64{tt.in}, DefaultTrigger)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestRiskLevels(t *testing.T) {
	buy := RiskLevels(100, BuyTakeProfitPct, BuyStopLossPct)
	assert.Equal(t, "102.000000", buy.TakeProfit)
	assert.Equal(t, "99.000000", buy.StopLoss)

	sell := RiskLevels(100, SellTakeProfitPct, SellStopLossPct)
	assert.Equal(t, "98.000000", sell.TakeProfit)
	assert.Equal(t, "101.000000", sell.StopLoss)

	small := RiskLevels(0.5, BuyTakeProfitPct, BuyStopLossPct)
	assert.Equal(t, "0.510000", small.TakeProfit)
	assert.Equal(t, "0.495000", small.StopLoss)
}

func TestEvaluateLast(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, _, err := Evaluate(nil, DefaultParams()).Last()
		assert.ErrorIs(t, err, ErrEmptySeries)
	})

	t.Run("flat window reads as sell", func(t *testing.T) {
		closes := []float64{5, 5, 5, 5, 5}
		side, q, err := Evaluate(closes, DefaultParams()).Last()
		require.NoError(t, err)
		assert.Equal(t, DefaultK1, q)
		assert.Equal(t, models.SideSell, side)
	})

	t.Run("small drop on last bar reads as buy", func(t *testing.T) {
		closes := []float64{100, 100, 100, 100, 99}
		res := Evaluate(closes, DefaultParams())
		side, q, err := res.Last()
		require.NoError(t, err)
		assert.Less(t, q, 0.0)
		assert.Equal(t, models.SideBuy, side)
		assert.Len(t, res.Q2, len(closes))
	})

	t.Run("drop past the pole reads as sell", func(t *testing.T) {
		// hp = -9.31 < -1/k1, both numerator and denominator are negative
		side, q, err := Evaluate([]float64{100, 100, 100, 100, 90}, DefaultParams()).Last()
		require.NoError(t, err)
		assert.Greater(t, q, 0.0)
		assert.Equal(t, models.SideSell, side)
	})

	t.Run("degenerate last sample", func(t *testing.T) {
		res := Result{
			Q1:    []float64{0.5, math.NaN()},
			Sides: []models.Side{models.SideSell, models.SideNone},
		}
		side, _, err := res.Last()
		assert.ErrorIs(t, err, ErrDegenerateSample)
		assert.Equal(t, models.SideNone, side)
	})
}
