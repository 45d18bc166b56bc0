package strategy

import (
	"math"

	"signal_bot/internal/models"
)

// DefaultTrigger is the zero line the oscillator is compared against.
const DefaultTrigger = 0.0

// Cross tags every bar: BUY below the trigger, SELL above it, neutral on the
// line or for a NaN sample.
func Cross(q1 []float64, trigger float64) []models.Side {
	out := make([]models.Side, len(q1))
	for i, v := range q1 {
		out[i] = classify(v, trigger)
	}
	return out
}

func classify(v, trigger float64) models.Side {
	switch {
	case math.IsNaN(v):
		return models.SideNone
	case v < trigger:
		return models.SideBuy
	case v > trigger:
		return models.SideSell
	default:
		return models.SideNone
	}
}
