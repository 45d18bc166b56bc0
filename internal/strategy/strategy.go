package strategy

import (
	"math"

	"github.com/pkg/errors"

	"signal_bot/internal/models"
)

var (
	// ErrEmptySeries is returned when there is no bar to classify.
	ErrEmptySeries = errors.New("empty price series")

	// ErrDegenerateSample marks a last bar whose oscillator value is undefined.
	// The bar is still reported as neutral.
	ErrDegenerateSample = errors.New("degenerate oscillator sample")
)

// Params groups the tunables of the quotient pipeline.
type Params struct {
	Alpha1  float64
	K1      float64
	K2      float64
	Trigger float64
}

func DefaultParams() Params {
	return Params{
		Alpha1:  DefaultAlpha1,
		K1:      DefaultK1,
		K2:      DefaultK2,
		Trigger: DefaultTrigger,
	}
}

// Result keeps every intermediate series, aligned by index with the input.
type Result struct {
	Filtered []float64
	Q1       []float64
	// Q2 is exposed for inspection; sides are derived from Q1 only.
	Q2    []float64
	Sides []models.Side
}

// Evaluate runs filter → oscillator → cross over a full close window.
func Evaluate(closes []float64, p Params) Result {
	filtered := HighPass(closes, p.Alpha1)
	q1, q2 := Quotient(filtered, p.K1, p.K2)
	return Result{
		Filtered: filtered,
		Q1:       q1,
		Q2:       q2,
		Sides:    Cross(q1, p.Trigger),
	}
}

// Last returns the classification and q1 value of the most recent bar.
func (r Result) Last() (models.Side, float64, error) {
	n := len(r.Sides)
	if n == 0 {
		return models.SideNone, 0, ErrEmptySeries
	}
	q := r.Q1[n-1]
	if math.IsNaN(q) {
		return models.SideNone, q, ErrDegenerateSample
	}
	return r.Sides[n-1], q, nil
}
