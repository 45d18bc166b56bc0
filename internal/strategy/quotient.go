package strategy

import "math"

const (
	DefaultK1 = 0.5
	DefaultK2 = 0.3
)

// Quotient maps the filtered series into two bounded channels:
//
//	q1 = (x+k1)/(k1*x+1)   q2 = (x+k2)/(k2*x+1)
//
// A sample whose denominator is exactly zero is degenerate and comes back as NaN.
func Quotient(x []float64, k1, k2 float64) (q1, q2 []float64) {
	q1 = make([]float64, len(x))
	q2 = make([]float64, len(x))
	for i, v := range x {
		q1[i] = mobius(v, k1)
		q2[i] = mobius(v, k2)
	}
	return q1, q2
}

func mobius(x, k float64) float64 {
	den := float64(k*x) + 1
	if den == 0 {
		return math.NaN()
	}
	return (x + k) / den
}
