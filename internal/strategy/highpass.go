package strategy

// DefaultAlpha1 is the high-pass coefficient used by the signal pipeline.
const DefaultAlpha1 = 0.07

// HighPass runs the two-pole recursive high-pass filter over closes and
// returns a series of the same length. Indices 0 and 1 are always 0.
//
// The whole window is recomputed on every call. Products go through explicit
// float64 conversions so the compiler cannot fuse multiply-adds.
func HighPass(closes []float64, alpha1 float64) []float64 {
	hp := make([]float64, len(closes))

	a := 1 - alpha1/2
	b := 1 - alpha1
	c0 := float64(a * a)
	c1 := float64(2 * b)
	c2 := float64(b * b)

	for i := 2; i < len(closes); i++ {
		diff := closes[i] - float64(2*closes[i-1]) + closes[i-2]
		hp[i] = float64(c0*diff) + float64(c1*hp[i-1]) - float64(c2*hp[i-2])
	}
	return hp
}
