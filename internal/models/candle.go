package models

// Candle is one kline record; only the fields the pipeline consumes are kept.
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// Closes returns the close prices in series order.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}
