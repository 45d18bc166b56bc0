package exchange

import "fmt"

const (
	SourceCandles = "candles"
	SourcePrice   = "price"
)

// FetchError wraps any transport, status or decoding failure from an upstream
// market endpoint. It is recoverable: the symbol is skipped for this tick.
type FetchError struct {
	Source string
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s for %s: %v", e.Source, e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
