package helper

import (
	"strings"
)

const quoteAsset = "USDT"

// BaseAsset returns the part of a pair before the first "USDT": BTCUSDT -> BTC.
// Pairs without USDT are returned unchanged.
func BaseAsset(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if i := strings.Index(s, quoteAsset); i >= 0 {
		return s[:i]
	}
	return s
}

// NormInterval maps shorthand timeframes onto CoinEx kline tokens.
func NormInterval(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	switch s {
	case "1m":
		return "1min"
	case "5m":
		return "5min"
	case "15m":
		return "15min"
	case "30m":
		return "30min"
	case "60m", "1h":
		return "1hour"
	case "4h":
		return "4hour"
	case "1d":
		return "1day"
	default:
		return s
	}
}
