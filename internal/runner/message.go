package runner

import (
	"fmt"
	"strings"

	"signal_bot/internal/models"
)

// FormatAlert renders the Telegram (Markdown) text for an alert.
func FormatAlert(a models.Alert) string {
	if a.Transition == models.EnteredSell {
		return fmt.Sprintf(
			"🔴 *Sell Signal (%s)* 🔴\n"+
				"🔹 Sell Price: %.6f USD\n"+
				"🔹 Take Profit: %s USD\n"+
				"🔹 Stop Loss: %s USD",
			a.Symbol, a.Price, a.TakeProfit, a.StopLoss,
		)
	}
	return fmt.Sprintf(
		"🔵 *Buy Signal (%s)* 🔵\n"+
			"🔹 Entry Price: %.6f USD\n"+
			"🔹 Take Profit: %s USD\n"+
			"🔹 Stop Loss: %s USD",
		a.Symbol, a.Price, a.TakeProfit, a.StopLoss,
	)
}

func formatStartup(symbols []string, interval string, every fmt.Stringer) string {
	return fmt.Sprintf("📈 Signal monitoring started\n• Symbols: %s\n• Candles: %s\n• Every: %s",
		strings.Join(symbols, ", "), interval, every)
}
