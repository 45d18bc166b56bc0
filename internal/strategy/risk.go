package strategy

import (
	"fmt"

	"signal_bot/internal/models"
)

// Percentages applied to the reference price; sell alerts use the negated
// pair so take-profit sits below entry and stop-loss above it.
const (
	BuyTakeProfitPct  = 2.0
	BuyStopLossPct    = 1.0
	SellTakeProfitPct = -2.0
	SellStopLossPct   = -1.0
)

// RiskLevels derives take-profit and stop-loss from an entry price. Signs are
// not validated; the caller passes percentages matching the alert direction.
func RiskLevels(entry, takeProfitPct, stopLossPct float64) models.RiskLevels {
	tp := entry * (1 + takeProfitPct/100)
	sl := entry * (1 - stopLossPct/100)
	return models.RiskLevels{
		TakeProfit: fmt.Sprintf("%.6f", tp),
		StopLoss:   fmt.Sprintf("%.6f", sl),
	}
}
