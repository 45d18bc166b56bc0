package models

// Side is the per-bar classification: "BUY"/"SELL" or empty for neutral.
type Side string

const (
	SideNone Side = ""
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

func (s Side) String() string {
	if s == SideNone {
		return "NEUTRAL"
	}
	return string(s)
}

// Transition is emitted by the state store when a direction becomes active.
type Transition string

const (
	EnteredBuy  Transition = "ENTERED_BUY"
	EnteredSell Transition = "ENTERED_SELL"
)

// SignalState is the debounce slot kept per symbol.
type SignalState struct {
	BuyActive  bool
	SellActive bool
}

// RiskLevels holds take-profit / stop-loss already formatted with 6 decimals.
type RiskLevels struct {
	TakeProfit string
	StopLoss   string
}

// Alert is what gets delivered (and journaled) for a transition.
type Alert struct {
	Symbol     string     `json:"symbol"`
	Interval   string     `json:"interval"`
	Transition Transition `json:"transition"`
	Price      float64    `json:"price"`
	TakeProfit string     `json:"take_profit"`
	StopLoss   string     `json:"stop_loss"`
	Oscillator float64    `json:"q1"`
}
