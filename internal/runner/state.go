package runner

import (
	"sync"

	"signal_bot/internal/models"
)

// StateStore holds the per-symbol debounce slots. It lives as long as the
// process; nothing is persisted, so a restart may re-emit an alert for a
// condition that was already active.
type StateStore struct {
	mu    sync.Mutex
	slots map[string]*stateSlot
}

type stateSlot struct {
	mu    sync.Mutex
	state models.SignalState
}

func NewStateStore() *StateStore {
	return &StateStore{slots: make(map[string]*stateSlot)}
}

func (s *StateStore) slot(symbol string) *stateSlot {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.slots[symbol]
	if !ok {
		sl = &stateSlot{}
		s.slots[symbol] = sl
	}
	return sl
}

// Decide applies the edge-triggered rule for the latest classification of
// symbol and reports a transition when a direction becomes active. Buy and
// sell are never active together.
func (s *StateStore) Decide(symbol string, side models.Side) (models.Transition, bool) {
	sl := s.slot(symbol)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	switch {
	case side == models.SideBuy && !sl.state.BuyActive:
		sl.state = models.SignalState{BuyActive: true}
		return models.EnteredBuy, true
	case side == models.SideSell && !sl.state.SellActive:
		sl.state = models.SignalState{SellActive: true}
		return models.EnteredSell, true
	default:
		return "", false
	}
}

// State returns a copy of the slot for symbol and whether it exists yet.
func (s *StateStore) State(symbol string) (models.SignalState, bool) {
	s.mu.Lock()
	sl, ok := s.slots[symbol]
	s.mu.Unlock()
	if !ok {
		return models.SignalState{}, false
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.state, true
}

// Len is the number of symbols observed so far.
func (s *StateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}
