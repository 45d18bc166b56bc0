package service

import (
	"sync/atomic"
	"time"
)

// State is what the engine reports about itself for the probes. It becomes
// ready once the first tick has completed.
type State struct {
	ready     atomic.Bool
	startedAt time.Time

	ticks        atomic.Int64
	alerts       atomic.Int64
	lastTickUnix atomic.Int64 // unix seconds
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

// TouchTick records a finished tick.
func (s *State) TouchTick(t time.Time) {
	s.lastTickUnix.Store(t.Unix())
	s.ticks.Add(1)
	s.ready.Store(true)
}

func (s *State) LastTick() time.Time {
	u := s.lastTickUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) AlertSent()    { s.alerts.Add(1) }
func (s *State) Ticks() int64  { return s.ticks.Load() }
func (s *State) Alerts() int64 { return s.alerts.Load() }

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
