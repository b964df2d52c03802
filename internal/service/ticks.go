package service

import (
	"context"
	"sync"
	"time"
)

// DefaultTickPeriod is the nominal cadence of the periodic event source.
const DefaultTickPeriod = time.Second

const secondsPerMinute = 60

// TickEvent is what the main loop takes from the tick source: how many
// ticks arrived since the last take and which derived flags they raised.
type TickEvent struct {
	Ticks             int
	DisplayRefreshDue bool
	MinuteElapsed     bool
}

// TickSource is the periodic event source. It owns the second counter;
// the session's inactivity counter is separate and fed from Ticks.
type TickSource struct {
	mu      sync.Mutex
	seconds int
	pending TickEvent
	notify  chan struct{}
}

func NewTickSource() *TickSource {
	return &TickSource{notify: make(chan struct{}, 1)}
}

// C signals that at least one tick is waiting to be taken.
func (s *TickSource) C() <-chan struct{} { return s.notify }

// Fire records one tick. It only touches the source's own counters and
// never blocks.
func (s *TickSource) Fire() {
	s.mu.Lock()
	s.seconds++
	s.pending.Ticks++
	s.pending.DisplayRefreshDue = true
	if s.seconds == secondsPerMinute {
		s.pending.MinuteElapsed = true
		s.seconds = 0
	}
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Take returns and clears the accumulated tick state.
func (s *TickSource) Take() TickEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := s.pending
	s.pending = TickEvent{}
	return ev
}

// Seconds reports the position within the current minute.
func (s *TickSource) Seconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seconds
}

// Run fires at the given period until ctx is canceled.
func (s *TickSource) Run(ctx context.Context, period time.Duration) {
	if period <= 0 {
		period = DefaultTickPeriod
	}
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Fire()
		}
	}
}
