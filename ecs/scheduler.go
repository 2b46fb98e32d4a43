package ecs

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTickPeriod is the simulation step interval.
const DefaultTickPeriod = 50 * time.Millisecond

// Ticker delivers tick times on a channel until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every period.
type TickerFunc func(period time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop() { t.t.Stop() }

// NewTimeTicker is the wall-clock TickerFunc.
func NewTimeTicker(period time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(period)}
}

type tickRun struct {
	period time.Duration
	stop   chan struct{}
	done   chan struct{}
}

// TickScheduler runs a callback at a fixed period. It is either Idle or
// Running; at most one timer is active at any time.
type TickScheduler struct {
	newTicker TickerFunc
	mu        sync.Mutex
	run       *tickRun
	ticks     atomic.Uint64
}

// NewTickScheduler creates an idle scheduler. A nil newTicker uses NewTimeTicker.
func NewTickScheduler(newTicker TickerFunc) *TickScheduler {
	if newTicker == nil {
		newTicker = NewTimeTicker
	}
	return &TickScheduler{newTicker: newTicker}
}

// Start cancels any running timer and begins invoking callback every period.
// A non-positive period uses DefaultTickPeriod. Each invocation completes
// before the next one can begin.
func (s *TickScheduler) Start(callback func(), period time.Duration) {
	if s == nil || callback == nil {
		return
	}
	if period <= 0 {
		period = DefaultTickPeriod
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	run := &tickRun{
		period: period,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	s.run = run
	go s.loop(run, s.newTicker(period), callback)
}

// Stop cancels the active timer and waits for an in-flight callback to
// return. It is a no-op when idle. Stop must not be called from the callback.
func (s *TickScheduler) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Running reports whether a timer is active.
func (s *TickScheduler) Running() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run != nil
}

// Period returns the active period, or 0 when idle.
func (s *TickScheduler) Period() time.Duration {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == nil {
		return 0
	}
	return s.run.period
}

// Ticks counts completed callback invocations across all runs.
func (s *TickScheduler) Ticks() uint64 {
	if s == nil {
		return 0
	}
	return s.ticks.Load()
}

func (s *TickScheduler) stopLocked() {
	if s.run == nil {
		return
	}
	close(s.run.stop)
	<-s.run.done
	s.run = nil
}

func (s *TickScheduler) loop(run *tickRun, t Ticker, callback func()) {
	defer close(run.done)
	defer t.Stop()

	for {
		select {
		case <-run.stop:
			return
		case <-t.C():
			// a stop racing a tick wins
			select {
			case <-run.stop:
				return
			default:
			}
			callback()
			s.ticks.Add(1)
		}
	}
}
