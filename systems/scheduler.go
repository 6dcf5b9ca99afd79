package systems

import (
	"log/slog"
	"time"
)

// SchedulerState is the coarse state of the frame scheduler.
type SchedulerState uint8

const (
	StateStopped SchedulerState = iota
	StateRunning
	StateSuspended
)

func (s SchedulerState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSuspended:
		return "suspended"
	default:
		return "stopped"
	}
}

// SuspendReason says why a suspended scheduler is not drawing.
type SuspendReason uint8

const (
	ReasonNone SuspendReason = iota
	ReasonScrolling
	ReasonHidden
)

func (r SuspendReason) String() string {
	switch r {
	case ReasonScrolling:
		return "scrolling"
	case ReasonHidden:
		return "hidden"
	default:
		return "none"
	}
}

// SchedulerStats counts what the scheduler did with each tick.
type SchedulerStats struct {
	Accepted  uint64 // Ticks that rendered a frame
	Throttled uint64 // Ticks skipped by frame pacing
	Suspended uint64 // Ticks skipped while scrolling
}

// FrameScheduler paces frame work to a target rate on top of a FrameLoop.
//
// While scrolling (mobile only) the callback keeps being re-registered and
// each tick is a no-op. While hidden the pending callback is cancelled and
// nothing runs until the scheduler is made visible again.
type FrameScheduler struct {
	loop     *FrameLoop
	interval time.Duration
	mobile   bool
	onFrame  FrameCallback

	started   bool
	hidden    bool
	scrolling bool
	scroll    Debouncer

	lastFrame  time.Duration
	pending    FrameID
	hasPending bool

	stats SchedulerStats
}

// NewFrameScheduler creates a stopped scheduler. onFrame runs for every
// accepted tick.
func NewFrameScheduler(loop *FrameLoop, targetFPS int, mobile bool, scrollQuiet time.Duration, onFrame FrameCallback) *FrameScheduler {
	if targetFPS < 1 {
		targetFPS = 1
	}
	return &FrameScheduler{
		loop:     loop,
		interval: time.Second / time.Duration(targetFPS),
		mobile:   mobile,
		onFrame:  onFrame,
		scroll:   Debouncer{Delay: scrollQuiet},
	}
}

// Start moves Stopped to Running and runs the first tick immediately.
func (s *FrameScheduler) Start(now time.Duration) {
	if s.started {
		return
	}
	s.started = true
	s.lastFrame = now
	s.tick(now)
}

// Stop cancels the pending callback and returns to Stopped.
func (s *FrameScheduler) Stop() {
	s.cancel()
	s.started = false
	s.hidden = false
	s.scrolling = false
	s.scroll.Stop()
}

// OnScroll suspends drawing on mobile devices until the scroll quiet period
// has passed. Desktop devices ignore scrolling.
func (s *FrameScheduler) OnScroll(now time.Duration) {
	if !s.mobile {
		return
	}
	s.scrolling = true
	s.scroll.Trigger(now)
}

// Poll ends a scroll suspension once its quiet period has elapsed.
func (s *FrameScheduler) Poll(now time.Duration) {
	if s.scroll.Poll(now) {
		s.scrolling = false
	}
}

// SetHidden applies a visibility change. Hiding cancels the pending
// callback; showing resets the pacing clock to now and restarts the loop.
// Showing an already visible scheduler does nothing.
func (s *FrameScheduler) SetHidden(hidden bool, now time.Duration) {
	if !s.started || hidden == s.hidden {
		return
	}
	s.hidden = hidden
	if hidden {
		s.cancel()
		slog.Debug("frame scheduler hidden")
		return
	}
	s.lastFrame = now
	slog.Debug("frame scheduler resumed", "now_ms", now.Milliseconds())
	s.tick(now)
}

// State returns the current state and, when suspended, the reason.
// Hidden takes precedence over scrolling.
func (s *FrameScheduler) State() (SchedulerState, SuspendReason) {
	switch {
	case !s.started:
		return StateStopped, ReasonNone
	case s.hidden:
		return StateSuspended, ReasonHidden
	case s.scrolling:
		return StateSuspended, ReasonScrolling
	default:
		return StateRunning, ReasonNone
	}
}

// Interval returns the minimum time between accepted frames.
func (s *FrameScheduler) Interval() time.Duration {
	return s.interval
}

// LastFrame returns the pacing baseline.
func (s *FrameScheduler) LastFrame() time.Duration {
	return s.lastFrame
}

// Registered reports whether a frame callback is pending.
func (s *FrameScheduler) Registered() bool {
	return s.hasPending
}

// Stats returns tick counters.
func (s *FrameScheduler) Stats() SchedulerStats {
	return s.stats
}

// tick is the frame callback. It always re-registers first so a skipped
// tick keeps the loop alive.
func (s *FrameScheduler) tick(now time.Duration) {
	s.pending = s.loop.Request(s.tick)
	s.hasPending = true

	if s.scrolling {
		s.stats.Suspended++
		return
	}

	delta := now - s.lastFrame
	if delta < s.interval {
		s.stats.Throttled++
		return
	}
	// Keep the remainder so the cadence does not drift with refresh jitter
	s.lastFrame = now - delta%s.interval

	s.stats.Accepted++
	s.onFrame(now)
}

func (s *FrameScheduler) cancel() {
	if s.hasPending {
		s.loop.Cancel(s.pending)
		s.hasPending = false
	}
}
