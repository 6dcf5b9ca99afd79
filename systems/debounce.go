package systems

import "time"

// Debouncer collapses a burst of triggers into one firing, Delay after the
// last trigger. It is polled from the host loop rather than owning a timer.
type Debouncer struct {
	Delay    time.Duration
	deadline time.Duration
	armed    bool
}

// Trigger (re)starts the quiet period at now.
func (d *Debouncer) Trigger(now time.Duration) {
	d.deadline = now + d.Delay
	d.armed = true
}

// Poll reports true exactly once when the quiet period has elapsed.
func (d *Debouncer) Poll(now time.Duration) bool {
	if !d.armed || now < d.deadline {
		return false
	}
	d.armed = false
	return true
}

// Pending reports whether a firing is outstanding.
func (d *Debouncer) Pending() bool {
	return d.armed
}

// Stop disarms the debouncer without firing.
func (d *Debouncer) Stop() {
	d.armed = false
}
