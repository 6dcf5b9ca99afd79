package systems

import "time"

// FrameID identifies a pending frame callback.
type FrameID uint64

// FrameCallback receives the host timestamp of the frame.
type FrameCallback func(now time.Duration)

type frameRequest struct {
	id FrameID
	cb FrameCallback
}

// FrameLoop is the host's per-frame callback primitive. Callbacks requested
// before a Pump run during it; callbacks requested while pumping wait for the
// next Pump, so one frame never runs a callback twice.
type FrameLoop struct {
	next    FrameID
	queue   []frameRequest
	running []frameRequest
}

// Request registers cb for the next frame.
func (l *FrameLoop) Request(cb FrameCallback) FrameID {
	l.next++
	l.queue = append(l.queue, frameRequest{id: l.next, cb: cb})
	return l.next
}

// Cancel drops a pending callback. Unknown or already-run IDs are ignored.
func (l *FrameLoop) Cancel(id FrameID) {
	for i := range l.queue {
		if l.queue[i].id == id {
			l.queue = append(l.queue[:i], l.queue[i+1:]...)
			return
		}
	}
	// Cancelling a later callback of the frame being pumped
	for i := range l.running {
		if l.running[i].id == id {
			l.running[i].cb = nil
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next frame.
func (l *FrameLoop) Pending() int {
	return len(l.queue)
}

// Pump runs the callbacks registered before the call. Returns how many ran.
func (l *FrameLoop) Pump(now time.Duration) int {
	if len(l.queue) == 0 {
		return 0
	}
	l.running, l.queue = l.queue, l.running[:0]

	ran := 0
	for i := range l.running {
		if cb := l.running[i].cb; cb != nil {
			l.running[i].cb = nil
			cb(now)
			ran++
		}
	}
	l.running = l.running[:0]
	return ran
}
