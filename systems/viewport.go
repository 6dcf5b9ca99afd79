package systems

import "time"

// SizeSource reports the current host window size in pixels.
type SizeSource interface {
	Size() (width, height int)
}

// ViewportManager tracks the surface size and reseeds after resizes settle.
type ViewportManager struct {
	host     SizeSource
	viewport Viewport
	resize   Debouncer
	onSettle func(vp Viewport)
}

// NewViewportManager creates a manager that calls onSettle with the new
// viewport once resizing has been quiet for delay.
func NewViewportManager(host SizeSource, delay time.Duration, onSettle func(vp Viewport)) *ViewportManager {
	return &ViewportManager{
		host:     host,
		resize:   Debouncer{Delay: delay},
		onSettle: onSettle,
	}
}

// InitialSize reads the host size synchronously. It does not call onSettle.
func (m *ViewportManager) InitialSize() Viewport {
	m.viewport = m.query()
	return m.viewport
}

// OnResize restarts the settle timer.
func (m *ViewportManager) OnResize(now time.Duration) {
	m.resize.Trigger(now)
}

// Poll applies a settled resize. Reports whether onSettle ran.
func (m *ViewportManager) Poll(now time.Duration) bool {
	if !m.resize.Poll(now) {
		return false
	}
	m.viewport = m.query()
	if m.onSettle != nil {
		m.onSettle(m.viewport)
	}
	return true
}

// Viewport returns the current viewport.
func (m *ViewportManager) Viewport() Viewport {
	return m.viewport
}

// Pending reports whether a resize is waiting to settle.
func (m *ViewportManager) Pending() bool {
	return m.resize.Pending()
}

func (m *ViewportManager) query() Viewport {
	w, h := m.host.Size()
	return Viewport{W: float32(max(w, 0)), H: float32(max(h, 0))}
}
