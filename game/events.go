package game

// Event is a host notification dispatched into the controller.
type Event interface {
	event()
}

// ResizeEvent reports that the host window size may have changed.
type ResizeEvent struct{}

// ScrollEvent reports page scrolling.
type ScrollEvent struct{}

// PointerMoveEvent reports the pointer position in pixels.
type PointerMoveEvent struct {
	X, Y float32
}

// PointerLeaveEvent reports that the pointer left the window.
type PointerLeaveEvent struct{}

// VisibilityEvent reports the page being hidden or shown.
type VisibilityEvent struct {
	Hidden bool
}

func (ResizeEvent) event()       {}
func (ScrollEvent) event()       {}
func (PointerMoveEvent) event()  {}
func (PointerLeaveEvent) event() {}
func (VisibilityEvent) event()   {}
