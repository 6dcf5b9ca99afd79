package game

// Host answers the environment queries the controller makes.
type Host interface {
	// Size returns the drawing surface size in pixels.
	Size() (width, height int)
	// UserAgent returns the client identification string used to detect
	// mobile devices. Empty when unknown.
	UserAgent() string
}

// StaticHost is a fixed-size host.
type StaticHost struct {
	Width, Height int
	Agent         string
}

func (h *StaticHost) Size() (int, int) { return h.Width, h.Height }

func (h *StaticHost) UserAgent() string { return h.Agent }
