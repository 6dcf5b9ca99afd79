package systems

import "github.com/pthm-cable/backdrop/components"

// Surface is the drawing contract the engine renders through.
// Coordinates are pixels with the origin at the top-left corner.
type Surface interface {
	Clear(x, y, w, h float32)
	FillCircle(x, y, radius float32, c components.RGBA)
	StrokeLine(x1, y1, x2, y2, width float32, c components.RGBA)
}

// FrameSurface is a Surface that needs its frame work bracketed, such as
// one drawing into an offscreen target.
type FrameSurface interface {
	Surface
	BeginFrame()
	EndFrame()
}

// NullSurface discards drawing but counts calls. Used by headless runs.
type NullSurface struct {
	Clears  int
	Circles int
	Lines   int
}

func (s *NullSurface) Clear(x, y, w, h float32) { s.Clears++ }

func (s *NullSurface) FillCircle(x, y, radius float32, c components.RGBA) { s.Circles++ }

func (s *NullSurface) StrokeLine(x1, y1, x2, y2, width float32, c components.RGBA) { s.Lines++ }

// Reset zeroes the counters.
func (s *NullSurface) Reset() {
	*s = NullSurface{}
}
