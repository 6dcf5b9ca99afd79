package systems

import "github.com/pthm-cable/backdrop/components"

type drawKind uint8

const (
	drawClear drawKind = iota
	drawCircle
	drawLine
)

type drawCall struct {
	kind           drawKind
	x1, y1, x2, y2 float32
	size           float32 // radius or line width
	color          components.RGBA
}

// recordingSurface captures draw calls in order.
type recordingSurface struct {
	calls []drawCall
}

func (s *recordingSurface) Clear(x, y, w, h float32) {
	s.calls = append(s.calls, drawCall{kind: drawClear, x1: x, y1: y, x2: w, y2: h})
}

func (s *recordingSurface) FillCircle(x, y, radius float32, c components.RGBA) {
	s.calls = append(s.calls, drawCall{kind: drawCircle, x1: x, y1: y, size: radius, color: c})
}

func (s *recordingSurface) StrokeLine(x1, y1, x2, y2, width float32, c components.RGBA) {
	s.calls = append(s.calls, drawCall{kind: drawLine, x1: x1, y1: y1, x2: x2, y2: y2, size: width, color: c})
}

func (s *recordingSurface) count(kind drawKind) int {
	n := 0
	for _, c := range s.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}
