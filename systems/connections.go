package systems

import (
	"math"

	"github.com/pthm-cable/backdrop/components"
)

// ConnectionRenderer draws faint links between particles closer than
// MaxDistance. Cost is O(n^2) in the brute-force pass, which is what
// bounds the field caps.
type ConnectionRenderer struct {
	MaxDistance float32
	LineWidth   float32
	MaxAlpha    float32 // Alpha of a zero-length link; falls off linearly
	Color       components.RGB

	grid      *SpatialGrid // nil = brute force
	useGrid   bool
	neighbors []int32 // reused query buffer
}

// NewConnectionRenderer creates a brute-force renderer.
func NewConnectionRenderer(maxDistance, lineWidth, maxAlpha float32) *ConnectionRenderer {
	return &ConnectionRenderer{
		MaxDistance: maxDistance,
		LineWidth:   lineWidth,
		MaxAlpha:    maxAlpha,
		Color:       components.NeonBlue,
	}
}

// UseGrid switches between the brute-force pass and the grid broad phase.
// Both draw the same set of links.
func (r *ConnectionRenderer) UseGrid(enabled bool) {
	r.useGrid = enabled
	if !enabled {
		r.grid = nil
	}
}

// Resize rebuilds the broad-phase grid for a new viewport.
func (r *ConnectionRenderer) Resize(vp Viewport) {
	if !r.useGrid {
		return
	}
	if r.grid == nil || !r.grid.Covers(vp.W, vp.H, r.MaxDistance) {
		r.grid = NewSpatialGrid(vp.W, vp.H, r.MaxDistance)
	}
}

// Render draws a link for every unordered pair closer than MaxDistance.
// Returns the number of links drawn.
func (r *ConnectionRenderer) Render(particles []components.Particle, s Surface) int {
	if r.useGrid && r.grid != nil {
		return r.renderGrid(particles, s)
	}

	drawn := 0
	for i := range particles {
		p1 := &particles[i]
		for j := i + 1; j < len(particles); j++ {
			if r.link(p1, &particles[j], s) {
				drawn++
			}
		}
	}
	return drawn
}

// renderGrid visits each unordered pair at most once: candidates come from
// the 3x3 cell block, and only indices above i are considered.
func (r *ConnectionRenderer) renderGrid(particles []components.Particle, s Surface) int {
	r.grid.Clear()
	for i := range particles {
		r.grid.Insert(int32(i), particles[i].Position.X, particles[i].Position.Y)
	}

	drawn := 0
	for i := range particles {
		p1 := &particles[i]
		r.neighbors = r.grid.NeighborsInto(r.neighbors[:0], p1.Position.X, p1.Position.Y)
		for _, j := range r.neighbors {
			if int(j) <= i {
				continue
			}
			if r.link(p1, &particles[j], s) {
				drawn++
			}
		}
	}
	return drawn
}

// link strokes a line between p1 and p2 if they are strictly closer than
// MaxDistance. The axis test rejects most pairs before any multiply.
func (r *ConnectionRenderer) link(p1, p2 *components.Particle, s Surface) bool {
	d := r.MaxDistance
	dx := p1.Position.X - p2.Position.X
	dy := p1.Position.Y - p2.Position.Y

	if abs32(dx) > d || abs32(dy) > d {
		return false
	}

	distSq := dx*dx + dy*dy
	if distSq >= d*d {
		return false
	}

	dist := float32(math.Sqrt(float64(distSq)))
	alpha := (1 - dist/d) * r.MaxAlpha
	s.StrokeLine(p1.Position.X, p1.Position.Y, p2.Position.X, p2.Position.Y, r.LineWidth, r.Color.WithAlpha(alpha))
	return true
}
