package components

// Position represents a point on the drawing surface, in pixels.
type Position struct {
	X, Y float32
}

// Velocity represents a per-frame displacement, in pixels.
type Velocity struct {
	X, Y float32
}
