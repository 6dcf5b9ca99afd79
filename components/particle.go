// Package components defines the plain data types shared by the systems.
package components

// Particle is a single drifting point-mass of the background field.
// Everything except Position is fixed when the particle is reset.
type Particle struct {
	Position Position
	Velocity Velocity
	Radius   float32
	Color    RGB
	Opacity  float32
}

// Pointer records the last known cursor position.
// Reserved hook: recorded on desktop devices, not consumed by any effect.
type Pointer struct {
	X, Y    float32
	Present bool
	Radius  float32
}
