package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/backdrop/components"
)

// Particle ranges. Each range is [min, min+span).
const (
	particleMinRadius   = 0.5
	particleRadiusSpan  = 2.0
	particleMaxSpeed    = 0.1 // Per-axis velocity lies in [-max, max)
	particleMinOpacity  = 0.1
	particleOpacitySpan = 0.4
)

// ResetParticle re-initializes p with a random position inside vp and
// fresh random radius, velocity, opacity and palette color.
func ResetParticle(p *components.Particle, vp Viewport, rng *rand.Rand) {
	p.Position = components.Position{
		X: wrapAxis(rng.Float32()*vp.W, vp.W),
		Y: wrapAxis(rng.Float32()*vp.H, vp.H),
	}
	p.Radius = rng.Float32()*particleRadiusSpan + particleMinRadius
	p.Velocity = components.Velocity{
		X: (rng.Float32() - 0.5) * 2 * particleMaxSpeed,
		Y: (rng.Float32() - 0.5) * 2 * particleMaxSpeed,
	}
	p.Opacity = rng.Float32()*particleOpacitySpan + particleMinOpacity
	p.Color = components.ParticlePalette[rng.Intn(len(components.ParticlePalette))]
}

// AdvanceParticle moves p by its velocity on a torus of size vp.
func AdvanceParticle(p *components.Particle, vp Viewport) {
	p.Position.X = wrapAxis(p.Position.X+p.Velocity.X, vp.W)
	p.Position.Y = wrapAxis(p.Position.Y+p.Velocity.Y, vp.H)
}

// RenderParticle draws p as a filled circle at its own opacity.
func RenderParticle(p *components.Particle, s Surface) {
	s.FillCircle(p.Position.X, p.Position.Y, p.Radius, p.Color.WithAlpha(p.Opacity))
}

// wrapAxis maps v into [0, extent). A non-positive extent pins the axis to 0.
func wrapAxis(v, extent float32) float32 {
	if extent <= 0 {
		return 0
	}
	if v < 0 {
		v += extent
	} else if v >= extent {
		v -= extent
	}
	// Velocities are tiny, so this only runs for rounding at the edge
	// (-1e-9 + w == w in float32) or a position far outside the torus.
	if v < 0 || v >= extent {
		v = float32(math.Mod(float64(v), float64(extent)))
		if v < 0 {
			v += extent
		}
		if v >= extent {
			v = 0
		}
	}
	return v
}
