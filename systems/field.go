package systems

import (
	"math/rand"

	"github.com/pthm-cable/backdrop/components"
)

// Viewport is the size of the drawing surface in pixels.
type Viewport struct {
	W, H float32
}

// Area returns W*H in float64 to keep large screens exact.
func (v Viewport) Area() float64 {
	return float64(v.W) * float64(v.H)
}

// ParticleField owns the particle collection and its density policy.
type ParticleField struct {
	Particles []components.Particle

	viewport Viewport
	class    DeviceClass
	policy   DensityPolicy
	rng      *rand.Rand
}

// NewParticleField creates an empty field. Call Seed before Step.
func NewParticleField(policy DensityPolicy, rng *rand.Rand) *ParticleField {
	return &ParticleField{policy: policy, rng: rng}
}

// Seed replaces the whole collection with freshly reset particles sized
// for vp and class. Returns the new particle count.
func (f *ParticleField) Seed(vp Viewport, class DeviceClass) int {
	f.viewport = vp
	f.class = class

	count := f.policy.Count(vp, class)
	f.Particles = make([]components.Particle, count)
	for i := range f.Particles {
		ResetParticle(&f.Particles[i], vp, f.rng)
	}
	return count
}

// Step advances every particle, then renders every particle.
// Updates complete before any draw so later passes see consistent positions.
func (f *ParticleField) Step(s Surface) {
	for i := range f.Particles {
		AdvanceParticle(&f.Particles[i], f.viewport)
	}
	for i := range f.Particles {
		RenderParticle(&f.Particles[i], s)
	}
}

// Count returns the current number of particles.
func (f *ParticleField) Count() int {
	return len(f.Particles)
}

// Viewport returns the viewport of the last seed.
func (f *ParticleField) Viewport() Viewport {
	return f.viewport
}

// Class returns the device class of the last seed.
func (f *ParticleField) Class() DeviceClass {
	return f.class
}

// Policy returns the density policy.
func (f *ParticleField) Policy() DensityPolicy {
	return f.policy
}

// SetPolicy replaces the density policy. Takes effect on the next Seed.
func (f *ParticleField) SetPolicy(p DensityPolicy) {
	f.policy = p
}
