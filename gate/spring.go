package gate

import "github.com/charmbracelet/harmonica"

// spring is a single damped value animated toward a target once per frame.
type spring struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

func newSpring(fps int, frequency, damping float64) spring {
	return spring{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

func (s *spring) step() float64 {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	return s.pos
}

// kick adds velocity without moving the target.
func (s *spring) kick(v float64) {
	s.vel += v
}

// settled reports whether the spring has come to rest at its target.
func (s *spring) settled() bool {
	const eps = 1e-3
	d := s.pos - s.target
	return d < eps && d > -eps && s.vel < eps && s.vel > -eps
}

func (s *spring) snap(v float64) {
	s.pos, s.vel, s.target = v, 0, v
}
