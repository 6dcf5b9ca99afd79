package components

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// RGBA is a color with a straight (non-premultiplied) alpha in [0, 1].
type RGBA struct {
	R, G, B uint8
	A       float32
}

// WithAlpha returns c at the given alpha, clamped to [0, 1].
func (c RGB) WithAlpha(a float32) RGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return RGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// Palette colors.
var (
	NeonBlue = RGB{R: 0, G: 242, B: 255}
	Purple   = RGB{R: 124, G: 58, B: 237}
)

// ParticlePalette is the fixed set particles pick their color from.
var ParticlePalette = [...]RGB{NeonBlue, Purple}
