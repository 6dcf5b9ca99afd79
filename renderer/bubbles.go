package renderer

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/components"
	"github.com/pthm-cable/backdrop/systems"
)

// BubbleRenderer draws unlock bubbles as glassy rings.
type BubbleRenderer struct {
	rim  components.RGB
	fill components.RGB
}

// NewBubbleRenderer creates a bubble renderer in the neon palette.
func NewBubbleRenderer() *BubbleRenderer {
	return &BubbleRenderer{rim: components.NeonBlue, fill: components.Purple}
}

// Draw renders every live bubble.
func (r *BubbleRenderer) Draw(bubbles *systems.BubbleSystem, now time.Duration) {
	bubbles.Each(now, func(x, y, size, alpha float32) {
		center := rl.Vector2{X: x, Y: y}
		radius := size / 2

		rl.DrawCircleV(center, radius, toColor(r.fill.WithAlpha(alpha*0.15)))
		rl.DrawCircleLinesV(center, radius, toColor(r.rim.WithAlpha(alpha*0.8)))

		// Specular highlight, upper left
		hl := rl.Vector2{X: x - radius*0.35, Y: y - radius*0.35}
		rl.DrawCircleV(hl, radius*0.18, toColor(components.RGB{R: 255, G: 255, B: 255}.WithAlpha(alpha*0.6)))
	})
}
