// Package renderer draws the backdrop with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/components"
)

// Background is the colour a cleared region shows.
var Background = rl.Color{R: 5, G: 6, B: 18, A: 255}

// Surface implements systems.FrameSurface on an offscreen render texture,
// so throttled ticks keep showing the last accepted frame.
// Create it after the raylib window exists.
type Surface struct {
	Background rl.Color

	target        rl.RenderTexture2D
	width, height int32
}

// NewSurface creates a surface of the given size.
func NewSurface(width, height int32) *Surface {
	s := &Surface{Background: Background}
	s.Resize(width, height)
	return s
}

// Resize reallocates the render texture when the size changes.
func (s *Surface) Resize(width, height int32) {
	if width == s.width && height == s.height && s.target.ID != 0 {
		return
	}
	if s.target.ID != 0 {
		rl.UnloadRenderTexture(s.target)
	}
	s.width, s.height = max(width, 1), max(height, 1)
	s.target = rl.LoadRenderTexture(s.width, s.height)

	rl.BeginTextureMode(s.target)
	rl.ClearBackground(s.Background)
	rl.EndTextureMode()
}

// BeginFrame redirects drawing into the render texture.
func (s *Surface) BeginFrame() {
	rl.BeginTextureMode(s.target)
}

// EndFrame restores drawing to the window.
func (s *Surface) EndFrame() {
	rl.EndTextureMode()
}

// Blit draws the last frame to the window origin.
func (s *Surface) Blit() {
	s.BlitAt(0, 0)
}

// BlitAt draws the last frame with its top-left corner at x, y. Render
// textures are stored upside down, hence the negative source height.
func (s *Surface) BlitAt(x, y float32) {
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(s.width), Height: -float32(s.height)}
	dst := rl.Rectangle{X: x, Y: y, Width: float32(s.width), Height: float32(s.height)}
	rl.DrawTexturePro(s.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees the render texture.
func (s *Surface) Unload() {
	if s.target.ID != 0 {
		rl.UnloadRenderTexture(s.target)
		s.target = rl.RenderTexture2D{}
	}
}

// Clear paints the region with the background colour.
func (s *Surface) Clear(x, y, w, h float32) {
	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: w, Height: h}, s.Background)
}

// FillCircle draws a filled circle.
func (s *Surface) FillCircle(x, y, radius float32, c components.RGBA) {
	rl.DrawCircleV(rl.Vector2{X: x, Y: y}, radius, toColor(c))
}

// StrokeLine draws a line segment of the given width.
func (s *Surface) StrokeLine(x1, y1, x2, y2, width float32, c components.RGBA) {
	rl.DrawLineEx(rl.Vector2{X: x1, Y: y1}, rl.Vector2{X: x2, Y: y2}, width, toColor(c))
}

func toColor(c components.RGBA) rl.Color {
	a := c.A
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return rl.Color{R: c.R, G: c.G, B: c.B, A: uint8(a*255 + 0.5)}
}
