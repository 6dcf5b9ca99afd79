package ui

import (
	"strings"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/gate"
)

const (
	gateBoxWidth  = 220
	gateBoxHeight = 48
)

// GateWidget is the raylib front end of the unlock gate.
type GateWidget struct {
	renderer *Renderer
	gate     *gate.Gate
	title    string
	locked   string // Locked content shown after the reveal
}

// NewGateWidget creates a widget for g.
func NewGateWidget(g *gate.Gate, title, locked string) *GateWidget {
	return &GateWidget{renderer: NewRenderer(), gate: g, title: title, locked: locked}
}

// bounds returns the input box centred horizontally at 60% of the height.
func (w *GateWidget) bounds(screenW, screenH int32) rl.Rectangle {
	return rl.Rectangle{
		X:      float32(screenW-gateBoxWidth) / 2,
		Y:      float32(screenH)*0.6 - gateBoxHeight/2,
		Width:  gateBoxWidth,
		Height: gateBoxHeight,
	}
}

// HandleInput forwards typed characters and backspace to the gate and
// keeps the bubble anchor on the input centre.
func (w *GateWidget) HandleInput(screenW, screenH int32, now time.Duration) {
	b := w.bounds(screenW, screenH)
	w.gate.SetAnchor(b.X+b.Width/2, b.Y+b.Height/2)

	var typed strings.Builder
	for r := rl.GetCharPressed(); r != 0; r = rl.GetCharPressed() {
		typed.WriteRune(rune(r))
	}
	if typed.Len() > 0 {
		w.gate.Input(typed.String(), now)
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		w.gate.Backspace()
	}
}

// Draw renders the input box, hint and, once revealed, the locked content.
func (w *GateWidget) Draw(screenW, screenH int32) {
	r := w.renderer
	b := w.bounds(screenW, screenH)
	b.X += w.gate.ShakeOffset()

	gui.Label(rl.Rectangle{X: b.X, Y: b.Y - 24, Width: b.Width, Height: 20}, w.title)

	// Glow halo grows with the spring
	if glow := w.gate.Glow(); glow > 0.01 {
		halo := r.Theme.Accent
		for i := int32(1); i <= 4; i++ {
			halo.A = uint8(glow * 60 / float32(i))
			spread := float32(i) * 6 * glow
			rl.DrawRectangleLinesEx(rl.Rectangle{
				X: b.X - spread, Y: b.Y - spread,
				Width: b.Width + spread*2, Height: b.Height + spread*2,
			}, 2, halo)
		}
	}

	border := r.Theme.PanelBorder
	text, kind := w.gate.Hint()
	switch kind {
	case gate.HintError:
		border = r.Theme.Error
	case gate.HintSuccess:
		border = r.Theme.Accent
	}
	rl.DrawRectangleRec(b, r.Theme.PanelBg)
	rl.DrawRectangleLinesEx(b, 2, border)

	// Typed digits
	value := w.gate.Value()
	rl.DrawText(spaced(value), int32(b.X)+16, int32(b.Y)+12, 24, r.Theme.ValueColor)

	if text != "" {
		tw := rl.MeasureText(text, r.Theme.HeaderFontSize)
		rl.DrawText(text, int32(b.X+b.Width/2)-tw/2, int32(b.Y+b.Height)+10, r.Theme.HeaderFontSize, border)
	}

	if !w.gate.Disabled() && value != "" {
		if gui.Button(rl.Rectangle{X: b.X + b.Width + 10, Y: b.Y + 10, Width: 60, Height: 28}, "Clear") {
			for range value {
				w.gate.Backspace()
			}
		}
	}

	if w.gate.Revealed() {
		tw := rl.MeasureText(w.locked, 18)
		rl.DrawText(w.locked, screenW/2-tw/2, int32(b.Y+b.Height)+40, 18, r.Theme.SectionHeader)
	}
}

// spaced separates digits for display.
func spaced(v string) string {
	return strings.Join(strings.Split(v, ""), "  ")
}
