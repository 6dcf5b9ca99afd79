// Package ui draws the raylib overlays: the HUD, the perf panel and the
// unlock gate.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Accent         rl.Color // Neon blue
	Error          rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 10, G: 12, B: 28, A: 220},
		PanelBorder:    rl.Color{R: 40, G: 60, B: 90, A: 255},
		SectionHeader:  rl.Color{R: 0, G: 242, B: 255, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 30, G: 30, B: 45, A: 255},
		BarFill:        rl.Color{R: 124, G: 58, B: 237, A: 255},
		Accent:         rl.Color{R: 0, G: 240, B: 255, A: 255},
		Error:          rl.Color{R: 255, G: 80, B: 110, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
