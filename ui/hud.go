package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/systems"
	"github.com/pthm-cable/backdrop/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Particles int
	Links     int
	Class     systems.DeviceClass
	State     systems.SchedulerState
	Reason    systems.SuspendReason
	TargetFPS int
	FPS       int32
	Stats     systems.SchedulerStats
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	theme := h.renderer.Theme
	rl.DrawText(data.Title, 10, 10, 20, theme.Accent)

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Links: %d | Device: %s", data.Particles, data.Links, data.Class),
		10, 35, 16, theme.LabelColor,
	)
	rl.DrawText(
		fmt.Sprintf("Target: %d fps | Refresh: %d fps | Frames: %d | Throttled: %d",
			data.TargetFPS, data.FPS, data.Stats.Accepted, data.Stats.Throttled),
		10, 55, 16, theme.LabelColor,
	)

	status := data.State.String()
	if data.State == systems.StateSuspended {
		status = fmt.Sprintf("%s (%s)", status, data.Reason)
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	Stats    telemetry.PerfStats
	Registry *systems.SystemRegistry
}

// PerfPanel renders the frame phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel in registry order.
func (p *PerfPanel) Draw(data PerfPanelData) {
	r := p.renderer
	pad := r.Theme.Padding
	ids := data.Registry.IDs()
	height := pad*2 + r.Theme.LineHeight*int32(len(ids)+3)

	r.DrawPanel(p.x, p.y, p.width, height)
	y := r.DrawSectionHeader(p.x+pad, p.y+pad, "Frame Performance")
	y = r.DrawLabelValue(p.x+pad, y, "avg frame", data.Stats.AvgTickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(p.x+pad, y, "max frame", data.Stats.MaxTickDuration.Round(time.Microsecond).String())

	for _, id := range ids {
		y = r.DrawBar(p.x+pad, y, data.Registry.GetName(id), data.Stats.PhasePct[id], p.width-pad*2)
	}
}
