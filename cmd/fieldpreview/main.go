// Field preview tool - live particle field with tuning sliders.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/renderer"
	"github.com/pthm-cable/backdrop/systems"
)

const (
	windowWidth   = 1100
	windowHeight  = 600
	previewWidth  = 720
	previewHeight = 560
	panelWidth    = windowWidth - previewWidth - 30
)

// FieldParams holds the tunable field parameters.
type FieldParams struct {
	Divisor     float32
	MaxDistance float32
	Cap         float32
	FPS         float32
}

func defaultParams(cfg *config.Config) FieldParams {
	return FieldParams{
		Divisor:     float32(cfg.Field.DensityDivisor),
		MaxDistance: float32(cfg.Connections.MaxDistance),
		Cap:         float32(cfg.Field.DesktopCap),
		FPS:         float32(cfg.Frames.DesktopFPS),
	}
}

// preview is a field, its links and a scheduler rebuilt whenever the
// parameters change.
type preview struct {
	cfg         *config.Config
	surface     *renderer.Surface
	rng         *rand.Rand
	loop        *systems.FrameLoop
	field       *systems.ParticleField
	connections *systems.ConnectionRenderer
	scheduler   *systems.FrameScheduler
	links       int
}

func (p *preview) rebuild(params FieldParams, now time.Duration) {
	policy := systems.DensityPolicy{
		Divisor:    float64(params.Divisor),
		MobileCap:  p.cfg.Field.MobileCap,
		TabletCap:  p.cfg.Field.TabletCap,
		DesktopCap: int(params.Cap),
	}
	vp := systems.Viewport{W: previewWidth, H: previewHeight}

	p.field = systems.NewParticleField(policy, p.rng)
	p.field.Seed(vp, systems.ClassDesktop)
	p.connections = systems.NewConnectionRenderer(params.MaxDistance, p.cfg.Derived.LineWidth32, p.cfg.Derived.MaxAlpha32)
	p.connections.Resize(vp)

	if p.scheduler != nil {
		p.scheduler.Stop()
	}
	p.loop = &systems.FrameLoop{}
	p.scheduler = systems.NewFrameScheduler(p.loop, int(params.FPS), false, 0, p.frame)
	p.scheduler.Start(now)
}

func (p *preview) frame(now time.Duration) {
	vp := p.field.Viewport()
	p.surface.BeginFrame()
	p.surface.Clear(0, 0, vp.W, vp.H)
	p.field.Step(p.surface)
	p.links = p.connections.Render(p.field.Particles, p.surface)
	p.surface.EndFrame()
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	rl.InitWindow(windowWidth, windowHeight, "Particle Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.RefreshFPS))

	surface := renderer.NewSurface(previewWidth, previewHeight)
	defer surface.Unload()

	params := defaultParams(cfg)
	p := &preview{cfg: cfg, surface: surface, rng: rand.New(rand.NewSource(12345))}
	start := time.Now()
	p.rebuild(params, 0)

	for !rl.WindowShouldClose() {
		now := time.Since(start)
		p.loop.Pump(now)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		surface.BlitAt(10, 20)
		rl.DrawRectangleLines(10, 20, previewWidth, previewHeight, rl.DarkGray)

		// Control panel
		panelX := float32(previewWidth + 20)
		panelY := float32(20)

		rl.DrawText("Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		next := params
		next.Divisor, panelY = slider(panelX, panelY, "Density divisor (px^2 per particle)", "%.0f", params.Divisor, 5000, 60000)
		next.Cap, panelY = slider(panelX, panelY, "Particle cap", "%.0f", params.Cap, 5, 300)
		next.MaxDistance, panelY = slider(panelX, panelY, "Max link distance", "%.0f", params.MaxDistance, 20, 250)
		next.FPS, panelY = slider(panelX, panelY, "Target fps", "%.0f", params.FPS, 5, 60)

		// Integer parameters only change in whole steps
		next.Cap = float32(int(next.Cap))
		next.FPS = float32(int(next.FPS))
		if next != params {
			params = next
			p.rebuild(params, now)
		}

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		stats := p.scheduler.Stats()
		rl.DrawText(fmt.Sprintf("Particles: %d  Links: %d", p.field.Count(), p.links), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 20
		rl.DrawText(fmt.Sprintf("Accepted: %d  Throttled: %d", stats.Accepted, stats.Throttled), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 35

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reseed") {
			p.rebuild(params, now)
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams(cfg)
			p.rebuild(params, now)
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bar and returns its value and the next row.
func slider(x, y float32, label, format string, value, lo, hi float32) (float32, float32) {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf("%.0f", lo), fmt.Sprintf("%.0f", hi),
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.DarkGray)
	return v, y + 35
}
