package game

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/renderer"
	"github.com/pthm-cable/backdrop/ui"
)

// lockedContent is shown once the gate reveals.
const lockedContent = "Welcome in. The archive is open."

// RaylibHost reports the raylib window size.
type RaylibHost struct {
	Agent string
}

func (h *RaylibHost) Size() (int, int) {
	return int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
}

func (h *RaylibHost) UserAgent() string { return h.Agent }

// RunRaylib opens a resizable window and runs until it is closed or
// maxTicks refreshes have passed (0 = unlimited).
func RunRaylib(cfg *config.Config, opts Options, maxTicks int) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.RefreshFPS))

	if !rl.IsWindowReady() {
		return fmt.Errorf("raylib window not ready")
	}

	width, height := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	surface := renderer.NewSurface(width, height)
	defer surface.Unload()

	bubbles := renderer.NewBubbleRenderer()
	opts.DrawBubbles = bubbles.Draw

	c, err := NewController(cfg, &RaylibHost{Agent: cfg.Device.UserAgent}, surface, opts)
	if err != nil {
		return err
	}
	defer c.Close()

	widget := ui.NewGateWidget(c.Gate(), cfg.Screen.Title, lockedContent)
	hud := ui.NewHUD()
	perfPanel := ui.NewPerfPanel(width-230, 10, 220)
	showHUD := false

	start := time.Now()
	c.Start(0)

	wasMinimized := false
	wasOnScreen := false
	for ticks := 0; !rl.WindowShouldClose(); ticks++ {
		if maxTicks > 0 && ticks >= maxTicks {
			break
		}
		now := time.Since(start)

		if rl.IsWindowResized() {
			width, height = int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
			surface.Resize(width, height)
			perfPanel.SetPosition(width-230, 10)
			c.Dispatch(ResizeEvent{}, now)
		}

		if minimized := rl.IsWindowMinimized(); minimized != wasMinimized {
			wasMinimized = minimized
			c.Dispatch(VisibilityEvent{Hidden: minimized}, now)
		}

		onScreen := rl.IsCursorOnScreen()
		switch {
		case onScreen:
			m := rl.GetMousePosition()
			c.Dispatch(PointerMoveEvent{X: m.X, Y: m.Y}, now)
		case wasOnScreen:
			c.Dispatch(PointerLeaveEvent{}, now)
		}
		wasOnScreen = onScreen

		if rl.GetMouseWheelMove() != 0 {
			c.Dispatch(ScrollEvent{}, now)
		}
		if rl.IsKeyPressed(rl.KeyH) {
			showHUD = !showHUD
		}

		widget.HandleInput(width, height, now)
		c.Update(now)

		rl.BeginDrawing()
		rl.ClearBackground(surface.Background)
		surface.Blit()
		widget.Draw(width, height)

		if showHUD {
			state, reason := c.Scheduler().State()
			hud.Draw(ui.HUDData{
				Title:     cfg.Screen.Title,
				Particles: c.Field().Count(),
				Links:     c.Links(),
				Class:     c.Field().Class(),
				State:     state,
				Reason:    reason,
				TargetFPS: int(time.Second / c.Scheduler().Interval()),
				FPS:       rl.GetFPS(),
				Stats:     c.Scheduler().Stats(),
			})
			perfPanel.Draw(ui.PerfPanelData{Stats: c.Perf(), Registry: c.Registry()})
		}
		hud.DrawControls(height, "H: stats  Esc: quit")

		rl.EndDrawing()
	}
	return nil
}
