// Package game wires the particle engine, the unlock gate and telemetry
// into a controller, and drives it from the raylib, terminal and headless
// backends.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/backdrop/audio"
	"github.com/pthm-cable/backdrop/components"
	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/gate"
	"github.com/pthm-cable/backdrop/systems"
	"github.com/pthm-cable/backdrop/telemetry"
)

// Options configures a controller beyond the loaded config.
type Options struct {
	Seed      int64  // RNG seed (0 = time-based)
	LogStats  bool   // Log window and perf stats via slog
	OutputDir string // CSV and config snapshot directory (empty = disabled)

	// Perf clock; nil uses the wall clock.
	Clock func() time.Time
	// Session carries the unlock flag across gate instances; nil starts locked.
	Session *gate.Session
	// DrawBubbles replaces surface bubble drawing, e.g. with a raylib renderer.
	DrawBubbles func(b *systems.BubbleSystem, now time.Duration)
}

// Controller owns every piece of engine state. All methods must be called
// from the backend's main goroutine.
type Controller struct {
	cfg     *config.Config
	host    Host
	surface systems.Surface
	rng     *rand.Rand
	active  bool
	mobile  bool

	loop        *systems.FrameLoop
	field       *systems.ParticleField
	connections *systems.ConnectionRenderer
	scheduler   *systems.FrameScheduler
	viewport    *systems.ViewportManager
	bubbles     *systems.BubbleSystem
	registry    *systems.SystemRegistry

	gate        *gate.Gate
	chime       *audio.Player
	drawBubbles func(b *systems.BubbleSystem, now time.Duration)

	// Mouse is the reserved pointer hook. It is recorded on desktop and
	// not consumed by any effect.
	Mouse components.Pointer

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	now   time.Duration
	links int
}

// NewController builds the engine for host and surface. A nil surface
// yields an inactive controller that ignores every call.
func NewController(cfg *config.Config, host Host, surface systems.Surface, opts Options) (*Controller, error) {
	c := &Controller{cfg: cfg, host: host, surface: surface}
	if surface == nil {
		slog.Warn("no drawing surface, particle background disabled")
		return c, nil
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	c.rng = rand.New(rand.NewSource(seed))

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	c.output = output

	chime, err := audio.NewPlayer(cfg.Audio.UnlockChime, cfg.Audio.ChimeHz, time.Duration(cfg.Audio.ChimeMS)*time.Millisecond)
	if err != nil {
		// Non-fatal, the gate works without sound
		slog.Warn("unlock chime disabled", "error", err)
	}
	c.chime = chime

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	c.perf = telemetry.NewPerfCollectorWithClock(cfg.Telemetry.PerfWindow, clock)
	c.collector = telemetry.NewCollector(cfg.Telemetry.LogInterval)
	c.logStats = opts.LogStats
	c.registry = systems.NewSystemRegistry()

	c.loop = &systems.FrameLoop{}
	c.field = systems.NewParticleField(densityPolicy(cfg), c.rng)
	c.connections = systems.NewConnectionRenderer(cfg.Derived.MaxDistance32, cfg.Derived.LineWidth32, cfg.Derived.MaxAlpha32)
	c.connections.UseGrid(cfg.Connections.UseGrid)
	c.viewport = systems.NewViewportManager(host, cfg.Derived.ResizeDebounce, c.reseed)
	c.bubbles = systems.NewBubbleSystem(bubbleParams(cfg), c.rng)

	c.drawBubbles = opts.DrawBubbles
	if c.drawBubbles == nil {
		c.drawBubbles = func(b *systems.BubbleSystem, now time.Duration) { b.Draw(now, c.surface) }
	}

	// Mobile is decided once from the startup size
	vp := c.viewport.InitialSize()
	c.mobile = detectMobile(cfg, host.UserAgent(), vp.W)

	fps := cfg.Frames.DesktopFPS
	if c.mobile {
		fps = cfg.Frames.MobileFPS
	}
	c.scheduler = systems.NewFrameScheduler(c.loop, fps, c.mobile, cfg.Derived.ScrollDebounce, c.frame)

	c.gate = gate.New(gate.ParamsFromConfig(cfg.Gate), opts.Session, gate.Hooks{
		OnUnlock:  c.chime.PlayUnlock,
		OnBubbles: func(x, y float32) { c.bubbles.Spawn(x, y, c.now) },
		OnReveal:  func() { slog.Info("locked content revealed") },
	}, cfg.Screen.RefreshFPS)

	c.seed(vp)
	c.active = true

	slog.Info("controller initialized",
		"seed", seed,
		"width", vp.W,
		"height", vp.H,
		"mobile", c.mobile,
		"class", c.field.Class().String(),
		"particles", c.field.Count(),
		"target_fps", fps,
	)
	return c, nil
}

func densityPolicy(cfg *config.Config) systems.DensityPolicy {
	return systems.DensityPolicy{
		Divisor:     cfg.Field.DensityDivisor,
		MobileCap:   cfg.Field.MobileCap,
		TabletCap:   cfg.Field.TabletCap,
		DesktopCap:  cfg.Field.DesktopCap,
		TabletWidth: float32(cfg.Field.TabletWidth),
	}
}

func bubbleParams(cfg *config.Config) systems.BubbleParams {
	b := cfg.Gate.Bubbles
	ms := time.Millisecond
	return systems.BubbleParams{
		Count:        b.Count,
		Stagger:      time.Duration(b.StaggerMS) * ms,
		Lifetime:     time.Duration(b.LifetimeMS) * ms,
		Container:    time.Duration(b.ContainerMS) * ms,
		JitterX:      float32(b.JitterX),
		MinSize:      float32(b.MinSize),
		MaxSize:      float32(b.MaxSize),
		MinRise:      time.Duration(b.MinRiseMS) * ms,
		MaxRise:      time.Duration(b.MaxRiseMS) * ms,
		RiseDistance: float32(b.RiseDistance),
	}
}

func detectMobile(cfg *config.Config, userAgent string, width float32) bool {
	switch {
	case cfg.Derived.ForceMobile:
		return true
	case cfg.Derived.ForceDesktop:
		return false
	}
	ua := cfg.Device.UserAgent
	if ua == "" {
		ua = userAgent
	}
	return systems.DetectMobile(ua, width, float32(cfg.Field.MobileWidth))
}

// Start restores a session unlock and starts the frame scheduler.
func (c *Controller) Start(now time.Duration) {
	if !c.active {
		return
	}
	c.now = now
	c.gate.Start()
	c.scheduler.Start(now)
}

// Dispatch applies a host event.
func (c *Controller) Dispatch(ev Event, now time.Duration) {
	if !c.active {
		return
	}
	c.now = now

	switch ev := ev.(type) {
	case ResizeEvent:
		c.viewport.OnResize(now)
	case ScrollEvent:
		c.scheduler.OnScroll(now)
	case PointerMoveEvent:
		if !c.mobile {
			c.Mouse = components.Pointer{X: ev.X, Y: ev.Y, Present: true, Radius: float32(c.cfg.Pointer.Radius)}
		}
	case PointerLeaveEvent:
		if !c.mobile {
			c.Mouse.Present = false
		}
	case VisibilityEvent:
		c.scheduler.SetHidden(ev.Hidden, now)
	}
}

// Update runs everything due at now: settled resizes, the end of a scroll
// suspension, gate timers, the pending frame callback and telemetry.
// Returns true when a frame was drawn.
func (c *Controller) Update(now time.Duration) bool {
	if !c.active {
		return false
	}
	c.now = now
	c.perf.RecordFrame()

	c.viewport.Poll(now)
	c.scheduler.Poll(now)
	c.gate.Update(now)

	before := c.scheduler.Stats().Accepted
	c.loop.Pump(now)
	drew := c.scheduler.Stats().Accepted != before

	c.flushTelemetry(now)
	return drew
}

// frame is the accepted-tick work: clear, advance and draw the field,
// links on non-mobile devices, then bubbles.
func (c *Controller) frame(now time.Duration) {
	vp := c.field.Viewport()

	if fs, ok := c.surface.(systems.FrameSurface); ok {
		fs.BeginFrame()
		defer fs.EndFrame()
	}

	c.perf.StartTick()
	c.perf.StartPhase(telemetry.PhaseClear)
	c.surface.Clear(0, 0, vp.W, vp.H)

	c.perf.StartPhase(telemetry.PhaseUpdateDraw)
	c.field.Step(c.surface)

	c.links = 0
	if !c.mobile {
		c.perf.StartPhase(telemetry.PhaseConnections)
		c.links = c.connections.Render(c.field.Particles, c.surface)
	}

	c.perf.StartPhase(telemetry.PhaseBubbles)
	c.bubbles.Update(now)
	c.drawBubbles(c.bubbles, now)
	c.perf.EndTick()

	c.collector.RecordFrame(now, c.field.Count(), c.links)
}

// reseed runs when a resize settles.
func (c *Controller) reseed(vp systems.Viewport) {
	c.seed(vp)
	c.collector.RecordReseed()
	slog.Debug("field reseeded", "width", vp.W, "height", vp.H, "class", c.field.Class().String(), "particles", c.field.Count())
}

func (c *Controller) seed(vp systems.Viewport) {
	class := c.field.Policy().Classify(c.mobile, vp.W)
	c.field.Seed(vp, class)
	c.connections.Resize(vp)
}

// flushTelemetry emits window stats when the window has elapsed.
func (c *Controller) flushTelemetry(now time.Duration) {
	if !c.collector.ShouldFlush(now) {
		return
	}

	sched := c.scheduler.Stats()
	stats := c.collector.Flush(now, telemetry.FrameCounters{Throttled: sched.Throttled, Suspended: sched.Suspended})
	perfStats := c.perf.Stats()

	if c.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if c.output != nil {
		if err := c.output.WriteFrames(stats); err != nil {
			slog.Error("failed to write frames", "error", err)
		}
		if err := c.output.WritePerf(perfStats, now); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// Close stops the scheduler and releases output files and audio.
func (c *Controller) Close() error {
	if !c.active {
		return nil
	}
	c.scheduler.Stop()
	c.chime.Close()
	c.active = false
	return c.output.Close()
}

// Active reports whether the controller was initialized with a surface.
func (c *Controller) Active() bool { return c.active }

// Mobile reports the startup device decision.
func (c *Controller) Mobile() bool { return c.mobile }

// Field returns the particle field.
func (c *Controller) Field() *systems.ParticleField { return c.field }

// Scheduler returns the frame scheduler.
func (c *Controller) Scheduler() *systems.FrameScheduler { return c.scheduler }

// Bubbles returns the bubble system.
func (c *Controller) Bubbles() *systems.BubbleSystem { return c.bubbles }

// Gate returns the unlock gate.
func (c *Controller) Gate() *gate.Gate { return c.gate }

// Registry returns the frame phase registry.
func (c *Controller) Registry() *systems.SystemRegistry { return c.registry }

// Perf returns the current perf window.
func (c *Controller) Perf() telemetry.PerfStats { return c.perf.Stats() }

// Links returns the number of links drawn in the last frame.
func (c *Controller) Links() int { return c.links }

// Viewport returns the current viewport.
func (c *Controller) Viewport() systems.Viewport { return c.viewport.Viewport() }
