package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/systems"
)

// HeadlessOptions configures a run without a display.
type HeadlessOptions struct {
	MaxTicks int    // Host refresh ticks to run (0 = one minute of refreshes)
	Code     string // Typed into the gate one second in (empty = never)
}

// HeadlessResult summarizes a headless run.
type HeadlessResult struct {
	Ticks    int
	Frames   int
	Surface  systems.NullSurface
	Stats    systems.SchedulerStats
	Unlocked bool
}

// RunHeadless drives a controller on a synthetic clock advancing one host
// refresh per tick, drawing into a counting surface.
func RunHeadless(cfg *config.Config, opts Options, hopts HeadlessOptions) (HeadlessResult, error) {
	refresh := time.Second / time.Duration(max(cfg.Screen.RefreshFPS, 1))
	maxTicks := hopts.MaxTicks
	if maxTicks <= 0 {
		maxTicks = 60 * max(cfg.Screen.RefreshFPS, 1)
	}

	// The perf clock follows the synthetic clock so timings stay deterministic
	epoch := time.Unix(0, 0)
	var now time.Duration
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return epoch.Add(now) }
	}

	host := &StaticHost{Width: cfg.Screen.Width, Height: cfg.Screen.Height, Agent: cfg.Device.UserAgent}
	var result HeadlessResult
	c, err := NewController(cfg, host, &result.Surface, opts)
	if err != nil {
		return result, err
	}
	defer c.Close()

	slog.Info("starting headless run",
		"max_ticks", maxTicks,
		"refresh_fps", cfg.Screen.RefreshFPS,
		"width", cfg.Screen.Width,
		"height", cfg.Screen.Height,
	)

	c.Start(now)
	typed := hopts.Code == ""
	for result.Ticks = 0; result.Ticks < maxTicks; result.Ticks++ {
		now += refresh
		if !typed && now >= time.Second {
			c.Gate().SetAnchor(float32(cfg.Screen.Width)/2, float32(cfg.Screen.Height)*0.6)
			c.Gate().Input(hopts.Code, now)
			typed = true
		}
		if c.Update(now) {
			result.Frames++
		}
	}

	result.Stats = c.Scheduler().Stats()
	result.Unlocked = c.Gate().Unlocked()
	slog.Info("headless run finished",
		"ticks", result.Ticks,
		"frames", result.Frames,
		"throttled", result.Stats.Throttled,
		"circles", result.Surface.Circles,
		"lines", result.Surface.Lines,
		"unlocked", result.Unlocked,
	)
	return result, nil
}
