package telemetry

import "time"

// FrameCounters are cumulative scheduler counters sampled at flush time.
type FrameCounters struct {
	Throttled uint64
	Suspended uint64
}

// Collector accumulates accepted frames within time windows and produces WindowStats.
type Collector struct {
	window time.Duration

	// Current window tracking
	windowStart time.Duration
	lastFrame   time.Duration
	haveFrame   bool

	// Samples for current window
	gapsMS    []float64
	links     []float64
	linksMax  int
	reseeds   int
	particles int

	// Counters at the previous flush
	prev FrameCounters
}

// NewCollector creates a new stats collector.
// window: how long each stats window lasts on the engine clock.
func NewCollector(window time.Duration) *Collector {
	if window <= 0 {
		window = 10 * time.Second
	}
	return &Collector{window: window}
}

// RecordFrame records one accepted frame.
func (c *Collector) RecordFrame(now time.Duration, particles, links int) {
	if c.haveFrame {
		c.gapsMS = append(c.gapsMS, float64(now-c.lastFrame)/float64(time.Millisecond))
	}
	c.lastFrame = now
	c.haveFrame = true

	c.particles = particles
	c.links = append(c.links, float64(links))
	if links > c.linksMax {
		c.linksMax = links
	}
}

// RecordReseed records a field reseed.
func (c *Collector) RecordReseed() {
	c.reseeds++
}

// ShouldFlush returns true if the current window has elapsed.
func (c *Collector) ShouldFlush(now time.Duration) bool {
	return now-c.windowStart >= c.window
}

// Flush produces a WindowStats and resets the window.
// counters are the scheduler's cumulative totals; the window reports the change since the last flush.
func (c *Collector) Flush(now time.Duration, counters FrameCounters) WindowStats {
	gaps := Summarize(c.gapsMS)
	links := Summarize(c.links)

	var fps float64
	if span := now - c.windowStart; span > 0 {
		fps = float64(len(c.links)) / span.Seconds()
	}

	stats := WindowStats{
		WindowStartMS: c.windowStart.Milliseconds(),
		WindowEndMS:   now.Milliseconds(),
		Frames:        len(c.links),
		FPS:           fps,
		GapMeanMS:     gaps.Mean,
		GapStdMS:      gaps.Std,
		GapP95MS:      gaps.P95,
		Particles:     c.particles,
		LinksMean:     links.Mean,
		LinksMax:      c.linksMax,
		Throttled:     counters.Throttled - c.prev.Throttled,
		Suspended:     counters.Suspended - c.prev.Suspended,
		Reseeds:       c.reseeds,
	}

	// Reset for next window; the gap baseline carries over
	c.windowStart = now
	c.gapsMS = c.gapsMS[:0]
	c.links = c.links[:0]
	c.linksMax = 0
	c.reseeds = 0
	c.prev = counters

	return stats
}
