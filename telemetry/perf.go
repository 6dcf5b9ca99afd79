package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the per-frame work.
const (
	PhaseClear       = "clear"
	PhaseUpdateDraw  = "update_draw"
	PhaseConnections = "connections"
	PhaseBubbles     = "bubbles"
)

// phaseOrder is the execution order used for log output. A sample keeps one
// slot per entry.
var phaseOrder = [...]string{PhaseClear, PhaseUpdateDraw, PhaseConnections, PhaseBubbles}

const noPhase = -1

func phaseSlot(phase string) int {
	for i, name := range phaseOrder {
		if name == phase {
			return i
		}
	}
	return noPhase
}

// PerfSample holds timing data for a single accepted frame.
type PerfSample struct {
	TickDuration time.Duration
	Phases       [len(phaseOrder)]time.Duration
}

// PerfCollector tracks frame work timing over a rolling window of accepted
// frames. Recording does not allocate.
type PerfCollector struct {
	ring  []PerfSample
	next  int
	count int
	clock func() time.Time

	// Frame being timed
	current    PerfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      int

	// Host refresh timing (every loop iteration, accepted or not)
	lastRefresh time.Time
	refresh     time.Duration
}

// NewPerfCollector creates a collector averaging over the last windowSize
// accepted frames (60 when windowSize < 1).
func NewPerfCollector(windowSize int) *PerfCollector {
	return NewPerfCollectorWithClock(windowSize, time.Now)
}

// NewPerfCollectorWithClock is NewPerfCollector with an explicit time source.
func NewPerfCollectorWithClock(windowSize int, clock func() time.Time) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		ring:  make([]PerfSample, windowSize),
		clock: clock,
		phase: noPhase,
	}
}

// StartTick begins timing a new frame.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.clock()
	p.current = PerfSample{}
	p.phase = noPhase
}

// StartPhase closes the running phase and starts timing phase. Unknown
// names are timed as part of the frame but not broken out.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.clock()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phaseSlot(phase)
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != noPhase {
		p.current.Phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick finishes timing the current frame and records the sample.
func (p *PerfCollector) EndTick() {
	now := p.clock()
	p.closePhase(now)
	p.phase = noPhase
	p.current.TickDuration = now.Sub(p.tickStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	p.count = min(p.count+1, len(p.ring))
}

// RecordFrame records host refresh timing. Call once per loop iteration.
func (p *PerfCollector) RecordFrame() {
	now := p.clock()
	if !p.lastRefresh.IsZero() {
		p.refresh = now.Sub(p.lastRefresh)
	}
	p.lastRefresh = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Phase breakdown (average durations and share of the frame)
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	// Host refresh
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the samples currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, len(phaseOrder)),
		PhasePct:      make(map[string]float64, len(phaseOrder)),
		FrameDuration: p.refresh,
	}
	if p.refresh > 0 {
		stats.FPS = float64(time.Second) / float64(p.refresh)
	}
	if p.count == 0 {
		return stats
	}

	var total time.Duration
	var phases [len(phaseOrder)]time.Duration
	samples := p.ring[:p.count]
	stats.MinTickDuration = samples[0].TickDuration
	for _, s := range samples {
		total += s.TickDuration
		stats.MinTickDuration = min(stats.MinTickDuration, s.TickDuration)
		stats.MaxTickDuration = max(stats.MaxTickDuration, s.TickDuration)
		for i, d := range s.Phases {
			phases[i] += d
		}
	}

	n := time.Duration(p.count)
	stats.AvgTickDuration = total / n
	for i, name := range phaseOrder {
		if phases[i] == 0 {
			continue
		}
		avg := phases[i] / n
		stats.PhaseAvg[name] = avg
		if stats.AvgTickDuration > 0 {
			stats.PhasePct[name] = float64(avg) / float64(stats.AvgTickDuration) * 100
		}
	}
	return stats
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgTickDuration.Microseconds(),
		"min_frame_us", s.MinTickDuration.Microseconds(),
		"max_frame_us", s.MaxTickDuration.Microseconds(),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "refresh_fps", int(s.FPS))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_frame_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_frame_us", s.MaxTickDuration.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("refresh_fps", s.FPS))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEndMS    int64   `csv:"window_end_ms"`
	AvgFrameUS     int64   `csv:"avg_frame_us"`
	MinFrameUS     int64   `csv:"min_frame_us"`
	MaxFrameUS     int64   `csv:"max_frame_us"`
	RefreshFPS     float64 `csv:"refresh_fps"`
	ClearPct       float64 `csv:"clear_pct"`
	UpdateDrawPct  float64 `csv:"update_draw_pct"`
	ConnectionsPct float64 `csv:"connections_pct"`
	BubblesPct     float64 `csv:"bubbles_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd time.Duration) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEndMS:    windowEnd.Milliseconds(),
		AvgFrameUS:     s.AvgTickDuration.Microseconds(),
		MinFrameUS:     s.MinTickDuration.Microseconds(),
		MaxFrameUS:     s.MaxTickDuration.Microseconds(),
		RefreshFPS:     s.FPS,
		ClearPct:       s.PhasePct[PhaseClear],
		UpdateDrawPct:  s.PhasePct[PhaseUpdateDraw],
		ConnectionsPct: s.PhasePct[PhaseConnections],
		BubblesPct:     s.PhasePct[PhaseBubbles],
	}
}
