package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated frame statistics for a time window.
type WindowStats struct {
	WindowStartMS int64 `csv:"-"`
	WindowEndMS   int64 `csv:"window_end_ms"`

	// Accepted frames during the window
	Frames int     `csv:"frames"`
	FPS    float64 `csv:"fps"`

	// Gap between consecutive accepted frames
	GapMeanMS float64 `csv:"gap_mean_ms"`
	GapStdMS  float64 `csv:"gap_std_ms"`
	GapP95MS  float64 `csv:"gap_p95_ms"`

	// Field state at window end
	Particles int `csv:"particles"`

	// Links drawn per frame
	LinksMean float64 `csv:"links_mean"`
	LinksMax  int     `csv:"links_max"`

	// Scheduler decisions during the window
	Throttled uint64 `csv:"throttled"`
	Suspended uint64 `csv:"suspended"`
	Reseeds   int    `csv:"reseeds"`
}

// Summary holds mean, standard deviation and 95th percentile of a sample.
type Summary struct {
	Mean float64
	Std  float64
	P95  float64
}

// Summarize computes a Summary. The input is not modified.
// Std is zero for fewer than two values.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		Mean: stat.Mean(sorted, nil),
		P95:  stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
	if n > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start_ms", s.WindowStartMS),
		slog.Int64("window_end_ms", s.WindowEndMS),
		slog.Int("frames", s.Frames),
		slog.Float64("fps", s.FPS),
		slog.Float64("gap_mean_ms", s.GapMeanMS),
		slog.Float64("gap_std_ms", s.GapStdMS),
		slog.Float64("gap_p95_ms", s.GapP95MS),
		slog.Int("particles", s.Particles),
		slog.Float64("links_mean", s.LinksMean),
		slog.Int("links_max", s.LinksMax),
		slog.Uint64("throttled", s.Throttled),
		slog.Uint64("suspended", s.Suspended),
		slog.Int("reseeds", s.Reseeds),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end_ms", s.WindowEndMS,
		"frames", s.Frames,
		"fps", s.FPS,
		"gap_p95_ms", s.GapP95MS,
		"particles", s.Particles,
		"links_mean", s.LinksMean,
		"links_max", s.LinksMax,
		"throttled", s.Throttled,
		"suspended", s.Suspended,
		"reseeds", s.Reseeds,
	)
}
