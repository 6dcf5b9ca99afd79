package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Summary
	}{
		{"empty", nil, Summary{}},
		{"single", []float64{33}, Summary{Mean: 33, P95: 33}},
		{"constant", []float64{50, 50, 50, 50}, Summary{Mean: 50, P95: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			if got != tt.want {
				t.Errorf("Summarize(%v) = %+v, want %+v", tt.values, got, tt.want)
			}
		})
	}
}

func TestSummarizeSpread(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[99-i] = float64(i + 1)
	}

	got := Summarize(values)
	if got.Mean != 50.5 {
		t.Errorf("expected mean 50.5, got %v", got.Mean)
	}
	if got.P95 != 95 {
		t.Errorf("expected p95 95, got %v", got.P95)
	}
	if math.Abs(got.Std-29.011) > 0.01 {
		t.Errorf("expected std ~29.01, got %v", got.Std)
	}
	if values[0] != 100 {
		t.Error("input slice was reordered")
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(time.Second)
	ms := time.Millisecond

	// 30 frames, 33ms apart, starting at zero
	for i := 0; i < 30; i++ {
		c.RecordFrame(time.Duration(i)*33*ms, 70, i)
	}
	c.RecordReseed()

	if c.ShouldFlush(999 * ms) {
		t.Error("window should not flush before it elapses")
	}
	if !c.ShouldFlush(time.Second) {
		t.Fatal("window should flush at its end")
	}

	stats := c.Flush(time.Second, FrameCounters{Throttled: 60, Suspended: 2})
	if stats.Frames != 30 {
		t.Errorf("expected 30 frames, got %d", stats.Frames)
	}
	if stats.FPS != 30 {
		t.Errorf("expected 30 fps, got %v", stats.FPS)
	}
	if stats.GapMeanMS != 33 || stats.GapStdMS != 0 {
		t.Errorf("expected steady 33ms gaps, got mean %v std %v", stats.GapMeanMS, stats.GapStdMS)
	}
	if stats.Particles != 70 || stats.LinksMax != 29 || stats.LinksMean != 14.5 {
		t.Errorf("unexpected field stats: %+v", stats)
	}
	if stats.Reseeds != 1 || stats.Throttled != 60 || stats.Suspended != 2 {
		t.Errorf("unexpected counters: %+v", stats)
	}

	// Second window reports deltas and keeps the gap baseline
	c.RecordFrame(time.Second, 70, 3)
	next := c.Flush(2*time.Second, FrameCounters{Throttled: 70, Suspended: 2})
	if next.Throttled != 10 || next.Suspended != 0 || next.Reseeds != 0 {
		t.Errorf("expected counter deltas, got %+v", next)
	}
	if next.Frames != 1 || next.GapMeanMS != 43 {
		t.Errorf("expected one frame with a 43ms gap, got %+v", next)
	}
	if next.WindowStartMS != 1000 || next.WindowEndMS != 2000 {
		t.Errorf("unexpected window bounds %d..%d", next.WindowStartMS, next.WindowEndMS)
	}
}
