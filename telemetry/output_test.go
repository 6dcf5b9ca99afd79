package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/backdrop/config"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager for empty dir, got %v, %v", om, err)
	}
	// Nil receivers are no-ops
	if err := om.WriteFrames(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManager_WritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteFrames(WindowStats{WindowEndMS: int64(i * 1000), Frames: 30}); err != nil {
			t.Fatal(err)
		}
		stats := PerfStats{PhasePct: map[string]float64{PhaseUpdateDraw: 60}}
		if err := om.WritePerf(stats, time.Duration(i)*time.Second); err != nil {
			t.Fatal(err)
		}
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	frames := readLines(t, filepath.Join(dir, "frames.csv"))
	if len(frames) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(frames))
	}
	if !strings.HasPrefix(frames[0], "window_end_ms,frames,fps") {
		t.Errorf("unexpected frames header %q", frames[0])
	}
	if strings.Count(strings.Join(frames, "\n"), "window_end_ms") != 1 {
		t.Error("header repeated")
	}

	perf := readLines(t, filepath.Join(dir, "perf.csv"))
	if len(perf) != 4 || !strings.Contains(perf[0], "update_draw_pct") {
		t.Errorf("unexpected perf.csv: %v", perf)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("expected config snapshot: %v", err)
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
