package systems

import (
	"math"
	"time"
)

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// abs32 returns |v| without a float64 round trip.
func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// distance returns the Euclidean distance between two points.
func distance(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// progress returns how far now is through [start, start+span], in [0, 1].
func progress(now, start, span time.Duration) float32 {
	if span <= 0 {
		return 1
	}
	return clamp01(float32(now-start) / float32(span))
}
