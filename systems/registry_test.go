package systems

import (
	"testing"

	"github.com/pthm-cable/backdrop/telemetry"
)

func TestRegistryOrder(t *testing.T) {
	reg := NewSystemRegistry()

	want := []string{telemetry.PhaseClear, telemetry.PhaseUpdateDraw, telemetry.PhaseConnections, telemetry.PhaseBubbles}
	got := reg.IDs()
	if len(got) != len(want) {
		t.Fatalf("expected %d phases, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("phase %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	if name := reg.GetName(telemetry.PhaseConnections); name != "Connections" {
		t.Errorf("expected display name Connections, got %q", name)
	}
	if name := reg.GetName("unknown"); name != "unknown" {
		t.Errorf("expected fallback to id, got %q", name)
	}
	if _, ok := reg.Get("unknown"); ok {
		t.Error("expected unknown phase to be missing")
	}
}
