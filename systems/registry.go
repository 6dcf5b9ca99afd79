package systems

import "github.com/pthm-cable/backdrop/telemetry"

// SystemInfo describes a frame phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "core", "visual")
}

// SystemRegistry holds metadata about all frame phases.
// This centralizes naming so the HUD and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known phases in execution order.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: telemetry.PhaseClear, Name: "Clear", Description: "Clears the drawing surface", Category: "core"})
	r.Register(SystemInfo{ID: telemetry.PhaseUpdateDraw, Name: "Particles", Description: "Advances then draws every particle", Category: "core"})
	r.Register(SystemInfo{ID: telemetry.PhaseConnections, Name: "Connections", Description: "Draws proximity links", Category: "visual"})
	r.Register(SystemInfo{ID: telemetry.PhaseBubbles, Name: "Bubbles", Description: "Spawns and retires unlock bubbles", Category: "visual"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
