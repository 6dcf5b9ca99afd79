package components

import "time"

// Bubble is one rising bubble of the unlock burst (ECS component).
// Times are on the controller clock.
type Bubble struct {
	Size    float32
	Spawned time.Duration
	Rise    time.Duration // Duration of the rise-and-fade animation
	Expires time.Duration // Removal time
}

// Burst tags a bubble with the burst it belongs to (ECS component).
type Burst struct {
	ID uint32
}
