package systems

import (
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/backdrop/components"
)

// BubbleParams configures an unlock bubble burst.
type BubbleParams struct {
	Count        int
	Stagger      time.Duration // Delay between consecutive spawns
	Lifetime     time.Duration // Each bubble is removed this long after spawning
	Container    time.Duration // The burst is removed this long after it started
	JitterX      float32       // Full width of the horizontal spawn jitter
	MinSize      float32
	MaxSize      float32
	MinRise      time.Duration
	MaxRise      time.Duration
	RiseDistance float32
}

// DefaultBubbleParams returns the stock burst: 30 bubbles, 50ms apart.
func DefaultBubbleParams() BubbleParams {
	return BubbleParams{
		Count:        30,
		Stagger:      50 * time.Millisecond,
		Lifetime:     2 * time.Second,
		Container:    3500 * time.Millisecond,
		JitterX:      100,
		MinSize:      10,
		MaxSize:      30,
		MinRise:      time.Second,
		MaxRise:      2 * time.Second,
		RiseDistance: 160,
	}
}

// burst is a pending spawn sequence.
type burst struct {
	id      uint32
	x, y    float32
	start   time.Duration
	spawned int
}

// BubbleSystem spawns and retires unlock bubbles as ECS entities.
type BubbleSystem struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Bubble, components.Burst]
	filter *ecs.Filter3[components.Position, components.Bubble, components.Burst]

	params BubbleParams
	rng    *rand.Rand
	bursts []burst
	nextID uint32

	toRemove []ecs.Entity // reused between updates
	retired  []uint32
}

// NewBubbleSystem creates an empty bubble system with its own ECS world.
func NewBubbleSystem(params BubbleParams, rng *rand.Rand) *BubbleSystem {
	world := ecs.NewWorld()
	return &BubbleSystem{
		world:  world,
		mapper: ecs.NewMap3[components.Position, components.Bubble, components.Burst](world),
		filter: ecs.NewFilter3[components.Position, components.Bubble, components.Burst](world),
		params: params,
		rng:    rng,
	}
}

// Spawn starts a burst centred on (x, y). Bubbles appear one every Stagger
// from the next Update on. Returns the burst ID.
func (b *BubbleSystem) Spawn(x, y float32, now time.Duration) uint32 {
	b.nextID++
	b.bursts = append(b.bursts, burst{id: b.nextID, x: x, y: y, start: now})
	return b.nextID
}

// Update spawns bubbles that are due, removes expired bubbles and retires
// bursts past their container time.
func (b *BubbleSystem) Update(now time.Duration) {
	b.retired = b.retired[:0]
	alive := 0
	for i := range b.bursts {
		br := &b.bursts[i]
		for br.spawned < b.params.Count && now >= br.start+time.Duration(br.spawned)*b.params.Stagger {
			b.spawnBubble(br, br.start+time.Duration(br.spawned)*b.params.Stagger)
			br.spawned++
		}
		if now < br.start+b.params.Container {
			b.bursts[alive] = *br
			alive++
		} else {
			b.retired = append(b.retired, br.id)
		}
	}
	b.bursts = b.bursts[:alive]

	// First pass: collect (the world is locked while a query is open)
	b.toRemove = b.toRemove[:0]
	query := b.filter.Query()
	for query.Next() {
		_, bubble, tag := query.Get()
		if now >= bubble.Expires || retiredBurst(b.retired, tag.ID) {
			b.toRemove = append(b.toRemove, query.Entity())
		}
	}

	// Second pass: remove
	for _, e := range b.toRemove {
		b.world.RemoveEntity(e)
	}
}

// Each calls fn for every live bubble with its animated position, size and
// alpha. Bubbles rise by RiseDistance and fade out over their rise time.
func (b *BubbleSystem) Each(now time.Duration, fn func(x, y, size, alpha float32)) {
	query := b.filter.Query()
	for query.Next() {
		pos, bubble, _ := query.Get()
		t := progress(now, bubble.Spawned, bubble.Rise)
		fn(pos.X, pos.Y-t*b.params.RiseDistance, bubble.Size, 1-t)
	}
}

// bubbleFill is the peak fill alpha of a bubble.
const bubbleFill = 0.35

// Draw fills every live bubble on s. Size is the bubble diameter.
func (b *BubbleSystem) Draw(now time.Duration, s Surface) {
	b.Each(now, func(x, y, size, alpha float32) {
		s.FillCircle(x, y, size/2, components.NeonBlue.WithAlpha(alpha*bubbleFill))
	})
}

// Active returns the number of live bubbles.
func (b *BubbleSystem) Active() int {
	n := 0
	query := b.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Bursts returns the number of bursts that have not been retired.
func (b *BubbleSystem) Bursts() int {
	return len(b.bursts)
}

func (b *BubbleSystem) spawnBubble(br *burst, at time.Duration) {
	p := b.params
	pos := components.Position{
		X: br.x + (b.rng.Float32()-0.5)*p.JitterX,
		Y: br.y,
	}
	rise := p.MinRise
	if span := p.MaxRise - p.MinRise; span > 0 {
		rise += time.Duration(b.rng.Int63n(int64(span)))
	}
	bubble := components.Bubble{
		Size:    p.MinSize + b.rng.Float32()*(p.MaxSize-p.MinSize),
		Spawned: at,
		Rise:    rise,
		Expires: at + p.Lifetime,
	}
	tag := components.Burst{ID: br.id}
	b.mapper.NewEntity(&pos, &bubble, &tag)
}

func retiredBurst(ids []uint32, id uint32) bool {
	for _, r := range ids {
		if r == id {
			return true
		}
	}
	return false
}
