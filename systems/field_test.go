package systems

import (
	"math"
	"math/rand"
	"testing"
)

func TestDensityPolicyCount(t *testing.T) {
	policy := DefaultDensityPolicy()

	tests := []struct {
		name  string
		vp    Viewport
		class DeviceClass
		want  int
	}{
		{"full hd desktop hits cap", Viewport{W: 1920, H: 1080}, ClassDesktop, 70},
		{"phone under cap", Viewport{W: 375, H: 667}, ClassMobile, 10},
		{"large phone capped", Viewport{W: 1200, H: 2000}, ClassMobile, 15},
		{"tablet capped", Viewport{W: 1000, H: 1400}, ClassTablet, 40},
		{"small desktop below cap", Viewport{W: 1024, H: 768}, ClassDesktop, 31},
		{"zero width", Viewport{W: 0, H: 1080}, ClassDesktop, 0},
		{"negative height", Viewport{W: 1920, H: -5}, ClassDesktop, 0},
		{"tiny", Viewport{W: 100, H: 100}, ClassDesktop, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.Count(tt.vp, tt.class)
			if got != tt.want {
				t.Errorf("expected %d particles, got %d", tt.want, got)
			}
		})
	}
}

func TestDensityPolicyCountMatchesFormula(t *testing.T) {
	policy := DefaultDensityPolicy()
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 500; i++ {
		vp := Viewport{W: float32(rng.Intn(4000)), H: float32(rng.Intn(3000))}
		area := vp.Area()
		for _, class := range []DeviceClass{ClassDesktop, ClassTablet, ClassMobile} {
			want := min(int(math.Floor(area/25000)), policy.Capacity(class))
			if got := policy.Count(vp, class); got != want {
				t.Fatalf("%v %v: expected %d, got %d", vp, class, want, got)
			}
		}
	}
}

func TestClassify(t *testing.T) {
	policy := DefaultDensityPolicy()

	if c := policy.Classify(true, 1920); c != ClassMobile {
		t.Errorf("expected mobile, got %v", c)
	}
	if c := policy.Classify(false, 1023); c != ClassTablet {
		t.Errorf("expected tablet below 1024, got %v", c)
	}
	if c := policy.Classify(false, 1024); c != ClassDesktop {
		t.Errorf("expected desktop at 1024, got %v", c)
	}
}

func TestDetectMobile(t *testing.T) {
	tests := []struct {
		ua    string
		width float32
		want  bool
	}{
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", 1200, true},
		{"Mozilla/5.0 (Linux; android 14; Pixel 8)", 1200, true},
		{"Opera/9.80 (J2ME/MIDP; Opera Mini/9.80)", 1200, true},
		{"Mozilla/5.0 (X11; Linux x86_64)", 1200, false},
		{"Mozilla/5.0 (X11; Linux x86_64)", 767, true},
		{"Mozilla/5.0 (X11; Linux x86_64)", 768, false},
		{"", 1920, false},
	}
	for _, tt := range tests {
		if got := DetectMobile(tt.ua, tt.width, 768); got != tt.want {
			t.Errorf("DetectMobile(%q, %v) = %v, expected %v", tt.ua, tt.width, got, tt.want)
		}
	}
}

func TestFieldSeed(t *testing.T) {
	f := NewParticleField(DefaultDensityPolicy(), rand.New(rand.NewSource(1)))

	if n := f.Seed(Viewport{W: 1920, H: 1080}, ClassDesktop); n != 70 || f.Count() != 70 {
		t.Errorf("expected 70 particles, got %d (count %d)", n, f.Count())
	}
	if n := f.Seed(Viewport{W: 375, H: 667}, ClassMobile); n != 10 {
		t.Errorf("expected 10 particles after reseed, got %d", n)
	}
	for _, p := range f.Particles {
		if p.Position.X >= 375 || p.Position.Y >= 667 {
			t.Errorf("particle outside reseeded viewport: %+v", p.Position)
		}
	}
	if f.Viewport() != (Viewport{W: 375, H: 667}) || f.Class() != ClassMobile {
		t.Errorf("expected field to remember viewport and class, got %v %v", f.Viewport(), f.Class())
	}
}

func TestFieldStepUpdatesBeforeDrawing(t *testing.T) {
	f := NewParticleField(DefaultDensityPolicy(), rand.New(rand.NewSource(2)))
	f.Seed(Viewport{W: 1280, H: 720}, ClassDesktop)

	before := make([]float32, f.Count())
	for i, p := range f.Particles {
		before[i] = p.Position.X
	}

	s := &recordingSurface{}
	f.Step(s)

	if len(s.calls) != f.Count() {
		t.Fatalf("expected %d circles, got %d calls", f.Count(), len(s.calls))
	}
	// Every drawn circle is at the post-advance position
	for i, c := range s.calls {
		if c.kind != drawCircle {
			t.Fatalf("call %d: expected circle, got %v", i, c.kind)
		}
		if c.x1 != f.Particles[i].Position.X || c.y1 != f.Particles[i].Position.Y {
			t.Errorf("particle %d drawn at (%v,%v), expected (%v,%v)", i, c.x1, c.y1, f.Particles[i].Position.X, f.Particles[i].Position.Y)
		}
	}

	moved := 0
	for i, p := range f.Particles {
		if p.Position.X != before[i] {
			moved++
		}
	}
	if moved == 0 {
		t.Error("expected particles to move")
	}
}

func TestFieldStepDoesNotAllocate(t *testing.T) {
	f := NewParticleField(DefaultDensityPolicy(), rand.New(rand.NewSource(4)))
	f.Seed(Viewport{W: 1920, H: 1080}, ClassDesktop)
	s := &NullSurface{}

	allocs := testing.AllocsPerRun(100, func() {
		f.Step(s)
	})
	if allocs != 0 {
		t.Errorf("expected Step to not allocate, got %v allocs per run", allocs)
	}
	if f.Count() != 70 {
		t.Errorf("expected count stable at 70, got %d", f.Count())
	}
}
