package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/backdrop/components"
	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/gate"
	"github.com/pthm-cable/backdrop/systems"
)

const refresh = time.Second / 60

type callKind uint8

const (
	callClear callKind = iota
	callCircle
	callLine
)

// recordingSurface captures draw calls in order.
type recordingSurface struct {
	calls []callKind
}

func (s *recordingSurface) Clear(x, y, w, h float32) { s.calls = append(s.calls, callClear) }

func (s *recordingSurface) FillCircle(x, y, radius float32, c components.RGBA) {
	s.calls = append(s.calls, callCircle)
}

func (s *recordingSurface) StrokeLine(x1, y1, x2, y2, width float32, c components.RGBA) {
	s.calls = append(s.calls, callLine)
}

func (s *recordingSurface) count(kind callKind) int {
	n := 0
	for _, c := range s.calls {
		if c == kind {
			n++
		}
	}
	return n
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func newTestController(t *testing.T, cfg *config.Config, host Host, s systems.Surface) *Controller {
	t.Helper()
	c, err := NewController(cfg, host, s, Options{Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// run updates c once per refresh from *now through end.
func run(c *Controller, now *time.Duration, end time.Duration) int {
	frames := 0
	for ; *now <= end; *now += refresh {
		if c.Update(*now) {
			frames++
		}
	}
	return frames
}

func TestControllerWithoutSurfaceIsInactive(t *testing.T) {
	c, err := NewController(testConfig(t), &StaticHost{Width: 1920, Height: 1080}, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if c.Active() {
		t.Fatal("expected inactive controller without a surface")
	}
	c.Start(0)
	c.Dispatch(ResizeEvent{}, 0)
	if c.Update(time.Second) {
		t.Error("inactive controller must not draw")
	}
	if err := c.Close(); err != nil {
		t.Error(err)
	}
}

func TestControllerFrameOrder(t *testing.T) {
	s := &recordingSurface{}
	c := newTestController(t, testConfig(t), &StaticHost{Width: 1920, Height: 1080}, s)

	if c.Mobile() {
		t.Fatal("expected desktop")
	}
	if n := c.Field().Count(); n != 70 {
		t.Fatalf("expected 70 particles, got %d", n)
	}

	var now time.Duration
	c.Start(now)
	if len(s.calls) != 0 {
		t.Fatal("expected no draw on the starting tick")
	}
	for len(s.calls) == 0 {
		now += refresh
		c.Update(now)
	}

	if s.calls[0] != callClear {
		t.Fatal("expected the frame to start with a clear")
	}
	for i := 1; i <= 70; i++ {
		if s.calls[i] != callCircle {
			t.Fatalf("call %d: expected particle circle, got %v", i, s.calls[i])
		}
	}
	for i := 71; i < len(s.calls); i++ {
		if s.calls[i] != callLine {
			t.Fatalf("call %d: expected link line, got %v", i, s.calls[i])
		}
	}
	if got := s.count(callLine); got != c.Links() {
		t.Errorf("expected %d links reported, got %d", got, c.Links())
	}
}

func TestControllerMobileSkipsConnections(t *testing.T) {
	cfg := testConfig(t)
	s := &recordingSurface{}
	host := &StaticHost{Width: 375, Height: 667, Agent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"}
	c := newTestController(t, cfg, host, s)

	if !c.Mobile() {
		t.Fatal("expected mobile from the user agent")
	}
	if n := c.Field().Count(); n != 10 {
		t.Fatalf("expected 10 particles, got %d", n)
	}

	var now time.Duration
	c.Start(now)
	frames := run(c, &now, time.Second)

	// 20fps target on a 60Hz refresh
	if frames < 19 || frames > 20 {
		t.Errorf("expected about 20 frames, got %d", frames)
	}
	if n := s.count(callLine); n != 0 {
		t.Errorf("expected no links on mobile, got %d", n)
	}
	if n := s.count(callCircle); n != frames*10 {
		t.Errorf("expected %d circles, got %d", frames*10, n)
	}
}

func TestControllerHiddenDoesNoWork(t *testing.T) {
	s := &recordingSurface{}
	c := newTestController(t, testConfig(t), &StaticHost{Width: 1280, Height: 720}, s)

	var now time.Duration
	c.Start(now)
	run(c, &now, 500*time.Millisecond)

	c.Dispatch(VisibilityEvent{Hidden: true}, now)
	before := len(s.calls)
	run(c, &now, 5*time.Second)
	if len(s.calls) != before {
		t.Fatalf("expected no draws while hidden, got %d", len(s.calls)-before)
	}
	if c.Scheduler().Registered() {
		t.Error("expected no pending frame callback while hidden")
	}

	c.Dispatch(VisibilityEvent{Hidden: false}, now)
	if got := c.Scheduler().LastFrame(); got != now {
		t.Errorf("expected pacing baseline reset to %v, got %v", now, got)
	}
	if !c.Scheduler().Registered() {
		t.Error("expected the loop to restart on resume")
	}
	resumed := now
	run(c, &now, resumed+200*time.Millisecond)
	if len(s.calls) == before {
		t.Error("expected drawing to resume")
	}
}

func TestControllerResizeBurstSeedsOnce(t *testing.T) {
	s := &recordingSurface{}
	host := &StaticHost{Width: 1920, Height: 1080}
	c := newTestController(t, testConfig(t), host, s)
	c.Start(0)

	ms := time.Millisecond
	for i := 0; i < 5; i++ {
		host.Width = 1000 + i*100 // ends at 1400, still desktop width
		c.Dispatch(ResizeEvent{}, time.Duration(i*25)*ms)
	}

	// Last resize at 100ms settles at 250ms
	c.Update(249 * ms)
	if vp := c.Viewport(); vp.W != 1920 {
		t.Fatalf("expected no reseed before settle, viewport width %v", vp.W)
	}
	c.Update(250 * ms)
	if vp := c.Viewport(); vp.W != 1400 || vp.H != 1080 {
		t.Fatalf("expected 1400x1080 after settle, got %vx%v", vp.W, vp.H)
	}
	// floor(1400*1080/25000) = 60
	if n := c.Field().Count(); n != 60 {
		t.Errorf("expected 60 particles after reseed, got %d", n)
	}

	host.Width = 800
	c.Update(400 * ms)
	if vp := c.Viewport(); vp.W != 1400 {
		t.Error("expected no further reseed without a resize event")
	}
}

func TestControllerTabletTierFollowsWidth(t *testing.T) {
	host := &StaticHost{Width: 1000, Height: 1400}
	c := newTestController(t, testConfig(t), host, &recordingSurface{})

	if c.Mobile() {
		t.Fatal("1000px wide is not mobile")
	}
	if c.Field().Class() != systems.ClassTablet || c.Field().Count() != 40 {
		t.Errorf("expected tablet with 40 particles, got %v with %d", c.Field().Class(), c.Field().Count())
	}

	host.Width = 1920
	c.Dispatch(ResizeEvent{}, 0)
	c.Update(150 * time.Millisecond)
	if c.Field().Class() != systems.ClassDesktop {
		t.Errorf("expected desktop after widening, got %v", c.Field().Class())
	}
}

func TestControllerPointerHook(t *testing.T) {
	c := newTestController(t, testConfig(t), &StaticHost{Width: 1280, Height: 720}, &recordingSurface{})

	c.Dispatch(PointerMoveEvent{X: 10, Y: 20}, 0)
	if !c.Mouse.Present || c.Mouse.X != 10 || c.Mouse.Y != 20 || c.Mouse.Radius != 150 {
		t.Errorf("unexpected pointer %+v", c.Mouse)
	}
	c.Dispatch(PointerLeaveEvent{}, 0)
	if c.Mouse.Present {
		t.Error("expected pointer cleared on leave")
	}

	cfg := testConfig(t)
	cfg.Derived.ForceMobile = true
	m := newTestController(t, cfg, &StaticHost{Width: 1280, Height: 720}, &recordingSurface{})
	m.Dispatch(PointerMoveEvent{X: 10, Y: 20}, 0)
	if m.Mouse.Present {
		t.Error("expected pointer ignored on mobile")
	}
}

func TestControllerUnlockSpawnsBubbles(t *testing.T) {
	s := &recordingSurface{}
	c := newTestController(t, testConfig(t), &StaticHost{Width: 1280, Height: 720}, s)

	var now time.Duration
	c.Start(now)
	c.Gate().SetAnchor(640, 432)
	c.Gate().Input("1923", now)
	if !c.Gate().Unlocked() {
		t.Fatal("expected unlock")
	}

	run(c, &now, 250*time.Millisecond)
	if c.Bubbles().Bursts() != 0 {
		t.Fatal("expected no burst before 300ms")
	}
	run(c, &now, 700*time.Millisecond)
	if c.Bubbles().Bursts() != 1 || c.Bubbles().Active() == 0 {
		t.Errorf("expected a live burst, got %d bursts with %d bubbles", c.Bubbles().Bursts(), c.Bubbles().Active())
	}
	run(c, &now, 4500*time.Millisecond)
	if c.Bubbles().Bursts() != 0 || c.Bubbles().Active() != 0 {
		t.Error("expected the burst to be retired")
	}
	if !c.Gate().Revealed() {
		t.Error("expected locked content to be revealed")
	}
}

func TestControllerSessionRestore(t *testing.T) {
	session := gate.NewSession()
	session.Set(gate.UnlockedKey)

	c, err := NewController(testConfig(t), &StaticHost{Width: 1280, Height: 720}, &recordingSurface{}, Options{Seed: 1, Session: session})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	c.Start(0)
	if !c.Gate().Revealed() {
		t.Error("expected restored session to reveal immediately")
	}
}

func TestControllerWritesTelemetry(t *testing.T) {
	cfg := testConfig(t)
	cfg.Telemetry.LogInterval = time.Second
	dir := filepath.Join(t.TempDir(), "out")

	c, err := NewController(cfg, &StaticHost{Width: 1280, Height: 720}, &systems.NullSurface{}, Options{Seed: 3, OutputDir: dir})
	if err != nil {
		t.Fatal(err)
	}

	var now time.Duration
	c.Start(now)
	run(c, &now, 3*time.Second)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"frames.csv", "perf.csv", "config.yaml"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("expected %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("expected %s to have content", name)
		}
	}
}
