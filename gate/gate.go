// Package gate implements the numeric-code unlock gate that reveals locked
// content. It is cosmetic: the code ships with the program and grants no
// access to anything.
package gate

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/systems"
)

// HintKind classifies the hint line under the input.
type HintKind int

const (
	HintNone HintKind = iota
	HintError
	HintSuccess
)

// String returns the hint kind name.
func (k HintKind) String() string {
	switch k {
	case HintError:
		return "error"
	case HintSuccess:
		return "success"
	default:
		return "none"
	}
}

// Params holds gate settings.
type Params struct {
	Code        string
	CodeLength  int
	ErrorHint   string
	SuccessHint string
	ErrorClear  time.Duration // Failed value and hint are cleared this long after the attempt
	BubbleDelay time.Duration // Burst starts this long after success
	RevealDelay time.Duration // Locked content opens this long after success
}

// DefaultParams returns the stock gate settings.
func DefaultParams() Params {
	return Params{
		Code:        "1923",
		CodeLength:  4,
		ErrorHint:   "コードが正しくありません",
		SuccessHint: "Access Granted",
		ErrorClear:  1500 * time.Millisecond,
		BubbleDelay: 300 * time.Millisecond,
		RevealDelay: 1000 * time.Millisecond,
	}
}

// ParamsFromConfig converts the gate config section.
func ParamsFromConfig(c config.GateConfig) Params {
	return Params{
		Code:        c.Code,
		CodeLength:  c.CodeLength,
		ErrorHint:   c.ErrorHint,
		SuccessHint: c.SuccessHint,
		ErrorClear:  time.Duration(c.ErrorClearMS) * time.Millisecond,
		BubbleDelay: time.Duration(c.BubbleDelayMS) * time.Millisecond,
		RevealDelay: time.Duration(c.RevealDelayMS) * time.Millisecond,
	}
}

// Hooks are invoked from Input and Update on the caller's goroutine.
// Any of them may be nil.
type Hooks struct {
	OnUnlock  func()             // Unlock signal, fired once
	OnBubbles func(x, y float32) // Burst origin is the input centre
	OnReveal  func()
}

// Gate is the code entry state machine.
type Gate struct {
	params  Params
	session *Session
	hooks   Hooks

	value    []rune
	hint     string
	hintKind HintKind
	disabled bool
	unlocked bool
	revealed bool

	anchorX, anchorY float32

	errorClear  systems.Debouncer
	bubbleTimer systems.Debouncer
	revealTimer systems.Debouncer

	glow  spring
	shake spring
}

// New creates a gate. fps is the rate at which Update is called and drives
// the glow and shake springs.
func New(params Params, session *Session, hooks Hooks, fps int) *Gate {
	if params.CodeLength <= 0 {
		params.CodeLength = len([]rune(params.Code))
	}
	if session == nil {
		session = NewSession()
	}
	return &Gate{
		params:      params,
		session:     session,
		hooks:       hooks,
		value:       make([]rune, 0, params.CodeLength),
		errorClear:  systems.Debouncer{Delay: params.ErrorClear},
		bubbleTimer: systems.Debouncer{Delay: params.BubbleDelay},
		revealTimer: systems.Debouncer{Delay: params.RevealDelay},
		glow:        newSpring(fps, 6.0, 1.0),
		shake:       newSpring(fps, 40.0, 0.15),
	}
}

// SetAnchor sets the input centre used as the bubble origin.
func (g *Gate) SetAnchor(x, y float32) {
	g.anchorX, g.anchorY = x, y
}

// Start restores a previous unlock from the session without animation.
// It reports whether the gate was already unlocked.
func (g *Gate) Start() bool {
	if !g.session.Has(UnlockedKey) {
		return false
	}
	g.disabled = true
	g.unlocked = true
	g.revealed = true
	g.hint, g.hintKind = "", HintNone
	g.glow.snap(1)
	if g.hooks.OnUnlock != nil {
		g.hooks.OnUnlock()
	}
	if g.hooks.OnReveal != nil {
		g.hooks.OnReveal()
	}
	slog.Debug("gate restored from session")
	return true
}

// Input appends typed runes. Non-digits are dropped and the value never
// exceeds the code length. A full-length value triggers an attempt.
func (g *Gate) Input(s string, now time.Duration) {
	if g.disabled {
		return
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		if len(g.value) >= g.params.CodeLength {
			break
		}
		g.value = append(g.value, r)
	}
	if len(g.value) == g.params.CodeLength {
		g.attempt(now)
	}
}

// Backspace removes the last digit.
func (g *Gate) Backspace() {
	if g.disabled || len(g.value) == 0 {
		return
	}
	g.value = g.value[:len(g.value)-1]
}

func (g *Gate) attempt(now time.Duration) {
	if string(g.value) == g.params.Code {
		g.succeed(now)
		return
	}

	g.hint, g.hintKind = g.params.ErrorHint, HintError
	g.shake.kick(-600)
	g.errorClear.Trigger(now)
	slog.Debug("gate attempt rejected")
}

func (g *Gate) succeed(now time.Duration) {
	g.disabled = true
	g.unlocked = true
	g.session.Set(UnlockedKey)
	g.errorClear.Stop()

	g.hint, g.hintKind = g.params.SuccessHint, HintSuccess
	g.glow.target = 1
	g.bubbleTimer.Trigger(now)
	g.revealTimer.Trigger(now)

	if g.hooks.OnUnlock != nil {
		g.hooks.OnUnlock()
	}
	slog.Info("gate unlocked")
}

// Update fires due timers and advances the springs by one frame.
func (g *Gate) Update(now time.Duration) {
	if g.errorClear.Poll(now) {
		g.value = g.value[:0]
		g.hint, g.hintKind = "", HintNone
	}
	if g.bubbleTimer.Poll(now) && g.hooks.OnBubbles != nil {
		g.hooks.OnBubbles(g.anchorX, g.anchorY)
	}
	if g.revealTimer.Poll(now) {
		g.revealed = true
		if g.hooks.OnReveal != nil {
			g.hooks.OnReveal()
		}
	}

	if !g.glow.settled() {
		g.glow.step()
	}
	if !g.shake.settled() {
		g.shake.step()
	}
}

// Value returns the digits entered so far.
func (g *Gate) Value() string { return string(g.value) }

// Hint returns the hint text and its kind.
func (g *Gate) Hint() (string, HintKind) { return g.hint, g.hintKind }

// Disabled reports whether input is ignored.
func (g *Gate) Disabled() bool { return g.disabled }

// Unlocked reports whether the code was accepted in this session.
func (g *Gate) Unlocked() bool { return g.unlocked }

// Revealed reports whether locked content is showing.
func (g *Gate) Revealed() bool { return g.revealed }

// Glow returns the input glow level, rising toward 1 after success.
func (g *Gate) Glow() float32 { return float32(g.glow.pos) }

// ShakeOffset returns the horizontal input offset in pixels.
func (g *Gate) ShakeOffset() float32 { return float32(g.shake.pos) }
