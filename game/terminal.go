package game

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/gate"
	"github.com/pthm-cable/backdrop/terminal"
)

// terminalApp routes tcell events into a controller and paints the canvas
// plus the gate line.
type terminalApp struct {
	cfg    *config.Config
	screen tcell.Screen
	host   *terminal.Host
	canvas *terminal.Canvas
	c      *Controller
}

func newTerminalApp(cfg *config.Config, screen tcell.Screen, opts Options) (*terminalApp, error) {
	host := terminal.NewHost(screen, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight, cfg.Device.UserAgent)
	cols, rows := screen.Size()
	canvas := terminal.NewCanvas(cols, rows, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight)

	c, err := NewController(cfg, host, canvas, opts)
	if err != nil {
		return nil, err
	}
	return &terminalApp{cfg: cfg, screen: screen, host: host, canvas: canvas, c: c}, nil
}

// handle applies one terminal event. Returns true when the user quits.
func (a *terminalApp) handle(ev tcell.Event, now time.Duration) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		cols, rows := ev.Size()
		a.canvas.Resize(cols, rows)
		a.c.Dispatch(ResizeEvent{}, now)

	case *tcell.EventFocus:
		a.c.Dispatch(VisibilityEvent{Hidden: !ev.Focused}, now)

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		if buttons&(tcell.WheelUp|tcell.WheelDown) != 0 {
			a.c.Dispatch(ScrollEvent{}, now)
		}
		col, row := ev.Position()
		x, y := a.host.CellToPixel(col, row)
		a.c.Dispatch(PointerMoveEvent{X: x, Y: y}, now)

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			a.c.Gate().Backspace()
		case tcell.KeyRune:
			a.anchorGate()
			a.c.Gate().Input(string(ev.Rune()), now)
		}
	}
	return false
}

// gateRow is the row the code line sits on, 60% down the screen.
func (a *terminalApp) gateRow() int {
	_, rows := a.screen.Size()
	return rows * 6 / 10
}

func (a *terminalApp) anchorGate() {
	cols, _ := a.screen.Size()
	x, y := a.host.CellToPixel(cols/2, a.gateRow())
	a.c.Gate().SetAnchor(x, y)
}

// tick advances the controller and repaints.
func (a *terminalApp) tick(now time.Duration) {
	a.c.Update(now)
	terminal.Present(a.screen, a.canvas)
	a.drawGate()
	a.screen.Show()
}

func (a *terminalApp) drawGate() {
	g := a.c.Gate()
	cols, _ := a.screen.Size()
	row := a.gateRow()
	base := tcell.StyleDefault.Background(terminal.Background)

	title := a.cfg.Screen.Title
	terminal.DrawText(a.screen, (cols-terminal.TextWidth(title))/2, row-2, title, base.Foreground(tcell.NewRGBColor(0, 243, 255)))

	code := []rune(g.Value())
	for len(code) < a.cfg.Gate.CodeLength {
		code = append(code, '_')
	}
	line := "[ " + spacedRunes(code) + " ]"
	shift := int(g.ShakeOffset()) / max(a.cfg.Terminal.CellWidth, 1)
	glow := int32(120 + 135*g.Glow())
	terminal.DrawText(a.screen, (cols-terminal.TextWidth(line))/2+shift, row, line, base.Foreground(tcell.NewRGBColor(glow, glow, 255)).Bold(true))

	if hint, kind := g.Hint(); hint != "" {
		color := tcell.NewRGBColor(255, 80, 120)
		if kind == gate.HintSuccess {
			color = tcell.NewRGBColor(0, 243, 255)
		}
		terminal.DrawText(a.screen, (cols-terminal.TextWidth(hint))/2, row+2, hint, base.Foreground(color))
	}
	if g.Revealed() {
		terminal.DrawText(a.screen, (cols-terminal.TextWidth(lockedContent))/2, row+4, lockedContent, base.Foreground(tcell.ColorWhite))
	}
}

func spacedRunes(rs []rune) string {
	out := make([]rune, 0, len(rs)*2)
	for i, r := range rs {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, r)
	}
	return string(out)
}

// RunTerminal renders the backdrop as braille in the current terminal until
// Esc or Ctrl-C, or until maxTicks refreshes have passed (0 = unlimited).
func RunTerminal(cfg *config.Config, opts Options, maxTicks int) error {
	screen, err := terminal.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Fini()

	app, err := newTerminalApp(cfg, screen, opts)
	if err != nil {
		return err
	}
	defer app.c.Close()

	events := app.host.Events()
	ticker := time.NewTicker(time.Second / time.Duration(max(cfg.Screen.RefreshFPS, 1)))
	defer ticker.Stop()

	start := time.Now()
	app.c.Start(0)

	for ticks := 0; maxTicks <= 0 || ticks < maxTicks; {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if app.handle(ev, time.Since(start)) {
				return nil
			}
		case <-ticker.C:
			app.tick(time.Since(start))
			ticks++
		}
	}
	return nil
}
