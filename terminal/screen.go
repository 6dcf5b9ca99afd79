package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Background is the terminal background colour.
var Background = tcell.NewRGBColor(5, 6, 18)

// Host adapts a tcell screen to the size and user agent queries the
// controller needs. Sizes are in virtual pixels.
type Host struct {
	Screen    tcell.Screen
	cellW     int
	cellH     int
	userAgent string
}

// NewScreen creates and initializes a tcell screen with mouse and focus
// reporting enabled.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(Background))
	return screen, nil
}

// NewHost wraps an initialized screen.
func NewHost(screen tcell.Screen, cellWidth, cellHeight int, userAgent string) *Host {
	return &Host{Screen: screen, cellW: cellWidth, cellH: cellHeight, userAgent: userAgent}
}

// Size returns the screen size in virtual pixels.
func (h *Host) Size() (width, height int) {
	cols, rows := h.Screen.Size()
	return cols * h.cellW, rows * h.cellH
}

// UserAgent returns the configured user agent string.
func (h *Host) UserAgent() string {
	return h.userAgent
}

// CellToPixel converts a cell position to the pixel at its centre.
func (h *Host) CellToPixel(col, row int) (x, y float32) {
	return (float32(col) + 0.5) * float32(h.cellW), (float32(row) + 0.5) * float32(h.cellH)
}

// PixelToCell converts a pixel position to the cell that contains it.
func (h *Host) PixelToCell(x, y float32) (col, row int) {
	return int(x) / h.cellW, int(y) / h.cellH
}

// Events forwards screen events into a channel from a reader goroutine.
// The channel closes once the screen is finalized.
func (h *Host) Events() <-chan tcell.Event {
	ch := make(chan tcell.Event, 64)
	go func() {
		defer close(ch)
		for {
			ev := h.Screen.PollEvent()
			if ev == nil {
				return
			}
			ch <- ev
		}
	}()
	return ch
}

// Present copies the canvas into the screen. Text drawn afterwards with
// DrawText overlays it until the next Present.
func Present(screen tcell.Screen, c *Canvas) {
	base := tcell.StyleDefault.Background(Background)
	cols, rows := c.Cells()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r, rgb := c.At(col, row)
			style := base
			if r != ' ' {
				style = base.Foreground(tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B)))
			}
			screen.SetContent(col, row, r, nil, style)
		}
	}
}

// DrawText writes a single line of text starting at col, row and returns
// the column after the last rune. Wide runes take two columns.
func DrawText(screen tcell.Screen, col, row int, text string, style tcell.Style) int {
	for _, r := range text {
		screen.SetContent(col, row, r, nil, style)
		col += max(runewidth.RuneWidth(r), 1)
	}
	return col
}

// TextWidth returns the number of columns text occupies.
func TextWidth(text string) int {
	return runewidth.StringWidth(text)
}
