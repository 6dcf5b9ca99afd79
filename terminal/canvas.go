// Package terminal renders the backdrop as braille dots in a tcell screen.
package terminal

import (
	"math"

	"github.com/pthm-cable/backdrop/components"
)

// brailleBase is U+2800, the empty braille pattern.
const brailleBase = 0x2800

// dotBits maps a dot inside a cell (column 0-1, row 0-3) to its pattern bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// cell accumulates the dots and colour drawn into one terminal cell.
type cell struct {
	mask    uint8
	r, g, b float32
}

// Canvas is a braille dot raster in virtual pixel coordinates. Each
// terminal cell covers CellWidth x CellHeight pixels and holds 2x4 dots.
type Canvas struct {
	cols, rows int
	cellW      float32
	cellH      float32
	cells      []cell

	// Gain brightens translucent draws so faint links stay visible.
	Gain float32
	// MinAlpha is the weakest effective alpha that still sets a dot.
	MinAlpha float32
}

// NewCanvas creates a canvas for a cols x rows screen.
func NewCanvas(cols, rows, cellWidth, cellHeight int) *Canvas {
	c := &Canvas{
		cellW:    float32(max(cellWidth, 2)),
		cellH:    float32(max(cellHeight, 4)),
		Gain:     4,
		MinAlpha: 0.05,
	}
	c.Resize(cols, rows)
	return c
}

// Resize changes the screen size in cells and clears the canvas.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	n := c.cols * c.rows
	if cap(c.cells) >= n {
		c.cells = c.cells[:n]
		clear(c.cells)
		return
	}
	c.cells = make([]cell, n)
}

// Cells returns the screen size in cells.
func (c *Canvas) Cells() (cols, rows int) {
	return c.cols, c.rows
}

// PixelSize returns the virtual pixel size the canvas covers.
func (c *Canvas) PixelSize() (width, height int) {
	return int(float32(c.cols) * c.cellW), int(float32(c.rows) * c.cellH)
}

func (c *Canvas) dotSize() (float32, float32) {
	return c.cellW / 2, c.cellH / 4
}

// Clear drops every dot whose cell overlaps the region.
func (c *Canvas) Clear(x, y, w, h float32) {
	x0 := clampInt(int(math.Floor(float64(x/c.cellW))), 0, c.cols)
	y0 := clampInt(int(math.Floor(float64(y/c.cellH))), 0, c.rows)
	x1 := clampInt(int(math.Ceil(float64((x+w)/c.cellW))), 0, c.cols)
	y1 := clampInt(int(math.Ceil(float64((y+h)/c.cellH))), 0, c.rows)
	for row := y0; row < y1; row++ {
		clear(c.cells[row*c.cols+x0 : row*c.cols+x1])
	}
}

// FillCircle sets every dot whose centre lies within radius, and always
// the dot under the centre.
func (c *Canvas) FillCircle(x, y, radius float32, col components.RGBA) {
	dw, dh := c.dotSize()
	cx, cy := int(math.Floor(float64(x/dw))), int(math.Floor(float64(y/dh)))
	c.plot(cx, cy, col)

	rx, ry := int(radius/dw)+1, int(radius/dh)+1
	r2 := radius * radius
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			px := (float32(cx+dx) + 0.5) * dw
			py := (float32(cy+dy) + 0.5) * dh
			ex, ey := px-x, py-y
			if ex*ex+ey*ey <= r2 {
				c.plot(cx+dx, cy+dy, col)
			}
		}
	}
}

// StrokeLine samples the segment once per dot step. Width is ignored;
// a dot is the thinnest mark a terminal can show.
func (c *Canvas) StrokeLine(x1, y1, x2, y2, width float32, col components.RGBA) {
	dw, dh := c.dotSize()
	ax, ay := x1/dw, y1/dh
	bx, by := x2/dw, y2/dh
	steps := int(math.Ceil(float64(max(abs(bx-ax), abs(by-ay)))))
	if steps == 0 {
		c.plot(int(math.Floor(float64(ax))), int(math.Floor(float64(ay))), col)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		c.plot(int(math.Floor(float64(ax+(bx-ax)*t))), int(math.Floor(float64(ay+(by-ay)*t))), col)
	}
}

// plot sets one dot and composites the colour into its cell.
func (c *Canvas) plot(dx, dy int, col components.RGBA) {
	if dx < 0 || dy < 0 {
		return
	}
	cx, cy := dx/2, dy/4
	if cx >= c.cols || cy >= c.rows {
		return
	}
	a := col.A * c.Gain
	if a < c.MinAlpha {
		return
	}
	if a > 1 {
		a = 1
	}

	cl := &c.cells[cy*c.cols+cx]
	cl.mask |= dotBits[dx%2][dy%4]
	cl.r += (float32(col.R) - cl.r) * a
	cl.g += (float32(col.G) - cl.g) * a
	cl.b += (float32(col.B) - cl.b) * a
}

// At returns the braille rune and colour of a cell. An empty cell returns
// a space.
func (c *Canvas) At(col, row int) (rune, components.RGB) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return ' ', components.RGB{}
	}
	cl := c.cells[row*c.cols+col]
	if cl.mask == 0 {
		return ' ', components.RGB{}
	}
	return rune(brailleBase + int(cl.mask)), components.RGB{R: uint8(cl.r + 0.5), G: uint8(cl.g + 0.5), B: uint8(cl.b + 0.5)}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
