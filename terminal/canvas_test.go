package terminal

import (
	"testing"

	"github.com/pthm-cable/backdrop/components"
)

var white = components.RGB{R: 255, G: 255, B: 255}

func TestCanvasPixelSize(t *testing.T) {
	c := NewCanvas(80, 24, 8, 16)
	w, h := c.PixelSize()
	if w != 640 || h != 384 {
		t.Errorf("expected 640x384, got %dx%d", w, h)
	}
}

func TestFillCircleSetsCentreDot(t *testing.T) {
	tests := []struct {
		name string
		x, y float32
		col  int
		row  int
		want rune
	}{
		// Dots are 4x4 pixels with 8x16 cells
		{"top left dot", 1, 1, 0, 0, brailleBase + 0x01},
		{"top right dot", 5, 1, 0, 0, brailleBase + 0x08},
		{"bottom left dot", 1, 13, 0, 0, brailleBase + 0x40},
		{"second cell", 9, 5, 1, 0, brailleBase + 0x02},
		{"second row", 6, 27, 0, 1, brailleBase + 0x20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(4, 4, 8, 16)
			c.FillCircle(tt.x, tt.y, 0.5, white.WithAlpha(1))
			r, rgb := c.At(tt.col, tt.row)
			if r != tt.want {
				t.Errorf("expected %U, got %U", tt.want, r)
			}
			if rgb != white {
				t.Errorf("expected white, got %v", rgb)
			}
		})
	}
}

func TestFillCircleLargeRadius(t *testing.T) {
	c := NewCanvas(4, 4, 8, 16)
	// Radius 8 around the centre of cell (1,1) covers all of its dots
	c.FillCircle(12, 24, 8, white.WithAlpha(1))
	if r, _ := c.At(1, 1); r != brailleBase+0xFF {
		t.Errorf("expected full cell, got %U", r)
	}
}

func TestStrokeLineHorizontal(t *testing.T) {
	c := NewCanvas(4, 1, 8, 16)
	c.StrokeLine(0, 1, 31, 1, 0.5, white.WithAlpha(1))
	for col := 0; col < 4; col++ {
		if r, _ := c.At(col, 0); r != brailleBase+0x09 {
			t.Errorf("cell %d: expected top row dots %U, got %U", col, brailleBase+0x09, r)
		}
	}
}

func TestFaintDrawsAreDropped(t *testing.T) {
	c := NewCanvas(2, 2, 8, 16)
	c.StrokeLine(0, 0, 15, 31, 0.5, white.WithAlpha(0.001))
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			if r, _ := c.At(col, row); r != ' ' {
				t.Errorf("cell %d,%d: expected empty, got %U", col, row, r)
			}
		}
	}
}

func TestGainBlend(t *testing.T) {
	c := NewCanvas(1, 1, 8, 16)
	// 0.05 alpha with gain 4 composites at 0.2
	c.FillCircle(1, 1, 0.5, components.RGB{R: 100}.WithAlpha(0.05))
	_, rgb := c.At(0, 0)
	if rgb.R != 20 {
		t.Errorf("expected red 20, got %d", rgb.R)
	}
}

func TestClearRegion(t *testing.T) {
	c := NewCanvas(4, 2, 8, 16)
	for col := 0; col < 4; col++ {
		c.FillCircle(float32(col*8+1), 1, 0.5, white.WithAlpha(1))
	}
	c.Clear(0, 0, 16, 16)
	if r, _ := c.At(0, 0); r != ' ' {
		t.Errorf("expected cleared cell, got %U", r)
	}
	if r, _ := c.At(2, 0); r == ' ' {
		t.Error("expected cell outside the region to survive")
	}
}

func TestOutOfBoundsIgnored(t *testing.T) {
	c := NewCanvas(2, 2, 8, 16)
	c.FillCircle(-5, -5, 0.5, white.WithAlpha(1))
	c.FillCircle(100, 100, 0.5, white.WithAlpha(1))
	c.StrokeLine(-50, -50, 200, -10, 0.5, white.WithAlpha(1))
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			if r, _ := c.At(col, row); r != ' ' {
				t.Errorf("cell %d,%d: expected empty, got %U", col, row, r)
			}
		}
	}
}

func TestResizeClears(t *testing.T) {
	c := NewCanvas(2, 2, 8, 16)
	c.FillCircle(1, 1, 0.5, white.WithAlpha(1))
	c.Resize(2, 2)
	if r, _ := c.At(0, 0); r != ' ' {
		t.Errorf("expected resize to clear, got %U", r)
	}
	c.Resize(3, 1)
	if cols, rows := c.Cells(); cols != 3 || rows != 1 {
		t.Errorf("expected 3x1, got %dx%d", cols, rows)
	}
}
