package systems

// SpatialGrid buckets particle indices into square cells for broad-phase
// pair culling. The grid does not wrap: links are drawn edge to edge.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	width    float32
	height   float32
	cells    [][]int32 // flat grid of particle index lists
}

// NewSpatialGrid creates a spatial grid covering the given viewport size.
func NewSpatialGrid(width, height, cellSize float32) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int32, cols*rows)
	for i := range cells {
		cells[i] = make([]int32, 0, 8) // pre-allocate small capacity
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		width:    width,
		height:   height,
		cells:    cells,
	}
}

// Covers reports whether the grid was built for the given size and cell.
func (g *SpatialGrid) Covers(width, height, cellSize float32) bool {
	return g.width == width && g.height == height && g.cellSize == cellSize
}

// Clear removes all indices from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds a particle index to the grid at the given position.
func (g *SpatialGrid) Insert(i int32, x, y float32) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], i)
}

// NeighborsInto appends the indices stored in the 3x3 block of cells
// around (x, y) to dst. Any point closer than cellSize on both axes is
// guaranteed to be in that block.
func (g *SpatialGrid) NeighborsInto(dst []int32, x, y float32) []int32 {
	col, row := g.cellCoords(x, y)
	for dr := -1; dr <= 1; dr++ {
		r := row + dr
		if r < 0 || r >= g.rows {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			c := col + dc
			if c < 0 || c >= g.cols {
				continue
			}
			dst = append(dst, g.cells[r*g.cols+c]...)
		}
	}
	return dst
}

// cellCoords returns the clamped cell column and row for a position.
func (g *SpatialGrid) cellCoords(x, y float32) (col, row int) {
	col = int(x / g.cellSize)
	row = int(y / g.cellSize)

	// Clamp to valid range
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// cellIndex returns the flat index for a position.
func (g *SpatialGrid) cellIndex(x, y float32) int {
	col, row := g.cellCoords(x, y)
	return row*g.cols + col
}
