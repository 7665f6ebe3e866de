package core

import "fmt"

// Grid is the fixed-size board. Cells are stored in row-major order:
// index = y*width + x. Every in-bounds cell always holds a CellType.
type Grid struct {
	width  int
	height int
	cells  []CellType
}

// NewGrid creates a grid with every cell empty.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]CellType, width*height),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.width + c.X
}

// Get returns the cell type at c.
func (g *Grid) Get(c Coord) (CellType, error) {
	if !g.InBounds(c) {
		return CellEmpty, fmt.Errorf("%w: get %v on %dx%d grid", ErrOutOfBounds, c, g.width, g.height)
	}
	return g.cells[g.index(c)], nil
}

// Set stores t at c.
func (g *Grid) Set(c Coord, t CellType) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: set %v on %dx%d grid", ErrOutOfBounds, c, g.width, g.height)
	}
	g.cells[g.index(c)] = t
	return nil
}

// Count returns the number of cells holding t.
func (g *Grid) Count(t CellType) int {
	n := 0
	for _, cell := range g.cells {
		if cell == t {
			n++
		}
	}
	return n
}

// Coords returns every coordinate holding t, ordered by row then column.
func (g *Grid) Coords(t CellType) []Coord {
	var coords []Coord
	for i, cell := range g.cells {
		if cell == t {
			coords = append(coords, C(i%g.width, i/g.width))
		}
	}
	return coords
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]CellType, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		width:  g.width,
		height: g.height,
		cells:  cells,
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i, cell := range g.cells {
		if cell != other.cells[i] {
			return false
		}
	}
	return true
}
