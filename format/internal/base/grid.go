package base

import "fmt"

// Grid is a dense buffer of palette indices with shape (length, height, width),
// addressed by (x, y, z). Cells are laid out z fastest, then y, then x, which
// is the order the block and biome data arrays are written in.
type Grid struct {
	width, height, length int
	cells                 []int32
}

// NewGrid creates a zero-filled grid.
func NewGrid(width, height, length int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		length: length,
		cells:  make([]int32, width*height*length),
	}
}

// Shape returns the grid dimensions as (length, height, width).
func (g *Grid) Shape() [3]int {
	return [3]int{g.length, g.height, g.width}
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Contains reports whether (x, y, z) addresses a cell.
func (g *Grid) Contains(x, y, z int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height && z >= 0 && z < g.length
}

func (g *Grid) offset(x, y, z int) int {
	return x*g.height*g.length + y*g.length + z
}

// At returns the cell at (x, y, z). The coordinates must be in bounds.
func (g *Grid) At(x, y, z int) int {
	return int(g.cells[g.offset(x, y, z)])
}

// Set stores v at (x, y, z). The coordinates must be in bounds.
func (g *Grid) Set(x, y, z, v int) {
	g.cells[g.offset(x, y, z)] = int32(v)
}

// Flat returns a copy of the cells in storage order.
func (g *Grid) Flat() []int {
	out := make([]int, len(g.cells))
	for i, v := range g.cells {
		out[i] = int(v)
	}
	return out
}

// Fill replaces every cell from values, which must hold exactly Len() entries.
func (g *Grid) Fill(values []int) error {
	if len(values) != len(g.cells) {
		return fmt.Errorf("%w: cannot reshape %d values into %v", ErrMalformedFile, len(values), g.Shape())
	}
	for i, v := range values {
		g.cells[i] = int32(v)
	}
	return nil
}

// Equal reports whether both grids have the same shape and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g.Shape() != o.Shape() {
		return false
	}
	for i, v := range g.cells {
		if o.cells[i] != v {
			return false
		}
	}
	return true
}
