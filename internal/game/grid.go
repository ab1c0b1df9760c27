package game

// Grid is the fixed-size playfield. A cell value of 0 is empty; any other
// value is occupied. Dimensions never change after creation.
type Grid struct {
	width  int
	height int
	cells  [][]int // cells[y][x], row 0 at the top
}

// NewGrid creates a width x height grid with every cell empty.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:  max(width, 0),
		height: max(height, 0),
	}
	g.cells = make([][]int, g.height)
	for y := range g.cells {
		g.cells[y] = make([]int, g.width)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell value at (x, y), or 0 outside the grid.
func (g *Grid) At(x, y int) int {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.cells[y][x]
}

// Set writes a cell value. Out-of-range coordinates are ignored.
func (g *Grid) Set(x, y, v int) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y][x] = v
}

// IsOccupied reports whether an in-range cell is non-zero.
// The grid only answers for its own coordinates; callers that need
// "outside means blocked" semantics use Collides.
func (g *Grid) IsOccupied(x, y int) bool {
	return g.At(x, y) != 0
}

// Merge writes every non-zero cell of the piece into the grid at the
// piece's offset. Cells outside the grid are skipped.
func (g *Grid) Merge(p Piece) {
	p.Cells(g.Set)
}

// SweepFullRows removes every fully occupied row, inserting an empty row at
// the top for each one, and returns how many rows were removed.
// Rows are scanned bottom to top; after a removal the same y is tested
// again because the row above has shifted into it.
func (g *Grid) SweepFullRows() int {
	cleared := 0
	for y := g.height - 1; y >= 0; {
		if !g.rowFull(y) {
			y--
			continue
		}

		removed := g.cells[y]
		for x := range removed {
			removed[x] = 0
		}
		copy(g.cells[1:y+1], g.cells[:y])
		g.cells[0] = removed
		cleared++
	}
	return cleared
}

func (g *Grid) rowFull(y int) bool {
	if g.width == 0 {
		return false
	}
	for _, v := range g.cells[y] {
		if v == 0 {
			return false
		}
	}
	return true
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = 0
		}
	}
}

// Occupied returns the number of non-zero cells.
func (g *Grid) Occupied() int {
	n := 0
	for y := range g.cells {
		for _, v := range g.cells[y] {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// Rows returns a deep copy of the cell matrix.
func (g *Grid) Rows() [][]int {
	return cloneMatrix(g.cells)
}

func cloneMatrix(m [][]int) [][]int {
	out := make([][]int, len(m))
	for y, row := range m {
		out[y] = append([]int(nil), row...)
	}
	return out
}
