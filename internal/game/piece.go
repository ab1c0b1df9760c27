package game

import "math/rand"

// Kind identifies one of the seven piece shapes.
type Kind byte

const (
	KindI Kind = 'I'
	KindO Kind = 'O'
	KindT Kind = 'T'
	KindS Kind = 'S'
	KindZ Kind = 'Z'
	KindJ Kind = 'J'
	KindL Kind = 'L'
)

// kinds is the catalog order used for random selection.
var kinds = [...]Kind{KindI, KindL, KindJ, KindO, KindT, KindS, KindZ}

var shapes = map[Kind][][]int{
	KindT: {{0, 0, 0}, {1, 1, 1}, {0, 1, 0}},
	KindO: {{1, 1}, {1, 1}},
	KindL: {{0, 0, 1}, {1, 1, 1}},
	KindJ: {{1, 0, 0}, {1, 1, 1}},
	KindI: {{0, 0, 0, 0}, {1, 1, 1, 1}},
	KindS: {{0, 1, 1}, {1, 1, 0}},
	KindZ: {{1, 1, 0}, {0, 1, 1}},
}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	if _, ok := shapes[k]; !ok {
		return "?"
	}
	return string(rune(k))
}

// Kinds returns all piece kinds in catalog order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds[:]...)
}

// ShapeOf returns a fresh copy of the shape matrix for a kind, or nil for
// an unknown kind.
func ShapeOf(k Kind) [][]int {
	m, ok := shapes[k]
	if !ok {
		return nil
	}
	return cloneMatrix(m)
}

// RandomKind picks a kind uniformly at random.
func RandomKind(rng *rand.Rand) Kind {
	return kinds[rng.Intn(len(kinds))]
}

// Piece is the falling shape: its cell matrix and its offset in grid
// coordinates. Pieces cannot rotate.
type Piece struct {
	Kind   Kind
	Matrix [][]int
	X, Y   int
}

// NewPiece instantiates a kind at the top of a grid of the given width,
// centered horizontally.
func NewPiece(k Kind, gridWidth int) Piece {
	m := ShapeOf(k)
	return Piece{
		Kind:   k,
		Matrix: m,
		X:      gridWidth/2 - shapeWidth(m)/2,
		Y:      0,
	}
}

// Width returns the number of columns in the piece matrix.
func (p Piece) Width() int {
	return shapeWidth(p.Matrix)
}

// Height returns the number of rows in the piece matrix.
func (p Piece) Height() int {
	return len(p.Matrix)
}

// Cells calls fn with the grid coordinates of every occupied cell.
func (p Piece) Cells(fn func(x, y, v int)) {
	for ly, row := range p.Matrix {
		for lx, v := range row {
			if v != 0 {
				fn(p.X+lx, p.Y+ly, v)
			}
		}
	}
}

// Clone returns a deep copy of the piece.
func (p Piece) Clone() Piece {
	p.Matrix = cloneMatrix(p.Matrix)
	return p
}

func shapeWidth(m [][]int) int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}
