package game

// PieceSnapshot captures the active piece.
type PieceSnapshot struct {
	Kind   string  `json:"kind"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Matrix [][]int `json:"matrix"`
}

// Snapshot captures the complete game state for determinism testing and
// spectators. It shares no memory with the game.
type Snapshot struct {
	Width         int           `json:"width"`
	Height        int           `json:"height"`
	Cells         [][]int       `json:"cells"`
	Piece         PieceSnapshot `json:"piece"`
	Score         int           `json:"score"`
	Lines         int           `json:"lines"`
	Spawns        int           `json:"spawns"`
	BoardResets   int           `json:"board_resets"`
	DropCounterMs int64         `json:"drop_counter_ms"`
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Width:  g.grid.Width(),
		Height: g.grid.Height(),
		Cells:  g.grid.Rows(),
		Piece: PieceSnapshot{
			Kind:   g.piece.Kind.String(),
			X:      g.piece.X,
			Y:      g.piece.Y,
			Matrix: cloneMatrix(g.piece.Matrix),
		},
		Score:         g.score,
		Lines:         g.lines,
		Spawns:        g.spawns,
		BoardResets:   g.boardResets,
		DropCounterMs: g.dropCounter.Milliseconds(),
	}
}

// Composite returns the grid with the active piece painted over it, the way
// a frame shows the board.
func (s Snapshot) Composite() [][]int {
	out := cloneMatrix(s.Cells)
	for ly, row := range s.Piece.Matrix {
		for lx, v := range row {
			x, y := s.Piece.X+lx, s.Piece.Y+ly
			if v != 0 && y >= 0 && y < len(out) && x >= 0 && x < len(out[y]) {
				out[y][x] = v
			}
		}
	}
	return out
}
