// Package game implements the falling-block engine: the playfield grid, the
// shape catalog, collision testing, and the state machine that drives
// spawning, gravity, locking and row clearing. It has no terminal or
// graphics dependencies; shells drive it through Loop and render from its
// queries.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/config"
)

// Settings are the tunables the engine needs.
type Settings struct {
	Width        int
	Height       int
	DropInterval time.Duration
	PointsPerRow int
}

// DefaultSettings returns a 10x20 board, 500ms gravity, 10 points per row.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.DefaultBlocksConfig())
}

// SettingsFromConfig extracts engine settings from the loaded configuration.
func SettingsFromConfig(cfg config.BlocksConfig) Settings {
	return Settings{
		Width:        cfg.Board.Width,
		Height:       cfg.Board.Height,
		DropInterval: time.Duration(cfg.Timing.DropIntervalMs) * time.Millisecond,
		PointsPerRow: cfg.Scoring.PointsPerRow,
	}
}

// Validate rejects settings that cannot hold a spawned piece.
func (s Settings) Validate() error {
	if s.Width < config.MinBoardWidth || s.Height < config.MinBoardHeight {
		return fmt.Errorf("game: board %dx%d is smaller than %dx%d",
			s.Width, s.Height, config.MinBoardWidth, config.MinBoardHeight)
	}
	if s.DropInterval <= 0 {
		return fmt.Errorf("game: drop interval must be positive, got %v", s.DropInterval)
	}
	if s.PointsPerRow < 0 {
		return fmt.Errorf("game: points per row must not be negative, got %d", s.PointsPerRow)
	}
	return nil
}

// Phase names the state machine's transitions. Only PhaseFalling is ever
// held between calls; the others describe what the last operation went
// through.
type Phase int

const (
	PhaseFalling   Phase = iota // A piece is active and descending
	PhaseLineClear              // The piece locked and rows were swept
	PhaseBoardFull              // A spawn collided: board cleared, score reset, respawned
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseLineClear:
		return "line_clear"
	case PhaseBoardFull:
		return "board_full"
	default:
		return "unknown"
	}
}

// SpawnResult describes what happened when a new piece was placed.
type SpawnResult struct {
	Kind      Kind
	BoardFull bool // The spawn collided and the board was reset
	// FinalScore and FinalLines hold the totals of the round that ended
	// when BoardFull is set.
	FinalScore int
	FinalLines int
}

// DropResult describes the outcome of one gravity step.
type DropResult struct {
	Moved       bool // The piece moved down one row
	Locked      bool // The piece was merged into the grid
	RowsCleared int
	Points      int
	SpawnResult
}

// ScoreChanged reports whether the shell should refresh and persist the
// score: rows were cleared or the board reset the score to zero.
func (r DropResult) ScoreChanged() bool {
	return r.RowsCleared > 0 || r.BoardFull
}

// Game owns the grid, the active piece and the score.
// All methods must be called from a single goroutine.
type Game struct {
	settings Settings
	rng      *rand.Rand

	grid        *Grid
	piece       Piece
	score       int
	lines       int
	dropCounter time.Duration

	spawns      int
	boardResets int
	last        Phase
}

// New creates a game with an empty grid, a score of zero, and a freshly
// spawned piece. Settings that fail validation are replaced by defaults.
func New(settings Settings, rng *rand.Rand) *Game {
	if settings.Validate() != nil {
		settings = DefaultSettings()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := &Game{
		settings: settings,
		rng:      rng,
		grid:     NewGrid(settings.Width, settings.Height),
	}
	g.Spawn()
	return g
}

// Settings returns the settings the game runs with.
func (g *Game) Settings() Settings {
	return g.settings
}

// Grid returns the playfield. Callers must not mutate it.
func (g *Game) Grid() *Grid {
	return g.grid
}

// Piece returns a copy of the active piece.
func (g *Game) Piece() Piece {
	return g.piece.Clone()
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// Lines returns rows cleared since the last board reset.
func (g *Game) Lines() int {
	return g.lines
}

// DropCounter returns the time accumulated toward the next gravity step.
func (g *Game) DropCounter() time.Duration {
	return g.dropCounter
}

// Spawns returns the number of spawn attempts made so far.
func (g *Game) Spawns() int {
	return g.spawns
}

// BoardResets returns how many times a full board forced a reset.
func (g *Game) BoardResets() int {
	return g.boardResets
}

// LastTransition returns the phase the most recent operation went through.
func (g *Game) LastTransition() Phase {
	return g.last
}

// MoveHorizontal shifts the piece one column left (-1) or right (+1).
// The shift is reverted if it collides. Returns whether the piece moved.
func (g *Game) MoveHorizontal(dir int) bool {
	if dir != -1 && dir != 1 {
		return false
	}
	g.piece.X += dir
	if Collides(g.grid, g.piece) {
		g.piece.X -= dir
		return false
	}
	return true
}

// Drop moves the piece down one row. If that collides, the piece is locked
// at its previous row, full rows are swept and scored, and a new piece is
// spawned. The drop counter is reset either way.
func (g *Game) Drop() DropResult {
	defer func() { g.dropCounter = 0 }()

	g.last = PhaseFalling
	g.piece.Y++
	if !Collides(g.grid, g.piece) {
		return DropResult{Moved: true}
	}
	g.piece.Y--

	g.grid.Merge(g.piece)
	rows := g.grid.SweepFullRows()
	points := rows * g.settings.PointsPerRow
	g.score += points
	g.lines += rows
	g.last = PhaseLineClear

	return DropResult{
		Locked:      true,
		RowsCleared: rows,
		Points:      points,
		SpawnResult: g.spawn(),
	}
}

// Spawn replaces the active piece with a random one at the top center.
// If it collides immediately the board is full: the grid is cleared, the
// score reset to zero, and exactly one more piece is spawned.
func (g *Game) Spawn() SpawnResult {
	g.last = PhaseFalling
	return g.spawn()
}

func (g *Game) spawn() SpawnResult {
	g.spawnPiece()
	if !Collides(g.grid, g.piece) {
		return SpawnResult{Kind: g.piece.Kind}
	}

	res := SpawnResult{
		BoardFull:  true,
		FinalScore: g.score,
		FinalLines: g.lines,
	}
	g.grid.Clear()
	g.score = 0
	g.lines = 0
	g.boardResets++
	g.last = PhaseBoardFull

	g.spawnPiece()
	res.Kind = g.piece.Kind
	return res
}

func (g *Game) spawnPiece() {
	g.piece = NewPiece(RandomKind(g.rng), g.grid.Width())
	g.spawns++
}

// Advance adds elapsed frame time to the drop counter and performs a drop
// once the counter exceeds the drop interval. The bool reports whether a
// drop happened.
func (g *Game) Advance(elapsed time.Duration) (DropResult, bool) {
	if elapsed > 0 {
		g.dropCounter += elapsed
	}
	if g.dropCounter > g.settings.DropInterval {
		return g.Drop(), true
	}
	return DropResult{}, false
}
