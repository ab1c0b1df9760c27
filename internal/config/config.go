// Package config provides YAML-based configuration loading for the game
// and its shells.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned (wrapped) by Validate for unusable values.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Minimum board dimensions. The widest piece is 4 cells and the tallest
// is 3, so anything smaller cannot hold a freshly spawned piece.
const (
	MinBoardWidth  = 4
	MinBoardHeight = 3
)

// BlocksConfig contains all configuration for the game.
type BlocksConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	HighScores HighScoresConfig `yaml:"highscores"`
	Display    DisplayConfig    `yaml:"display"`
}

// BoardConfig defines the playfield dimensions in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig defines gravity and frame pacing.
type TimingConfig struct {
	DropIntervalMs int `yaml:"drop_interval_ms"` // Gravity fires once the drop counter exceeds this
	TickRate       int `yaml:"tick_rate"`        // Frames per second requested from the host
}

// ScoringConfig defines score awards.
type ScoringConfig struct {
	PointsPerRow int `yaml:"points_per_row"`
}

// HighScoresConfig defines the persisted top-score list.
type HighScoresConfig struct {
	Key   string `yaml:"key"`
	Limit int    `yaml:"limit"`
}

// DisplayConfig defines how shells present the board.
type DisplayConfig struct {
	CellPixels int    `yaml:"cell_pixels"` // Pixel size of one cell in the graphical shell
	ScoreLabel string `yaml:"score_label"`
}

// Validate checks that the configuration can drive a game.
func (c BlocksConfig) Validate() error {
	switch {
	case c.Board.Width < MinBoardWidth:
		return fmt.Errorf("%w: board width %d < %d", ErrInvalidConfig, c.Board.Width, MinBoardWidth)
	case c.Board.Height < MinBoardHeight:
		return fmt.Errorf("%w: board height %d < %d", ErrInvalidConfig, c.Board.Height, MinBoardHeight)
	case c.Timing.DropIntervalMs <= 0:
		return fmt.Errorf("%w: drop_interval_ms must be positive", ErrInvalidConfig)
	case c.Timing.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate must be positive", ErrInvalidConfig)
	case c.Scoring.PointsPerRow < 0:
		return fmt.Errorf("%w: points_per_row must not be negative", ErrInvalidConfig)
	case c.HighScores.Key == "":
		return fmt.Errorf("%w: highscores key is empty", ErrInvalidConfig)
	case c.HighScores.Limit <= 0:
		return fmt.Errorf("%w: highscores limit must be positive", ErrInvalidConfig)
	case c.Display.CellPixels <= 0:
		return fmt.Errorf("%w: cell_pixels must be positive", ErrInvalidConfig)
	}
	return nil
}
