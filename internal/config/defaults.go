package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the built-in configuration.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Timing: TimingConfig{
			DropIntervalMs: 500,
			TickRate:       60,
		},
		Scoring: ScoringConfig{
			PointsPerRow: 10,
		},
		HighScores: HighScoresConfig{
			Key:   "highscores",
			Limit: 5,
		},
		Display: DisplayConfig{
			CellPixels: 20,
			ScoreLabel: "Puntuación: ",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBlocksYAML
}
