// blocks is a falling-block puzzle game for the terminal, a desktop window,
// or remote play over SSH.
//
// Usage:
//
//	blocks play     - Play in the terminal
//	blocks gui      - Play in a window
//	blocks serve    - Start SSH server for remote play, plus the spectator API
//	blocks scores   - Show high scores and round history
//	blocks sim      - Run a headless seeded game and print the final board
//
// Global flags:
//
//	--seed <value>   - Set RNG seed for reproducible piece sequences
//	--db <path>      - Set database path (default: ~/.blocks/blocks.db)
//	--config <path>  - Use a custom config YAML
//	--log <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/highscore"
	"github.com/vovakirdan/tui-blocks/internal/session"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Blocks - a falling-block puzzle in your terminal",
	Long: `Blocks drops pieces onto a 10x20 board. Steer them left and right,
push them down, and complete rows to score. When the board fills up it is
cleared and the score starts over.

Available commands:
  play     - Play in the terminal
  gui      - Play in a desktop window
  serve    - Start SSH server and spectator API
  scores   - View high scores and round history
  sim      - Headless seeded run

Examples:
  blocks play
  blocks play --seed 42
  blocks gui
  blocks serve --ssh :2222 --http :8080
  blocks sim --seed 7 --frames 6000`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blocks/blocks.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

func loadConfig() (config.BlocksConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.BlocksConfig{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newLogger writes to --log when set, otherwise to fallback. A nil
// fallback discards. The returned func closes the log file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func()) {
	w, closeFn := fallback, func() {}
	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			w, closeFn = f, func() { f.Close() }
		}
	}
	if w == nil {
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	return logger, closeFn
}

// backend holds the persistence a session needs. store is nil when the
// database could not be opened; play continues with in-memory scores.
type backend struct {
	store  *storage.Store
	scores *highscore.Table
}

func openBackend(cfg config.BlocksConfig, logger *log.Logger) backend {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		store = nil
	}

	var kv highscore.KV = highscore.NewMemoryKV()
	if store != nil {
		kv = store
	}
	return backend{
		store:  store,
		scores: highscore.NewTable(kv, cfg.HighScores.Key, cfg.HighScores.Limit, logger),
	}
}

// rounds returns the round saver, or nil without a database.
func (b backend) rounds() session.RoundSaver {
	if b.store == nil {
		return nil
	}
	return b.store
}

func (b backend) Close() {
	if b.store != nil {
		b.store.Close()
	}
}
