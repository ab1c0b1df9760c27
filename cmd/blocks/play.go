package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/game"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  Enter            - Start
  Left/H, Right/L  - Move the piece
  Down/J           - Drop one row
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Examples:
  blocks play
  blocks play --seed 42
  blocks play --config ./wide-board.yaml --log ./blocks.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Warn early if the board cannot fit
	needW, needH := tui.MinTerminalSize(cfg.Board.Width, cfg.Board.Height)
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && (w < needW || h < needH) {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the board needs at least %dx%d\n", w, h, needW, needH)
	}

	logger, closeLog := newLogger("blocks", nil)
	defer closeLog()

	be := openBackend(cfg, logger)
	defer be.Close()

	sess := newSession(cfg, be, logger)
	if err := tui.Run(sess, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// newSession builds a local session from the global flags.
func newSession(cfg config.BlocksConfig, be backend, logger *log.Logger) *session.Session {
	return session.New(session.Options{
		Settings: game.SettingsFromConfig(cfg),
		Seed:     flagSeed,
		Scores:   be.scores,
		Rounds:   be.rounds(),
		Logger:   logger,
	})
}
