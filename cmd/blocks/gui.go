package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/platform/gui"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Play in a desktop window",
	Long: `Open a window with the board drawn as red squares on black.

Controls:
  Enter        - Start
  Left, Right  - Move the piece
  Down         - Drop one row
  Q/Esc        - Quit

Examples:
  blocks gui
  blocks gui --seed 42`,
	Args: cobra.NoArgs,
	RunE: runGUI,
}

func runGUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog := newLogger("blocks-gui", os.Stderr)
	defer closeLog()

	be := openBackend(cfg, logger)
	defer be.Close()

	if err := gui.Run(newSession(cfg, be, logger), cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
