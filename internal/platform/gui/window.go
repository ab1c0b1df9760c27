// Package gui runs the game in a desktop window using Ebiten.
package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/game"
	"github.com/vovakirdan/tui-blocks/internal/session"
)

// panelWidth is the strip right of the board holding score and high scores.
const panelWidth = 160

var (
	background = color.Black
	blockColor = color.RGBA{R: 255, A: 255}
)

// keyCodes maps the arrow keys to the browser key codes the board's
// movement commands are bound to.
var keyCodes = map[ebiten.Key]int{
	ebiten.KeyArrowLeft:  core.KeyCodeLeft,
	ebiten.KeyArrowRight: core.KeyCodeRight,
	ebiten.KeyArrowDown:  core.KeyCodeDown,
}

func actionForKey(k ebiten.Key) core.Action {
	if k == ebiten.KeyEnter {
		return core.ActionStart
	}
	if code, ok := keyCodes[k]; ok {
		return core.ActionForKeyCode(code)
	}
	return core.ActionNone
}

// Window is the ebiten.Game for one session.
type Window struct {
	sess   *session.Session
	cfg    config.BlocksConfig
	clock  game.Clock
	boardW int
	boardH int
}

// NewWindow creates a window sized to the board.
func NewWindow(sess *session.Session, cfg config.BlocksConfig, clock game.Clock) *Window {
	if clock == nil {
		clock = game.SystemClock{}
	}
	s := sess.Game().Settings()
	w, h := game.PixelSize(s.Width, s.Height, cfg.Display.CellPixels)
	return &Window{sess: sess, cfg: cfg, clock: clock, boardW: w, boardH: h}
}

// Update handles input, then advances the frame loop.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.sess.Close()
		return ebiten.Termination
	}
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if a := actionForKey(k); a != core.ActionNone {
			w.sess.Apply(a)
		}
	}
	w.sess.Frame(w.clock.Now())
	return nil
}

// Draw clears to black and paints each occupied cell as a red square.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	cell := w.cfg.Display.CellPixels
	for _, r := range game.CellRects(w.sess.Game().Snapshot(), cell) {
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), blockColor, false)
	}
	vector.StrokeLine(screen, float32(w.boardW)+0.5, 0, float32(w.boardW)+0.5, float32(w.boardH), 1, color.Gray{Y: 80}, false)

	x := w.boardW + 10
	if !w.sess.Started() {
		ebitenutil.DebugPrintAt(screen, "Press Enter\nto start", x, 10)
	} else {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s%d", w.cfg.Display.ScoreLabel, w.sess.Score()), x, 10)
	}

	ebitenutil.DebugPrintAt(screen, "High scores", x, 50)
	for i, s := range w.sess.TopScores() {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d. %d", i+1, s), x, 70+i*16)
	}
}

// Layout keeps a fixed logical size; ebiten scales it to the window.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.boardW + panelWidth, w.boardH
}

// Run opens the window and blocks until it is closed.
func Run(sess *session.Session, cfg config.BlocksConfig) error {
	win := NewWindow(sess, cfg, nil)
	width, height := win.Layout(0, 0)

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Blocks")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Timing.TickRate)

	if err := ebiten.RunGame(win); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}
