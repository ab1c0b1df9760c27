package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/game"
	"github.com/vovakirdan/tui-blocks/internal/session"
)

// Model is the Bubble Tea model for one game session.
type Model struct {
	sess     *session.Session
	cfg      config.BlocksConfig
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	theme    Theme
	width    int
	height   int
	quitting bool
}

// NewModel creates a model that drives sess.
func NewModel(sess *session.Session, cfg config.BlocksConfig) Model {
	s := sess.Game().Settings()
	w, h := game.BoardSize(s.Width, s.Height)

	return Model{
		sess:   sess,
		cfg:    cfg,
		screen: core.NewScreen(w, h),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		theme:  DefaultTheme(),
	}
}

// Init starts the frame ticker. Frames are ignored until the game starts.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.Timing.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.sess.Frame(time.Time(msg))
		return m, tickCmd(m.cfg.Timing.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input synchronously.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.sess.Close()
		return m, tea.Quit
	}
	m.sess.Apply(action)
	return m, nil
}

// Session returns the session the model drives.
func (m Model) Session() *session.Session {
	return m.sess
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.sess.Started() {
		return m.viewStart()
	}

	m.screen.Clear()
	m.sess.Game().Render(m.screen, 0, 0)
	board := RenderScreen(m.screen)

	body := lipgloss.JoinHorizontal(lipgloss.Top, board, m.viewPanel())
	return lipgloss.JoinVertical(lipgloss.Left, body, "", m.help.View(m.keys))
}

func (m Model) viewStart() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("BLOCKS"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Prompt.Render("Press Enter to start"))
	b.WriteString("\n\n")
	b.WriteString(m.viewScores())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) viewPanel() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("BLOCKS"))
	b.WriteString("\n\n")
	b.WriteString(ScoreLine(m.theme, m.cfg.Display.ScoreLabel, m.sess.Score()))
	b.WriteString("\n\n")
	b.WriteString(m.viewScores())
	return m.theme.Panel.Render(b.String())
}

func (m Model) viewScores() string {
	var b strings.Builder
	b.WriteString(m.theme.ListHeading.Render("High scores"))
	top := m.sess.TopScores()
	if len(top) == 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.ListEmpty.Render("none yet"))
	}
	for i, s := range top {
		b.WriteString("\n")
		b.WriteString(m.theme.ListEntry.Render(fmt.Sprintf("%d. %d", i+1, s)))
	}
	return b.String()
}

// ScoreLine formats the score display: label followed by the integer.
func ScoreLine(theme Theme, label string, score int) string {
	return theme.ScoreLabel.Render(label) + theme.ScoreValue.Render(fmt.Sprintf("%d", score))
}

// Run starts the Bubble Tea program for the given session.
func Run(sess *session.Session, cfg config.BlocksConfig) error {
	model := NewModel(sess, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

// panelColumns is the width reserved right of the board for the HUD.
const panelColumns = 24

// MinTerminalSize returns the terminal size needed to show a board of the
// given dimensions with its HUD and help line.
func MinTerminalSize(boardWidth, boardHeight int) (int, int) {
	w, h := game.BoardSize(boardWidth, boardHeight)
	return w + panelColumns, h + 2
}
