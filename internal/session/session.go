// Package session binds one running game to its persistence and spectators.
// Every shell (terminal, SSH, window) drives a Session: it forwards
// actions and frame timestamps, then renders from the session's game.
package session

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/game"
	"github.com/vovakirdan/tui-blocks/internal/highscore"
)

// RoundSaver stores finished rounds.
type RoundSaver interface {
	SaveRound(score, lines int) (int64, error)
}

// Publisher receives snapshots for spectators.
type Publisher interface {
	Publish(id string, snap game.Snapshot)
	Remove(id string)
}

// Options configure a Session. Only Settings is required; nil Scores
// falls back to an in-memory table.
type Options struct {
	ID        string
	Settings  game.Settings
	Seed      int64 // 0 picks a time-based seed
	Clock     game.Clock
	Scores    *highscore.Table
	Rounds    RoundSaver
	Publisher Publisher
	Logger    *log.Logger
}

// Session is a single player's game. It is not safe for concurrent use;
// the owning shell calls it from its event loop.
type Session struct {
	id     string
	game   *game.Game
	loop   *game.Loop
	scores *highscore.Table
	rounds RoundSaver
	pub    Publisher
	logger *log.Logger

	top     []int
	started bool

	// mu orders publish against Close so no snapshot reaches the
	// publisher after Remove.
	mu     sync.Mutex
	closed bool
}

// New creates a session waiting for the Start action.
func New(opts Options) *Session {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Scores == nil {
		opts.Scores = highscore.NewTable(highscore.NewMemoryKV(), "", 0, opts.Logger)
	}
	if opts.ID == "" {
		opts.ID = "local"
	}

	g := game.New(opts.Settings, rand.New(rand.NewSource(opts.Seed)))
	return &Session{
		id:     opts.ID,
		game:   g,
		loop:   game.NewLoop(g, opts.Clock),
		scores: opts.Scores,
		rounds: opts.Rounds,
		pub:    opts.Publisher,
		logger: opts.Logger.With("session", opts.ID),
		top:    opts.Scores.Load(),
	}
}

// ID returns the session identifier used for spectators.
func (s *Session) ID() string {
	return s.id
}

// Game returns the underlying game for rendering.
func (s *Session) Game() *game.Game {
	return s.game
}

// Started reports whether the Start action has been handled.
func (s *Session) Started() bool {
	return s.started
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.game.Score()
}

// TopScores returns the high-score list as last loaded or recorded.
func (s *Session) TopScores() []int {
	return append([]int(nil), s.top...)
}

// Start spawns a fresh piece, refreshes the high-score list and starts the
// frame loop. Starting again restarts the loop clock.
func (s *Session) Start() {
	res := s.game.Spawn()
	s.top = s.scores.Load()
	if res.BoardFull {
		s.endRound(res)
	}
	s.loop.Start()
	s.started = true
	s.logger.Info("game started", "piece", res.Kind.String())
	s.publish()
}

// Apply handles one action synchronously and reports whether the board
// changed. Movement and drops are ignored until the session has started.
func (s *Session) Apply(a core.Action) bool {
	switch a {
	case core.ActionStart:
		s.Start()
		return true
	case core.ActionMoveLeft, core.ActionMoveRight:
		if !s.started {
			return false
		}
		moved := s.game.MoveHorizontal(a.Direction())
		if moved {
			s.publish()
		}
		return moved
	case core.ActionSoftDrop:
		if !s.started {
			return false
		}
		s.afterDrop(s.game.Drop())
		s.publish()
		return true
	}
	return false
}

// Frame advances gravity to the given frame time.
func (s *Session) Frame(now time.Time) game.FrameResult {
	res := s.loop.Frame(now)
	if res.Dropped {
		s.afterDrop(res.Drop)
		s.publish()
	}
	return res
}

// Close detaches the session from its spectators. Nothing is published
// after Close. It may be called from any goroutine, more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.pub != nil {
		s.pub.Remove(s.id)
	}
}

func (s *Session) afterDrop(res game.DropResult) {
	switch {
	case res.BoardFull:
		s.endRound(res.SpawnResult)
	case res.ScoreChanged():
		s.recordScore()
		s.logger.Debug("rows cleared", "rows", res.RowsCleared, "score", s.game.Score())
	}
}

// endRound stores the finished round and records the reset score.
func (s *Session) endRound(res game.SpawnResult) {
	s.logger.Info("board full", "score", res.FinalScore, "lines", res.FinalLines)
	if s.rounds != nil {
		if _, err := s.rounds.SaveRound(res.FinalScore, res.FinalLines); err != nil {
			s.logger.Warn("could not save round", "err", err)
		}
	}
	s.recordScore()
}

func (s *Session) recordScore() {
	top, err := s.scores.Record(s.game.Score())
	if err != nil {
		s.logger.Warn("could not save high scores", "err", err)
	}
	s.top = top
}

func (s *Session) publish() {
	if s.pub == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.pub.Publish(s.id, s.game.Snapshot())
	}
}
