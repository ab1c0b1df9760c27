package session

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/game"
	"github.com/vovakirdan/tui-blocks/internal/highscore"
)

type roundLog struct {
	rounds [][2]int
}

func (r *roundLog) SaveRound(score, lines int) (int64, error) {
	r.rounds = append(r.rounds, [2]int{score, lines})
	return int64(len(r.rounds)), nil
}

type fakePublisher struct {
	published map[string]int
	removed   []string
	last      game.Snapshot
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{published: make(map[string]int)}
}

func (p *fakePublisher) Publish(id string, snap game.Snapshot) {
	p.published[id]++
	p.last = snap
}

func (p *fakePublisher) Remove(id string) {
	p.removed = append(p.removed, id)
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, kv highscore.KV) (*Session, *roundLog, *fakePublisher, *game.ManualClock) {
	t.Helper()
	rounds := &roundLog{}
	pub := newFakePublisher()
	clock := game.NewManualClock(epoch)
	s := New(Options{
		ID:        "test",
		Settings:  game.DefaultSettings(),
		Seed:      42,
		Clock:     clock,
		Scores:    highscore.NewTable(kv, highscore.DefaultKey, 5, nil),
		Rounds:    rounds,
		Publisher: pub,
	})
	return s, rounds, pub, clock
}

// fillUnderPiece fills the bottom row except the columns the active
// piece's lowest row will land on, so a straight drop clears it.
func fillUnderPiece(g *game.Game) {
	p := g.Piece()
	bottom := p.Matrix[len(p.Matrix)-1]
	y := g.Grid().Height() - 1
	for x := 0; x < g.Grid().Width(); x++ {
		lx := x - p.X
		if lx >= 0 && lx < len(bottom) && bottom[lx] != 0 {
			continue
		}
		g.Grid().Set(x, y, 1)
	}
}

func TestIgnoresInputBeforeStart(t *testing.T) {
	s, _, pub, clock := newTestSession(t, highscore.NewMemoryKV())
	before := s.Game().Piece()

	assert.False(t, s.Apply(core.ActionMoveLeft))
	assert.False(t, s.Apply(core.ActionSoftDrop))
	clock.Advance(time.Second)
	assert.False(t, s.Frame(clock.Now()).Dropped)

	assert.Equal(t, before, s.Game().Piece())
	assert.False(t, s.Started())
	assert.Zero(t, pub.published["test"])
}

func TestStart(t *testing.T) {
	kv := highscore.NewMemoryKV()
	require.NoError(t, kv.Put(highscore.DefaultKey, []byte("[30,20]")))
	s, _, pub, _ := newTestSession(t, kv)
	spawns := s.Game().Spawns()

	assert.True(t, s.Apply(core.ActionStart))

	assert.True(t, s.Started())
	assert.Equal(t, spawns+1, s.Game().Spawns())
	assert.Equal(t, []int{30, 20}, s.TopScores())
	assert.Equal(t, 1, pub.published["test"])
	assert.Zero(t, s.Score())
}

func TestFrameDrivesGravity(t *testing.T) {
	s, _, pub, clock := newTestSession(t, highscore.NewMemoryKV())
	s.Start()
	y := s.Game().Piece().Y

	clock.Advance(500 * time.Millisecond)
	assert.False(t, s.Frame(clock.Now()).Dropped)
	clock.Advance(time.Millisecond)
	assert.True(t, s.Frame(clock.Now()).Dropped)

	assert.Equal(t, y+1, s.Game().Piece().Y)
	assert.Equal(t, 2, pub.published["test"])
	assert.Equal(t, y+1, pub.last.Piece.Y)
}

func TestClearingRowsRecordsHighScore(t *testing.T) {
	kv := highscore.NewMemoryKV()
	s, _, _, _ := newTestSession(t, kv)
	s.Start()
	fillUnderPiece(s.Game())

	spawns := s.Game().Spawns()
	for i := 0; i < 40 && s.Game().Spawns() == spawns; i++ {
		s.Apply(core.ActionSoftDrop)
	}

	require.Equal(t, 10, s.Score())
	assert.Equal(t, []int{10}, s.TopScores())

	raw, ok, err := kv.Get(highscore.DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	var stored []int
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, []int{10}, stored)
}

func TestLockWithoutClearsDoesNotRecord(t *testing.T) {
	kv := highscore.NewMemoryKV()
	s, _, _, _ := newTestSession(t, kv)
	s.Start()

	spawns := s.Game().Spawns()
	for i := 0; i < 40 && s.Game().Spawns() == spawns; i++ {
		s.Apply(core.ActionSoftDrop)
	}

	_, ok, err := kv.Get(highscore.DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok, "no score change, nothing should be stored")
}

func TestBoardFullSavesRound(t *testing.T) {
	kv := highscore.NewMemoryKV()
	s, rounds, _, _ := newTestSession(t, kv)
	g := s.Game()
	for y := 0; y < 3; y++ {
		for x := 0; x < g.Grid().Width(); x++ {
			g.Grid().Set(x, y, 1)
		}
	}

	s.Start()

	assert.Equal(t, [][2]int{{0, 0}}, rounds.rounds)
	assert.Zero(t, g.Grid().Occupied())
	assert.Equal(t, 1, g.BoardResets())
	assert.Equal(t, []int{0}, s.TopScores(), "the reset score is recorded like a drop-triggered reset")

	raw, ok, err := kv.Get(highscore.DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, "[0]", string(raw))
}

func TestMovePublishesOnlyWhenMoved(t *testing.T) {
	s, _, pub, _ := newTestSession(t, highscore.NewMemoryKV())
	s.Start()

	for range 20 {
		s.Apply(core.ActionMoveLeft)
	}
	count := pub.published["test"]
	assert.False(t, s.Apply(core.ActionMoveLeft), "piece should be against the wall")
	assert.Equal(t, count, pub.published["test"])
	assert.Zero(t, s.Game().Piece().X)
}

func TestClose(t *testing.T) {
	s, _, pub, _ := newTestSession(t, highscore.NewMemoryKV())
	s.Start()
	s.Close()
	s.Close()
	assert.Equal(t, []string{"test"}, pub.removed)

	count := pub.published["test"]
	s.Apply(core.ActionSoftDrop)
	assert.Equal(t, count, pub.published["test"], "closed session must not publish")
}

// gatedPublisher blocks inside Publish until released.
type gatedPublisher struct {
	mu      sync.Mutex
	events  []string
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (p *gatedPublisher) Publish(id string, snap game.Snapshot) {
	p.once.Do(func() { close(p.entered) })
	<-p.release
	p.mu.Lock()
	p.events = append(p.events, "publish")
	p.mu.Unlock()
}

func (p *gatedPublisher) Remove(id string) {
	p.mu.Lock()
	p.events = append(p.events, "remove")
	p.mu.Unlock()
}

func (p *gatedPublisher) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func TestCloseWaitsForInFlightPublish(t *testing.T) {
	pub := &gatedPublisher{entered: make(chan struct{}), release: make(chan struct{})}
	s := New(Options{
		ID:        "p1",
		Settings:  game.DefaultSettings(),
		Seed:      7,
		Clock:     game.NewManualClock(epoch),
		Publisher: pub,
	})

	started := make(chan struct{})
	go func() {
		defer close(started)
		s.Start()
	}()
	<-pub.entered

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		s.Close()
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while a publish was in flight")
	case <-time.After(20 * time.Millisecond):
	}

	close(pub.release)
	<-started
	<-closed
	assert.Equal(t, []string{"publish", "remove"}, pub.Events())

	s.Apply(core.ActionSoftDrop)
	assert.Equal(t, []string{"publish", "remove"}, pub.Events(), "nothing is published after Remove")
}

func TestDefaults(t *testing.T) {
	s := New(Options{Settings: game.DefaultSettings()})
	assert.Equal(t, "local", s.ID())
	assert.Empty(t, s.TopScores())
	s.Close()
}
