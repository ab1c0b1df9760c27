package game

import (
	"context"
	"sync"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current reading.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// FrameResult reports what one frame did to the game.
type FrameResult struct {
	Elapsed time.Duration
	Dropped bool
	Drop    DropResult
}

// Loop turns a stream of frame timestamps into gravity steps.
// Each frame measures the time since the previous one and feeds it to
// Game.Advance. The host scheduler owns the cadence: it calls Frame or Step
// once per frame, or hands frame signals to Run.
type Loop struct {
	game    *Game
	clock   Clock
	last    time.Time
	started bool
}

// NewLoop binds a loop to a game. A nil clock uses the system clock.
func NewLoop(g *Game, clock Clock) *Loop {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Loop{game: g, clock: clock}
}

// Game returns the game driven by the loop.
func (l *Loop) Game() *Game {
	return l.game
}

// Started reports whether Start has been called.
func (l *Loop) Started() bool {
	return l.started
}

// Start marks the current clock reading as the previous frame, so the first
// frame after it sees only the time that has actually passed.
func (l *Loop) Start() {
	l.last = l.clock.Now()
	l.started = true
}

// Frame advances the game to the given frame time. Frames before Start,
// and frames whose timestamp is earlier than the previous one, contribute
// no elapsed time.
func (l *Loop) Frame(now time.Time) FrameResult {
	if !l.started {
		return FrameResult{}
	}
	elapsed := now.Sub(l.last)
	if elapsed < 0 {
		elapsed = 0
	}
	l.last = now

	drop, dropped := l.game.Advance(elapsed)
	return FrameResult{Elapsed: elapsed, Dropped: dropped, Drop: drop}
}

// Step runs one frame at the clock's current time.
func (l *Loop) Step() FrameResult {
	return l.Frame(l.clock.Now())
}

// Run is the frame loop: it waits for the next frame signal, steps the game
// and hands the result to onFrame, until ctx is cancelled or frames is
// closed. It starts the loop if Start has not been called.
func (l *Loop) Run(ctx context.Context, frames <-chan struct{}, onFrame func(FrameResult)) error {
	if !l.started {
		l.Start()
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-frames:
			if !ok {
				return nil
			}
			res := l.Step()
			if onFrame != nil {
				onFrame(res)
			}
		}
	}
}
