// Package web serves the read-only HTTP API and the websocket stream
// spectators use to watch running games.
package web

import (
	"sort"
	"sync"
	"time"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-blocks/internal/game"
)

// SessionInfo summarizes a published session.
type SessionInfo struct {
	ID        string    `json:"id"`
	Score     int       `json:"score"`
	Lines     int       `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

type channel struct {
	latest  game.Snapshot
	updated time.Time
	subs    *intmap.Map[int, chan game.Snapshot]
}

// Hub fans snapshots out from game sessions to spectators. Publishing
// never blocks: a slow spectator only ever sees the newest snapshot.
type Hub struct {
	mu       sync.Mutex
	channels map[string]*channel
	nextID   int
	now      func() time.Time
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		channels: make(map[string]*channel),
		now:      time.Now,
	}
}

// Publish records snap as the latest state of session id and forwards it
// to every subscriber.
func (h *Hub) Publish(id string, snap game.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.channels[id]
	if !ok {
		ch = &channel{subs: intmap.New[int, chan game.Snapshot](4)}
		h.channels[id] = ch
	}
	ch.latest = snap
	ch.updated = h.now()

	ch.subs.ForEach(func(_ int, sub chan game.Snapshot) bool {
		offer(sub, snap)
		return true
	})
}

// offer replaces whatever is buffered in sub with snap.
func offer(sub chan game.Snapshot, snap game.Snapshot) {
	select {
	case sub <- snap:
		return
	default:
	}
	select {
	case <-sub:
	default:
	}
	select {
	case sub <- snap:
	default:
	}
}

// Subscribe returns a channel of snapshots for session id, primed with the
// latest one, and a cancel func. The bool is false if the session is
// unknown. The channel is closed when the session is removed or cancel is
// called.
func (h *Hub) Subscribe(id string) (<-chan game.Snapshot, func(), bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.channels[id]
	if !ok {
		return nil, func() {}, false
	}

	subID := h.nextID
	h.nextID++
	sub := make(chan game.Snapshot, 1)
	sub <- ch.latest
	ch.subs.Put(subID, sub)

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.channels[id]; ok && c == ch {
			if s, ok := c.subs.Get(subID); ok {
				c.subs.Del(subID)
				close(s)
			}
		}
	}
	return sub, cancel, true
}

// Remove drops session id and closes its subscribers.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.channels[id]
	if !ok {
		return
	}
	ch.subs.ForEach(func(_ int, sub chan game.Snapshot) bool {
		close(sub)
		return true
	})
	ch.subs.Clear()
	delete(h.channels, id)
}

// Sessions lists published sessions ordered by id.
func (h *Hub) Sessions() []SessionInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]SessionInfo, 0, len(h.channels))
	for id, ch := range h.channels {
		out = append(out, SessionInfo{
			ID:        id,
			Score:     ch.latest.Score,
			Lines:     ch.latest.Lines,
			UpdatedAt: ch.updated,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
