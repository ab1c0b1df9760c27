// Package highscore keeps the top-N list of scores in a key-value store.
package highscore

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultKey and DefaultLimit match the shipped configuration.
const (
	DefaultKey   = "highscores"
	DefaultLimit = 5
)

// KV is a string-keyed byte store.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// MemoryKV is an in-process KV.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryKV creates an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put stores a copy of value.
func (m *MemoryKV) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Insert returns list with score added, sorted descending and truncated to
// limit entries. The input slice is not modified.
func Insert(list []int, score, limit int) []int {
	out := make([]int, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, score)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Table is the persisted list. It is safe for concurrent use.
type Table struct {
	mu     sync.Mutex
	kv     KV
	key    string
	limit  int
	logger *log.Logger
}

// NewTable binds a list to a key in kv. An empty key or non-positive limit
// falls back to the defaults; a nil logger discards output.
func NewTable(kv KV, key string, limit int, logger *log.Logger) *Table {
	if key == "" {
		key = DefaultKey
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Table{kv: kv, key: key, limit: limit, logger: logger}
}

// Key returns the storage key.
func (t *Table) Key() string {
	return t.key
}

// Limit returns the maximum list length.
func (t *Table) Limit() int {
	return t.limit
}

// Load returns the stored list. Missing or unreadable data yields an empty
// list; the problem is logged, never returned.
func (t *Table) Load() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load()
}

func (t *Table) load() []int {
	data, ok, err := t.kv.Get(t.key)
	if err != nil {
		t.logger.Warn("high scores unavailable", "key", t.key, "err", err)
		return []int{}
	}
	if !ok {
		return []int{}
	}

	var list []int
	if err := json.Unmarshal(data, &list); err != nil {
		t.logger.Warn("discarding unparseable high scores", "key", t.key, "err", err)
		return []int{}
	}
	if list == nil {
		return []int{}
	}
	return list
}

// Record inserts score into the stored list, writes it back and returns
// the new list. The list is returned even when the write fails.
func (t *Table) Record(score int) ([]int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	list := Insert(t.load(), score, t.limit)
	data, err := json.Marshal(list)
	if err != nil {
		return list, fmt.Errorf("highscore: encode: %w", err)
	}
	if err := t.kv.Put(t.key, data); err != nil {
		return list, fmt.Errorf("highscore: store %q: %w", t.key, err)
	}
	t.logger.Debug("high scores updated", "score", score, "top", list)
	return list, nil
}
