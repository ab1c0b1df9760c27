package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-blocks/internal/highscore"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Put("highscores", []byte("[10]")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	v, ok, err := store.Get("highscores")
	if err != nil || !ok || string(v) != "[10]" {
		t.Errorf("Get() = %q, %v, %v; expected [10]", v, ok, err)
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := openTestStore(t)

	v, ok, err := store.Get("nope")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if ok || v != nil {
		t.Errorf("Get() of a missing key = %q, %v", v, ok)
	}
}

func TestStorePutOverwrites(t *testing.T) {
	store := openTestStore(t)

	for _, v := range []string{"[1]", "[2,1]"} {
		if err := store.Put("k", []byte(v)); err != nil {
			t.Fatalf("Put(%s) failed: %v", v, err)
		}
	}

	v, _, err := store.Get("k")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(v) != "[2,1]" {
		t.Errorf("Get() = %s, expected the latest value", v)
	}
}

func TestStoreBacksHighScoreTable(t *testing.T) {
	store := openTestStore(t)
	tbl := highscore.NewTable(store, "highscores", 5, nil)

	for _, s := range []int{20, 50, 10} {
		if _, err := tbl.Record(s); err != nil {
			t.Fatalf("Record(%d) failed: %v", s, err)
		}
	}

	got := highscore.NewTable(store, "highscores", 5, nil).Load()
	want := []int{50, 20, 10}
	if len(got) != len(want) {
		t.Fatalf("Load() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Load()[%d] = %d, expected %d", i, got[i], want[i])
		}
	}
}

func TestStoreRounds(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []struct{ score, lines int }{{100, 10}, {50, 5}, {200, 20}} {
		if _, err := store.SaveRound(r.score, r.lines); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	rounds, err := store.RecentRounds(2)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("Expected 2 rounds, got %d", len(rounds))
	}
	// Same-second inserts fall back to id order
	if rounds[0].Score != 200 || rounds[1].Score != 50 {
		t.Errorf("Expected newest first, got %+v", rounds)
	}
	if rounds[0].CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Rounds != 0 || stats.BestScore != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveRound(30, 3) //nolint:errcheck
	store.SaveRound(90, 9) //nolint:errcheck

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Rounds != 2 {
		t.Errorf("Expected 2 rounds, got %d", stats.Rounds)
	}
	if stats.BestScore != 90 {
		t.Errorf("Expected best score 90, got %d", stats.BestScore)
	}
	if stats.AvgScore != 60 {
		t.Errorf("Expected average 60, got %f", stats.AvgScore)
	}
	if stats.TotalLines != 12 {
		t.Errorf("Expected 12 lines, got %d", stats.TotalLines)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected last played to be set")
	}
}
