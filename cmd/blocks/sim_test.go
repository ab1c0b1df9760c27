package main

import (
	"context"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-blocks/internal/config"
)

func TestSimulateDeterministic(t *testing.T) {
	cfg := config.DefaultBlocksConfig()

	g1, s1, err := simulate(context.Background(), cfg, 7, 3000)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	g2, s2, err := simulate(context.Background(), cfg, 7, 3000)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	if s1 != s2 {
		t.Errorf("stats differ: %+v vs %+v", s1, s2)
	}
	if !reflect.DeepEqual(g1.Snapshot(), g2.Snapshot()) {
		t.Error("same seed produced different boards")
	}
	if s1.Frames != 3000 {
		t.Errorf("Frames = %d, expected 3000", s1.Frames)
	}
	if s1.Locks == 0 {
		t.Error("expected at least one piece to lock in 3000 frames")
	}
}

func TestSimulateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, stats, err := simulate(ctx, config.DefaultBlocksConfig(), 1, 100)
	if err == nil && stats.Frames == 100 {
		t.Error("cancelled simulation should stop early")
	}
}
