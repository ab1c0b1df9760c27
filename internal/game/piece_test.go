package game

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestShapeCatalog(t *testing.T) {
	tests := []struct {
		kind Kind
		want [][]int
	}{
		{KindT, [][]int{{0, 0, 0}, {1, 1, 1}, {0, 1, 0}}},
		{KindO, [][]int{{1, 1}, {1, 1}}},
		{KindL, [][]int{{0, 0, 1}, {1, 1, 1}}},
		{KindJ, [][]int{{1, 0, 0}, {1, 1, 1}}},
		{KindI, [][]int{{0, 0, 0, 0}, {1, 1, 1, 1}}},
		{KindS, [][]int{{0, 1, 1}, {1, 1, 0}}},
		{KindZ, [][]int{{1, 1, 0}, {0, 1, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := ShapeOf(tt.kind); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ShapeOf(%v) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}

	if len(Kinds()) != 7 {
		t.Errorf("catalog has %d kinds, expected 7", len(Kinds()))
	}
}

func TestShapeOfReturnsCopy(t *testing.T) {
	m := ShapeOf(KindO)
	m[0][0] = 0

	if ShapeOf(KindO)[0][0] != 1 {
		t.Error("mutating a returned shape must not change the catalog")
	}
	if ShapeOf(Kind('X')) != nil {
		t.Error("unknown kind should have no shape")
	}
}

func TestNewPieceCentered(t *testing.T) {
	tests := []struct {
		kind  Kind
		width int
		wantX int
	}{
		{KindT, 10, 4},
		{KindO, 10, 4},
		{KindI, 10, 3},
		{KindS, 10, 4},
		{KindI, 7, 1},
		{KindO, 7, 2},
	}

	for _, tt := range tests {
		p := NewPiece(tt.kind, tt.width)
		if p.X != tt.wantX || p.Y != 0 {
			t.Errorf("NewPiece(%v, %d) at (%d, %d), expected (%d, 0)", tt.kind, tt.width, p.X, p.Y, tt.wantX)
		}
	}
}

func TestRandomKindCoversCatalog(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	counts := make(map[Kind]int)
	const draws = 7000

	for range draws {
		counts[RandomKind(rng)]++
	}

	for _, k := range Kinds() {
		if counts[k] < 800 || counts[k] > 1200 {
			t.Errorf("kind %v drawn %d times out of %d, expected about 1000", k, counts[k], draws)
		}
	}
}

func TestPieceClone(t *testing.T) {
	p := NewPiece(KindT, 10)
	c := p.Clone()
	c.Matrix[1][1] = 0
	c.X++

	if p.Matrix[1][1] != 1 || p.X != 4 {
		t.Error("Clone should not share state with the original")
	}
}
