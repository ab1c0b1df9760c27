package game

import (
	"testing"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

func TestBoardSize(t *testing.T) {
	w, h := BoardSize(10, 20)
	if w != 22 || h != 22 {
		t.Errorf("BoardSize(10, 20) = %dx%d, expected 22x22", w, h)
	}
}

func TestRenderDrawsPieceAndStack(t *testing.T) {
	g := newTestGame(1)
	place(g, KindO, 0, 0)
	g.grid.Set(9, 19, 1)

	w, h := BoardSize(10, 20)
	scr := core.NewScreen(w, h)
	g.Render(scr, 0, 0)

	if got := scr.GetCell(0, 0).Rune; got == ' ' || got == 0 {
		t.Error("expected a border at the corner")
	}
	for _, x := range []int{1, 2, 3, 4} {
		c := scr.GetCell(x, 1)
		if c.Rune != blockRune || c.Color != core.ColorRed {
			t.Errorf("cell (%d, 1) = %+v, expected a red block", x, c)
		}
	}
	if scr.GetCell(5, 1).Rune != emptyRune {
		t.Error("column right of the piece should be empty")
	}
	// Grid cell (9, 19) maps to screen columns 19-20, row 20.
	if scr.GetCell(19, 20).Rune != blockRune || scr.GetCell(20, 20).Rune != blockRune {
		t.Error("locked cell not drawn")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := newTestGame(2)
	s := g.Snapshot()

	s.Cells[0][0] = 9
	s.Piece.Matrix[0][0] = 9

	if g.Grid().At(0, 0) != 0 {
		t.Error("mutating a snapshot changed the grid")
	}
	if g.piece.Matrix[0][0] == 9 {
		t.Error("mutating a snapshot changed the piece")
	}
}

func TestSnapshotComposite(t *testing.T) {
	g := newTestGame(3)
	place(g, KindO, 2, 5)
	g.grid.Set(0, 19, 1)

	c := g.Snapshot().Composite()

	for _, pos := range [][2]int{{2, 5}, {3, 5}, {2, 6}, {3, 6}, {0, 19}} {
		if c[pos[1]][pos[0]] == 0 {
			t.Errorf("composite missing cell at (%d, %d)", pos[0], pos[1])
		}
	}
	if g.Grid().Occupied() != 1 {
		t.Error("Composite must not merge the piece into the grid")
	}
}

func TestCellRects(t *testing.T) {
	g := newTestGame(4)
	place(g, KindO, 0, 0)
	g.grid.Set(9, 19, 1)

	rects := CellRects(g.Snapshot(), 20)

	want := []core.Rect{
		{X: 0, Y: 0, W: 20, H: 20},
		{X: 20, Y: 0, W: 20, H: 20},
		{X: 0, Y: 20, W: 20, H: 20},
		{X: 20, Y: 20, W: 20, H: 20},
		{X: 180, Y: 380, W: 20, H: 20},
	}
	if len(rects) != len(want) {
		t.Fatalf("CellRects() returned %d rects, expected %d", len(rects), len(want))
	}
	for i := range want {
		if rects[i] != want[i] {
			t.Errorf("rect %d = %+v, expected %+v", i, rects[i], want[i])
		}
	}

	if w, h := PixelSize(10, 20, 20); w != 200 || h != 400 {
		t.Errorf("PixelSize() = %dx%d, expected 200x400", w, h)
	}
}
