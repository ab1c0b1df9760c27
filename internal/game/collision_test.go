package game

import "testing"

func TestCollidesEmptyGrid(t *testing.T) {
	g := NewGrid(10, 20)

	for _, k := range Kinds() {
		p := NewPiece(k, 10)
		for y := 0; y+p.Height() <= 20; y++ {
			for x := 0; x+p.Width() <= 10; x++ {
				p.X, p.Y = x, y
				if Collides(g, p) {
					t.Fatalf("%v at (%d, %d) collides on an empty grid", k, x, y)
				}
			}
		}
	}
}

func TestCollidesWithOccupiedCell(t *testing.T) {
	g := NewGrid(10, 20)
	p := NewPiece(KindT, 10)
	p.X, p.Y = 3, 5

	p.Cells(func(x, y, _ int) {
		g.Set(x, y, 1)
		if !Collides(g, p) {
			t.Errorf("expected collision with occupied cell (%d, %d)", x, y)
		}
		g.Set(x, y, 0)
	})

	// The empty top row of T sits over an occupied cell without colliding.
	g.Set(3, 5, 1)
	if Collides(g, p) {
		t.Error("zero cells in the piece matrix must not collide")
	}
}

func TestCollidesOutOfBounds(t *testing.T) {
	g := NewGrid(10, 20)

	tests := []struct {
		name string
		kind Kind
		x, y int
		want bool
	}{
		{"left wall", KindO, -1, 0, true},
		{"right wall", KindO, 9, 0, true},
		{"floor", KindO, 0, 19, true},
		{"above the top", KindO, 0, -1, true},
		{"flush right", KindO, 8, 0, false},
		{"flush bottom", KindO, 0, 18, false},
		{"empty row above the top", KindI, 0, -1, false},
		{"empty row above the top (T)", KindT, 0, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPiece(tt.kind, 10)
			p.X, p.Y = tt.x, tt.y
			if got := Collides(g, p); got != tt.want {
				t.Errorf("Collides(%v at %d,%d) = %v, expected %v", tt.kind, tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCollidesHasNoSideEffects(t *testing.T) {
	g := NewGrid(4, 4)
	g.Set(1, 1, 1)
	p := NewPiece(KindO, 4)
	before := g.Rows()

	Collides(g, p)

	if g.At(1, 1) != 1 || g.Occupied() != 1 || len(before) != g.Height() {
		t.Error("Collides must not modify the grid")
	}
	if p.X != 1 || p.Y != 0 {
		t.Error("Collides must not move the piece")
	}
}
