package game

import (
	"github.com/vovakirdan/tui-blocks/internal/core"
)

// CellColumns is how many terminal columns one grid cell occupies, so that
// cells come out roughly square.
const CellColumns = 2

// Board glyphs.
const (
	blockRune = '█'
	emptyRune = ' '
)

// BoardSize returns the screen size Render needs, border included.
func BoardSize(width, height int) (int, int) {
	return width*CellColumns + 2, height + 2
}

// Render draws the bordered board with the active piece at (x, y).
func (g *Game) Render(dst *core.Screen, x, y int) {
	RenderSnapshot(dst, g.Snapshot(), x, y)
}

// RenderSnapshot draws a snapshot the same way Render draws a live game.
func RenderSnapshot(dst *core.Screen, s Snapshot, x, y int) {
	w, h := BoardSize(s.Width, s.Height)
	dst.DrawBox(core.NewRect(x, y, w, h), core.ColorGray)

	for cy, row := range s.Composite() {
		for cx, v := range row {
			r, c := emptyRune, core.ColorDefault
			if v != 0 {
				r, c = blockRune, core.ColorRed
			}
			for i := range CellColumns {
				dst.SetCell(x+1+cx*CellColumns+i, y+1+cy, r, c)
			}
		}
	}
}

// PixelSize returns the pixel dimensions of a board with cellPixels-sized cells.
func PixelSize(width, height, cellPixels int) (int, int) {
	return width * cellPixels, height * cellPixels
}

// CellRects returns one square per occupied cell of the composited board,
// in pixel coordinates, row by row.
func CellRects(s Snapshot, cellPixels int) []core.Rect {
	var out []core.Rect
	for cy, row := range s.Composite() {
		for cx, v := range row {
			if v != 0 {
				out = append(out, core.NewRect(cx*cellPixels, cy*cellPixels, cellPixels, cellPixels))
			}
		}
	}
	return out
}
