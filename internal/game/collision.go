package game

// Collides reports whether any occupied cell of the piece lies outside the
// grid or on an occupied grid cell. Walls, floor, ceiling and the stack are
// all the same kind of obstruction. It has no side effects.
func Collides(g *Grid, p Piece) bool {
	for ly, row := range p.Matrix {
		for lx, v := range row {
			if v == 0 {
				continue
			}
			gx, gy := p.X+lx, p.Y+ly
			if !g.InBounds(gx, gy) || g.IsOccupied(gx, gy) {
				return true
			}
		}
	}
	return false
}
