package game

// Board dimensions. The playfield is a fixed 10x10 grid.
const (
	Width  = 10
	Height = 10
)

const fullRow = 1<<Width - 1

// Board is the grid of locked cells. Each row is a bitmask with bit x set
// when column x is occupied. Rows are mutated only by locking a piece or
// removing cleared rows; the whole grid is wiped on top-out or reset.
type Board struct {
	rows [Height]uint16
}

// Occupied reports whether the cell at (x, y) holds a locked block.
// Out-of-bounds coordinates count as occupied.
func (b *Board) Occupied(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return true
	}
	return b.rows[y]&(1<<x) != 0
}

// Row returns the occupancy bitmask for row y.
func (b *Board) Row(y int) uint16 {
	if y < 0 || y >= Height {
		return 0
	}
	return b.rows[y]
}

// Legal reports whether a piece of the given type and rotation fits at
// (x, y): every occupied mask cell must map to an in-bounds, empty board
// cell. There is no partial placement.
func (b *Board) Legal(t PieceType, r Rotation, x, y int) bool {
	m := Shape(t, r)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if !m.Has(col, row) {
				continue
			}
			bx, by := x+col, y+row
			if bx < 0 || bx >= Width || by < 0 || by >= Height {
				return false
			}
			if b.rows[by]&(1<<bx) != 0 {
				return false
			}
		}
	}
	return true
}

// Lock folds the piece's cells into the grid.
func (b *Board) Lock(p Piece) {
	m := p.Mask()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if !m.Has(col, row) {
				continue
			}
			bx, by := p.X+col, p.Y+row
			if bx >= 0 && bx < Width && by >= 0 && by < Height {
				b.rows[by] |= 1 << bx
			}
		}
	}
}

// FullRows returns a bitmask with bit y set for every fully occupied row.
func (b *Board) FullRows() uint16 {
	var mask uint16
	for y := 0; y < Height; y++ {
		if b.rows[y] == fullRow {
			mask |= 1 << y
		}
	}
	return mask
}

// RemoveRows deletes the rows marked in mask, shifting everything above
// them down and zero-filling the vacated rows at the top. Relative order
// of the surviving rows is preserved.
func (b *Board) RemoveRows(mask uint16) {
	dst := Height - 1
	for src := Height - 1; src >= 0; src-- {
		if mask&(1<<src) != 0 {
			continue
		}
		b.rows[dst] = b.rows[src]
		dst--
	}
	for ; dst >= 0; dst-- {
		b.rows[dst] = 0
	}
}

// Wipe clears the entire grid.
func (b *Board) Wipe() {
	b.rows = [Height]uint16{}
}
