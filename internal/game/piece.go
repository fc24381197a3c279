package game

// PieceType identifies one of the seven tetromino variants.
type PieceType int

const (
	PieceI PieceType = iota
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL

	PieceCount = 7
)

// Glyph returns the single display character used for the next/hold
// indicators on the score line.
func (t PieceType) Glyph() byte {
	switch t {
	case PieceI:
		return 'i'
	case PieceO:
		return 'o'
	case PieceT:
		return 't'
	case PieceS:
		return 's'
	case PieceZ:
		return 'z'
	case PieceJ:
		return 'j'
	case PieceL:
		return 'l'
	default:
		return '?'
	}
}

func (t PieceType) String() string {
	return string(t.Glyph())
}

// Rotation is one of the four rotation states: 0 = spawn, 1 = rotated
// clockwise once, 2 = twice, 3 = counter-clockwise once.
type Rotation int

// CW returns the next rotation state clockwise.
func (r Rotation) CW() Rotation {
	return (r + 1) % 4
}

// CCW returns the next rotation state counter-clockwise.
func (r Rotation) CCW() Rotation {
	return (r + 3) % 4
}

// Mask is a 16-bit occupancy mask over a 4x4 bounding box.
// Bit row*4+col is set when the cell at (col, row) is occupied.
type Mask uint16

// Has reports whether the cell at (col, row) inside the box is occupied.
func (m Mask) Has(col, row int) bool {
	return m&(1<<(row*4+col)) != 0
}

// Bits returns the number of occupied cells.
func (m Mask) Bits() int {
	n := 0
	for b := m; b != 0; b &= b - 1 {
		n++
	}
	return n
}

// Piece is a falling tetromino: type, rotation state, and the position of
// the top-left corner of its 4x4 bounding box on the board.
type Piece struct {
	Type PieceType
	Rot  Rotation
	X    int
	Y    int
}

// Mask returns the occupancy mask for the piece's current rotation.
func (p Piece) Mask() Mask {
	return Shape(p.Type, p.Rot)
}

// Shape returns the occupancy mask for the given type and rotation.
func Shape(t PieceType, r Rotation) Mask {
	return shapes[t][r&3]
}

// Spawn-state shapes. The I piece uses the full 4x4 box, everything else
// the top-left 3x3 sub-box; the O piece sits in columns 1-2 so it stays
// centered. Rotated states are derived once at init by rotating within the
// piece's own box, which reproduces the standard rotation system.
var spawnArt = [PieceCount][4]string{
	PieceI: {
		"....",
		"xxxx",
		"....",
		"....",
	},
	PieceO: {
		".xx.",
		".xx.",
		"....",
		"....",
	},
	PieceT: {
		".x..",
		"xxx.",
		"....",
		"....",
	},
	PieceS: {
		".xx.",
		"xx..",
		"....",
		"....",
	},
	PieceZ: {
		"xx..",
		".xx.",
		"....",
		"....",
	},
	PieceJ: {
		"x...",
		"xxx.",
		"....",
		"....",
	},
	PieceL: {
		"..x.",
		"xxx.",
		"....",
		"....",
	},
}

var shapes [PieceCount][4]Mask

func init() {
	for t := PieceType(0); t < PieceCount; t++ {
		box := 3
		if t == PieceI {
			box = 4
		}
		cells := [4][4]bool{}
		for row, line := range spawnArt[t] {
			for col := range line {
				cells[row][col] = line[col] == 'x'
			}
		}
		for r := Rotation(0); r < 4; r++ {
			var m Mask
			for row := 0; row < 4; row++ {
				for col := 0; col < 4; col++ {
					if cells[row][col] {
						m |= 1 << (row*4 + col)
					}
				}
			}
			shapes[t][r] = m
			if t == PieceO {
				continue // symmetric, all states identical
			}
			// Rotate the box clockwise for the next state.
			next := [4][4]bool{}
			for row := 0; row < box; row++ {
				for col := 0; col < box; col++ {
					if cells[row][col] {
						next[col][box-1-row] = true
					}
				}
			}
			cells = next
		}
	}
}
