package game

// Kick offset tables, indexed by the source rotation state. Each entry
// lists five (dx, dy) candidates, zero offset first, tried in order until
// one makes the target rotation legal. Positive dy is downward. The
// clockwise and counter-clockwise tables are independent data and are not
// mirror images of each other.

type kick struct {
	dx, dy int
}

// J, L, S, T, Z pieces.
var kicksCW = [4][5]kick{
	0: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	1: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	2: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	3: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
}

var kicksCCW = [4][5]kick{
	0: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	1: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	2: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	3: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
}

// The long straight piece.
var kicksICW = [4][5]kick{
	0: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
	1: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
	2: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
	3: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
}

var kicksICCW = [4][5]kick{
	0: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
	1: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
	2: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
	3: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
}

// rotated resolves a rotation attempt for p on board b. For the O piece the
// position never moves: the rotation is accepted only if the piece is legal
// in place at the target state. All other pieces walk their kick table and
// commit position and rotation together on the first legal candidate.
// Returns the adjusted piece and whether the rotation succeeded.
func rotated(b *Board, p Piece, clockwise bool) (Piece, bool) {
	target := p.Rot.CCW()
	if clockwise {
		target = p.Rot.CW()
	}

	if p.Type == PieceO {
		if b.Legal(p.Type, target, p.X, p.Y) {
			p.Rot = target
			return p, true
		}
		return p, false
	}

	var table *[4][5]kick
	switch {
	case p.Type == PieceI && clockwise:
		table = &kicksICW
	case p.Type == PieceI:
		table = &kicksICCW
	case clockwise:
		table = &kicksCW
	default:
		table = &kicksCCW
	}

	for _, k := range table[p.Rot] {
		if b.Legal(p.Type, target, p.X+k.dx, p.Y+k.dy) {
			p.Rot = target
			p.X += k.dx
			p.Y += k.dy
			return p, true
		}
	}
	return p, false
}
