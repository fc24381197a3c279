package game

import "math/rand"

// Phase is the coarse state of the session.
type Phase int

const (
	// PhaseFalling: a piece is visible and under player control.
	PhaseFalling Phase = iota
	// PhaseClearing: completed rows are blinking before removal.
	PhaseClearing
	// PhaseDelay: no piece on the board, waiting for the next spawn.
	PhaseDelay
)

// Spawn pose: rotation 0 with the bounding box at the top, roughly centered.
const (
	spawnX = 3
	spawnY = 0
)

// Points awarded per count of rows cleared in a single lock. Counts above
// four clamp to the last entry, although a four-cell piece cannot reach them.
var rowScores = [...]int{0, 100, 300, 500, 800}

func scoreForRows(n int) int {
	if n <= 0 {
		return 0
	}
	if n >= len(rowScores) {
		n = len(rowScores) - 1
	}
	return rowScores[n]
}

// Game holds the complete play state: board, active piece, hold slot, bag,
// counters and the clear animation. It is a pure state machine; all timing
// lives in the scheduler that drives it.
type Game struct {
	board Board
	bag   *Bag
	rng   *rand.Rand

	piece   Piece
	visible bool
	phase   Phase

	holdType PieceType
	hasHold  bool
	holdUsed bool

	score int
	lines int

	clearRows uint16
	blinkStep int

	paused bool
}

// New creates a game seeded for deterministic piece order. The board is
// empty and no piece has spawned yet.
func New(seed int64) *Game {
	g := &Game{}
	g.Reset(seed)
	return g
}

// Reset wipes the board, bag, hold slot, counters and animation state.
func (g *Game) Reset(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
	g.board.Wipe()
	g.bag = NewBag(g.rng)
	g.visible = false
	g.phase = PhaseDelay
	g.hasHold = false
	g.holdUsed = false
	g.score = 0
	g.lines = 0
	g.clearRows = 0
	g.blinkStep = 0
	g.paused = false
}

// Spawn draws the next piece from the bag and places it at the spawn pose.
// If the pose is illegal the board has topped out: the grid, bag and hold
// slot are wiped and a fresh piece spawns on the empty board. Score and
// line counters survive a top-out. Returns true when a top-out happened.
func (g *Game) Spawn() bool {
	t := g.bag.Next()
	topped := false
	if !g.board.Legal(t, 0, spawnX, spawnY) {
		g.topOut()
		t = g.bag.Next()
		topped = true
	}
	g.piece = Piece{Type: t, Rot: 0, X: spawnX, Y: spawnY}
	g.visible = true
	g.phase = PhaseFalling
	g.holdUsed = false
	return topped
}

// topOut is the only failure path: wipe everything that grew during play.
func (g *Game) topOut() {
	g.board.Wipe()
	g.bag.Reset()
	g.hasHold = false
	g.clearRows = 0
	g.blinkStep = 0
}

// Fall descends the piece one row, or locks it when the row below is
// blocked. Returns true when the piece locked.
func (g *Game) Fall() bool {
	if g.phase != PhaseFalling || !g.visible {
		return false
	}
	if g.board.Legal(g.piece.Type, g.piece.Rot, g.piece.X, g.piece.Y+1) {
		g.piece.Y++
		return false
	}
	g.land()
	return true
}

// land folds the piece into the board, scores completed rows and moves to
// either the clear animation or the spawn delay.
func (g *Game) land() int {
	g.board.Lock(g.piece)
	g.visible = false

	rows := g.board.FullRows()
	n := 0
	for m := rows; m != 0; m &= m - 1 {
		n++
	}
	if n > 0 {
		g.score += scoreForRows(n)
		g.lines += n
		g.clearRows = rows
		g.blinkStep = 0
		g.phase = PhaseClearing
	} else {
		g.phase = PhaseDelay
	}
	return n
}

// Move shifts the piece horizontally by dx columns, one column at a time,
// stopping at the first illegal step. Returns true if it moved at all.
func (g *Game) Move(dx int) bool {
	if g.phase != PhaseFalling || !g.visible || dx == 0 {
		return false
	}
	step := 1
	if dx < 0 {
		step = -1
		dx = -dx
	}
	moved := false
	for ; dx > 0; dx-- {
		if !g.board.Legal(g.piece.Type, g.piece.Rot, g.piece.X+step, g.piece.Y) {
			break
		}
		g.piece.X += step
		moved = true
	}
	return moved
}

// Rotate turns the piece one state in the given direction, resolving kicks.
// On failure the piece is unchanged.
func (g *Game) Rotate(clockwise bool) bool {
	if g.phase != PhaseFalling || !g.visible {
		return false
	}
	p, ok := rotated(&g.board, g.piece, clockwise)
	if ok {
		g.piece = p
	}
	return ok
}

// SoftDrop descends one row under player control. Locks like a normal fall
// when the piece cannot descend. Returns true when the piece locked.
func (g *Game) SoftDrop() bool {
	return g.Fall()
}

// HardDrop descends the piece as far as it goes and locks it immediately.
// Returns the number of rows travelled, or -1 when no piece is falling.
func (g *Game) HardDrop() int {
	if g.phase != PhaseFalling || !g.visible {
		return -1
	}
	d := 0
	for g.board.Legal(g.piece.Type, g.piece.Rot, g.piece.X, g.piece.Y+1) {
		g.piece.Y++
		d++
	}
	g.land()
	return d
}

// Hold stashes the falling piece, swapping with the stored one if present.
// Allowed once per spawned piece; the replacement appears at the spawn
// pose. An illegal post-swap placement is treated exactly like a top-out.
// Returns false when the hold was already consumed or no piece is falling.
func (g *Game) Hold() bool {
	if g.phase != PhaseFalling || !g.visible || g.holdUsed {
		return false
	}
	cur := g.piece.Type
	var next PieceType
	if g.hasHold {
		next = g.holdType
	} else {
		next = g.bag.Next()
	}
	g.holdType = cur
	g.hasHold = true
	g.holdUsed = true

	if !g.board.Legal(next, 0, spawnX, spawnY) {
		g.topOut()
		next = g.bag.Next()
	}
	g.piece = Piece{Type: next, Rot: 0, X: spawnX, Y: spawnY}
	return true
}

// AdvanceBlink advances the clear animation one step and returns the new
// step count. The on/off phase is derived from the step parity.
func (g *Game) AdvanceBlink() int {
	if g.phase == PhaseClearing {
		g.blinkStep++
	}
	return g.blinkStep
}

// BlinkOn reports whether marked rows currently show the marker glyph.
func (g *Game) BlinkOn() bool {
	return g.blinkStep%2 == 0
}

// FinishClear compacts the board: marked rows are removed, the rest shift
// down in order, the vacated top rows stay empty.
func (g *Game) FinishClear() {
	if g.phase != PhaseClearing {
		return
	}
	g.board.RemoveRows(g.clearRows)
	g.clearRows = 0
	g.blinkStep = 0
	g.phase = PhaseDelay
}

// TogglePause flips the pause flag and returns the new value. Pausing only
// suspends gravity; animation timers no-op on their own.
func (g *Game) TogglePause() bool {
	g.paused = !g.paused
	return g.paused
}

// Paused reports whether the game is paused.
func (g *Game) Paused() bool { return g.paused }

// Phase returns the coarse session state.
func (g *Game) Phase() Phase { return g.phase }

// ActivePiece returns the falling piece and whether one is visible.
func (g *Game) ActivePiece() (Piece, bool) {
	return g.piece, g.visible
}

// Board exposes the locked grid for rendering and tests.
func (g *Game) Board() *Board { return &g.board }

// ClearRows returns the bitmask of rows pending removal.
func (g *Game) ClearRows() uint16 { return g.clearRows }

// Score returns the internal (unclamped) score counter.
func (g *Game) Score() int { return g.score }

// Lines returns the internal (unclamped) lines-cleared counter.
func (g *Game) Lines() int { return g.lines }

// NextPiece peeks at the upcoming piece for the score-line display.
func (g *Game) NextPiece() PieceType { return g.bag.Peek() }

// HoldPiece returns the stored piece type and whether one is stored.
func (g *Game) HoldPiece() (PieceType, bool) {
	return g.holdType, g.hasHold
}
