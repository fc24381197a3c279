package game

// Snapshot captures the complete game state for determinism tests and
// debugging.
type Snapshot struct {
	Board     [Height]uint16
	Piece     Piece
	Visible   bool
	Phase     Phase
	Hold      PieceType
	HasHold   bool
	HoldUsed  bool
	Score     int
	Lines     int
	ClearRows uint16
	BlinkStep int
	Paused    bool
}

// Restore loads a previously captured state. The randomizer is not part of
// a snapshot; the bag keeps whatever sequence the game was seeded with.
func (g *Game) Restore(s Snapshot) {
	g.board.rows = s.Board
	g.piece = s.Piece
	g.visible = s.Visible
	g.phase = s.Phase
	g.holdType = s.Hold
	g.hasHold = s.HasHold
	g.holdUsed = s.HoldUsed
	g.score = s.Score
	g.lines = s.Lines
	g.clearRows = s.ClearRows
	g.blinkStep = s.BlinkStep
	g.paused = s.Paused
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Board:     g.board.rows,
		Piece:     g.piece,
		Visible:   g.visible,
		Phase:     g.phase,
		Hold:      g.holdType,
		HasHold:   g.hasHold,
		HoldUsed:  g.holdUsed,
		Score:     g.score,
		Lines:     g.lines,
		ClearRows: g.clearRows,
		BlinkStep: g.blinkStep,
		Paused:    g.paused,
	}
}
