package render

import "github.com/vovakirdan/typetris/internal/game"

// Change is one surface line that differs from its committed value.
type Change struct {
	Line int // absolute surface line index
	Text string
}

// Diff tracks the committed content of every mutable surface line (the
// score line and each board row) and computes capped change batches
// against freshly rendered state.
type Diff struct {
	prevRows  [game.Height]string
	prevScore string
	batchCap  int
}

// NewDiff creates a diff engine with the given batch cap. Until the first
// FullFrame the committed buffers are empty, so every line counts as
// changed.
func NewDiff(batchCap int) *Diff {
	if batchCap <= 0 {
		batchCap = 1
	}
	return &Diff{batchCap: batchCap}
}

// Changes renders the next value of every tracked line and collects the
// ones that differ, score line first, then rows top to bottom. Collected
// lines are committed immediately; anything beyond the batch cap is
// dropped for this pass and reported in the second return value. Dropped
// lines stay uncommitted, so a later pass sees them as changed again.
func (d *Diff) Changes(g *game.Game) ([]Change, int) {
	var batch []Change
	dropped := 0

	add := func(line int, text string, commit func()) {
		if len(batch) >= d.batchCap {
			dropped++
			return
		}
		batch = append(batch, Change{Line: line, Text: text})
		commit()
	}

	if next := ScoreText(g); next != d.prevScore {
		add(ScoreLine, next, func() { d.prevScore = next })
	}
	for y := 0; y < game.Height; y++ {
		next := RowText(g, y)
		if next == d.prevRows[y] {
			continue
		}
		y := y
		add(RowLine(y), next, func() { d.prevRows[y] = next })
	}
	return batch, dropped
}

// FullFrame renders the complete frame blob and commits every line,
// establishing a fresh diff baseline.
func (d *Diff) FullFrame(g *game.Game) string {
	d.prevScore = ScoreText(g)
	for y := 0; y < game.Height; y++ {
		d.prevRows[y] = RowText(g, y)
	}
	return FrameText(g)
}

// Reset forgets the committed baseline, e.g. after the surface was cleared.
func (d *Diff) Reset() {
	d.prevScore = ""
	d.prevRows = [game.Height]string{}
}
