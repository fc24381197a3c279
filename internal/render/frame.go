// Package render turns game state into display lines and computes the
// minimal set of changed lines against the last committed redraw. The
// target surface is write-only, so the committed buffers here are the only
// record of what it is believed to show.
package render

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/typetris/internal/game"
)

// Title is the first line of the surface.
const Title = "typetris"

// Surface line layout: title, score line, one blank separator, then the
// board rows.
const (
	ScoreLine = 1
	firstRow  = 3

	// SurfaceLines is the total number of lines a full frame occupies.
	SurfaceLines = firstRow + game.Height
)

// Display clamps: the internal counters keep growing, only the rendered
// text saturates.
const (
	maxScoreShown = 99999
	maxLinesShown = 999
)

const (
	cellEmpty  = '.'
	cellFilled = 'x'
	holdEmpty  = '-'
)

// RowLine maps a board row index to its absolute surface line.
func RowLine(y int) int {
	return firstRow + y
}

// RowText renders board row y: locked cells as the marker glyph, empty
// cells as dots. During the clear animation, marked rows are fully
// overridden by the blink phase and the falling-piece overlay is
// suppressed; otherwise a visible piece overlays its cells.
func RowText(g *game.Game, y int) string {
	row := make([]byte, game.Width)

	clearing := g.Phase() == game.PhaseClearing
	if clearing && g.ClearRows()&(1<<y) != 0 {
		fill := byte(cellEmpty)
		if g.BlinkOn() {
			fill = cellFilled
		}
		for x := range row {
			row[x] = fill
		}
		return string(row)
	}

	b := g.Board()
	for x := 0; x < game.Width; x++ {
		if b.Occupied(x, y) {
			row[x] = cellFilled
		} else {
			row[x] = cellEmpty
		}
	}

	if p, ok := g.ActivePiece(); ok && !clearing {
		m := p.Mask()
		for br := 0; br < 4; br++ {
			if p.Y+br != y {
				continue
			}
			for bc := 0; bc < 4; bc++ {
				if m.Has(bc, br) {
					x := p.X + bc
					if x >= 0 && x < game.Width {
						row[x] = cellFilled
					}
				}
			}
		}
	}
	return string(row)
}

// ScoreText renders the fixed-format status line: clamped score and line
// counters plus one character each for the upcoming and held piece.
func ScoreText(g *game.Game) string {
	hold := byte(holdEmpty)
	if t, ok := g.HoldPiece(); ok {
		hold = t.Glyph()
	}
	return formatScore(g.Score(), g.Lines(), g.NextPiece().Glyph(), hold)
}

func formatScore(score, lines int, next, hold byte) string {
	if score > maxScoreShown {
		score = maxScoreShown
	}
	if lines > maxLinesShown {
		lines = maxLinesShown
	}
	return fmt.Sprintf("score %05d lines %03d next %c hold %c", score, lines, next, hold)
}

// FrameText builds the full-frame blob: title, score line, blank separator
// and every board row, newline-terminated.
func FrameText(g *game.Game) string {
	var sb strings.Builder
	sb.Grow(SurfaceLines * (game.Width + 1))
	sb.WriteString(Title)
	sb.WriteByte('\n')
	sb.WriteString(ScoreText(g))
	sb.WriteString("\n\n")
	for y := 0; y < game.Height; y++ {
		sb.WriteString(RowText(g, y))
		sb.WriteByte('\n')
	}
	return sb.String()
}
