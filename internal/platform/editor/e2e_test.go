package editor

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/typetris/internal/config"
	"github.com/vovakirdan/typetris/internal/game"
	"github.com/vovakirdan/typetris/internal/render"
	"github.com/vovakirdan/typetris/internal/sched"
)

func e2eConfig() config.Config {
	cfg := config.Default()
	cfg.Timing.FallIntervalMS = 60000 // keep gravity out of the way
	cfg.Keystrokes.KeyDelayMS = 1
	cfg.Keystrokes.NewlineDelayMS = 1
	return cfg
}

func quiet() *log.Logger {
	l := log.New(io.Discard)
	l.SetLevel(log.FatalLevel)
	return l
}

// mirror replays the same seed on a bare game to produce the frame the
// surface is expected to show.
func mirror(seed int64) *game.Game {
	g := game.New(seed)
	g.Spawn()
	return g
}

func TestFullSessionRendersFrame(t *testing.T) {
	surface := New()
	clock := sched.NewManualClock()
	s := sched.New(surface, clock, e2eConfig(), quiet(), 42)
	s.Start()
	clock.Advance(2 * time.Second)

	want := render.FrameText(mirror(42))
	if got := surface.Text(); got != want {
		t.Fatalf("surface after start:\n%q\nwant:\n%q", got, want)
	}
}

func TestMoveUpdatesOnlyThroughLineReplacement(t *testing.T) {
	surface := New()
	clock := sched.NewManualClock()
	s := sched.New(surface, clock, e2eConfig(), quiet(), 42)
	s.Start()
	clock.Advance(2 * time.Second)

	s.Command(sched.CmdLeft)
	clock.Advance(2 * time.Second)

	g := mirror(42)
	g.Move(-1)
	want := render.FrameText(g)
	if got := surface.Text(); got != want {
		t.Fatalf("surface after move:\n%q\nwant:\n%q", got, want)
	}
}

func TestHardDropLandsOnSurface(t *testing.T) {
	surface := New()
	clock := sched.NewManualClock()
	s := sched.New(surface, clock, e2eConfig(), quiet(), 42)
	s.Start()
	clock.Advance(2 * time.Second)

	s.Command(sched.CmdHardDrop)
	clock.Advance(5 * time.Second)

	// locked cells of the first piece plus the freshly spawned second piece
	g := mirror(42)
	g.HardDrop()
	g.Spawn()
	want := render.FrameText(g)
	if got := surface.Text(); got != want {
		t.Fatalf("surface after hard drop:\n%q\nwant:\n%q", got, want)
	}
}

func TestClearEmptiesSurface(t *testing.T) {
	surface := New()
	clock := sched.NewManualClock()
	s := sched.New(surface, clock, e2eConfig(), quiet(), 42)
	s.Start()
	clock.Advance(2 * time.Second)

	s.Command(sched.CmdClear)
	clock.Advance(time.Second)

	if got := surface.Text(); got != "" {
		t.Fatalf("surface not empty after clear: %q", got)
	}
}

func TestSurfaceShape(t *testing.T) {
	surface := New()
	clock := sched.NewManualClock()
	s := sched.New(surface, clock, e2eConfig(), quiet(), 7)
	s.Start()
	clock.Advance(2 * time.Second)

	lines := surface.Lines()
	// 13 surface lines plus the empty line after the trailing newline
	if len(lines) != render.SurfaceLines+1 {
		t.Fatalf("surface has %d lines, want %d", len(lines), render.SurfaceLines+1)
	}
	if lines[0] != render.Title {
		t.Fatalf("title line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[render.ScoreLine], "score ") {
		t.Fatalf("score line = %q", lines[render.ScoreLine])
	}
	if lines[2] != "" {
		t.Fatalf("separator line = %q, want empty", lines[2])
	}
	for y := 0; y < game.Height; y++ {
		if got := len(lines[render.RowLine(y)]); got != game.Width {
			t.Fatalf("row %d has width %d", y, got)
		}
	}
}
