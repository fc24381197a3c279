package keys

import (
	"testing"
	"time"
)

// recorder collects emitted events for assertions.
type recorder struct {
	events []Event
}

func (r *recorder) Emit(ev Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) taps() []string {
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		s := ev.Key.String()
		if ev.Press {
			s += "+"
		} else {
			s += "-"
		}
		out = append(out, s)
	}
	return out
}

func sameEvents(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// runAll drives the engine until it reports idle, guarding against a stuck
// script.
func runAll(t *testing.T, e *Engine) {
	t.Helper()
	for i := 0; i < 10000; i++ {
		if _, more := e.Step(); !more {
			return
		}
	}
	t.Fatal("script did not finish")
}

func TestCharKeyMapping(t *testing.T) {
	cases := []struct {
		c  byte
		k  Key
		ok bool
	}{
		{'a', KeyA, true},
		{'z', KeyZ, true},
		{'x', KeyX, true},
		{'0', Key0, true},
		{'9', Key9, true},
		{' ', KeySpace, true},
		{'\n', KeyEnter, true},
		{'.', KeyDot, true},
		{'-', KeyDash, true},
		{'A', KeyNone, false},
		{'!', KeyNone, false},
		{'\t', KeyNone, false},
	}
	for _, c := range cases {
		k, ok := CharKey(c.c)
		if k != c.k || ok != c.ok {
			t.Errorf("CharKey(%q) = %v, %v, want %v, %v", c.c, k, ok, c.k, c.ok)
		}
	}
}

func TestRuneRoundTrip(t *testing.T) {
	for c := byte('a'); c <= 'z'; c++ {
		k, _ := CharKey(c)
		if k.Rune() != rune(c) {
			t.Errorf("Rune(%v) = %q, want %q", k, k.Rune(), c)
		}
	}
	if KeyBackspace.Rune() != 0 || KeyCtrl.Rune() != 0 {
		t.Error("control keys must not map to a rune")
	}
}

func TestClearScript(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec, 18*time.Millisecond, 42*time.Millisecond)

	if !e.StartClear() {
		t.Fatal("StartClear refused on an idle engine")
	}
	if !e.Busy() {
		t.Fatal("engine must be busy after StartClear")
	}
	runAll(t, e)
	if e.Busy() {
		t.Fatal("engine still busy after the script finished")
	}

	want := []string{
		"ctrl+", "a+", "a-", "ctrl-",
		"backspace+", "backspace-",
	}
	if !sameEvents(rec.taps(), want) {
		t.Fatalf("clear events = %v, want %v", rec.taps(), want)
	}
}

func TestRedrawTypesFrameAfterClear(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec, 18*time.Millisecond, 42*time.Millisecond)

	e.StartRedraw("x.\n")
	runAll(t, e)

	want := []string{
		"ctrl+", "a+", "a-", "ctrl-",
		"backspace+", "backspace-",
		"x+", "x-", ".+", ".-", "enter+", "enter-",
	}
	if !sameEvents(rec.taps(), want) {
		t.Fatalf("redraw events = %v, want %v", rec.taps(), want)
	}
}

func TestTypingSkipsUnsupportedChars(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec, time.Millisecond, time.Millisecond)

	e.StartRedraw("a!B\tb")
	runAll(t, e)

	// clear prefix, then only the supported characters
	want := []string{
		"ctrl+", "a+", "a-", "ctrl-",
		"backspace+", "backspace-",
		"a+", "a-", "b+", "b-",
	}
	if !sameEvents(rec.taps(), want) {
		t.Fatalf("events = %v, want %v", rec.taps(), want)
	}
}

func TestNewlineUsesLongerDelay(t *testing.T) {
	rec := &recorder{}
	keyDelay := 18 * time.Millisecond
	nlDelay := 42 * time.Millisecond
	e := NewEngine(rec, keyDelay, nlDelay)

	e.StartRedraw("x\nx")
	var delays []time.Duration
	for {
		d, more := e.Step()
		if !more {
			break
		}
		delays = append(delays, d)
	}

	// steps: select-all, backspace, 'x', '\n', trailing 'x'; the step after
	// the last character reports done with no delay
	want := []time.Duration{keyDelay, keyDelay, keyDelay, nlDelay, keyDelay}
	if len(delays) != len(want) {
		t.Fatalf("delays = %v, want %v", delays, want)
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Fatalf("delay[%d] = %v, want %v", i, delays[i], want[i])
		}
	}
}

func TestReplaceLineSequence(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec, time.Millisecond, time.Millisecond)

	if !e.StartBatch([]Line{{Index: 2, Text: "xy"}}) {
		t.Fatal("StartBatch refused")
	}
	runAll(t, e)

	want := []string{
		"ctrl+", "home+", "home-", "ctrl-",
		"down+", "down-",
		"down+", "down-",
		"home+", "home-",
		"shift+",
		"end+", "end-",
		"shift-",
		"backspace+", "backspace-",
		"x+", "x-", "y+", "y-",
	}
	if !sameEvents(rec.taps(), want) {
		t.Fatalf("replace events = %v, want %v", rec.taps(), want)
	}
}

func TestReplaceLineZeroSkipsDowns(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec, time.Millisecond, time.Millisecond)

	e.StartBatch([]Line{{Index: 0, Text: "x"}})
	runAll(t, e)

	for _, s := range rec.taps() {
		if s == "down+" {
			t.Fatal("line 0 replacement must not emit a down arrow")
		}
	}
}

func TestBatchChainsLines(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec, time.Millisecond, time.Millisecond)

	e.StartBatch([]Line{
		{Index: 1, Text: "a"},
		{Index: 3, Text: "b"},
	})
	runAll(t, e)

	var typed []string
	for _, s := range rec.taps() {
		if s == "a+" || s == "b+" {
			typed = append(typed, s)
		}
	}
	if !sameEvents(typed, []string{"a+", "b+"}) {
		t.Fatalf("typed = %v, want both lines in order", typed)
	}

	// the second replacement restarts from the document top
	tops := 0
	for _, s := range rec.taps() {
		if s == "ctrl+" {
			tops++
		}
	}
	if tops != 2 {
		t.Fatalf("ctrl presses = %d, want 2 (one top jump per line)", tops)
	}
}

func TestStartRefusedWhileBusy(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec, time.Millisecond, time.Millisecond)

	e.StartClear()
	if e.StartClear() || e.StartRedraw("x") || e.StartBatch([]Line{{Index: 0, Text: "x"}}) {
		t.Fatal("a busy engine must refuse new scripts")
	}
}

func TestResetReleasesHeldShift(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec, time.Millisecond, time.Millisecond)

	e.StartBatch([]Line{{Index: 0, Text: "x"}})
	// step through top, home, shift press; shift is now held
	for i := 0; i < 3; i++ {
		e.Step()
	}
	last := rec.events[len(rec.events)-1]
	if last.Key != KeyShift || !last.Press {
		t.Fatalf("expected a held shift, last event = %v", last)
	}

	e.Reset()
	last = rec.events[len(rec.events)-1]
	if last.Key != KeyShift || last.Press {
		t.Fatal("Reset must release the held shift")
	}
	if e.Busy() {
		t.Fatal("engine must be idle after Reset")
	}
}

func TestStepOnIdleEngine(t *testing.T) {
	e := NewEngine(&recorder{}, time.Millisecond, time.Millisecond)
	if _, more := e.Step(); more {
		t.Fatal("Step on an idle engine must report done")
	}
}
