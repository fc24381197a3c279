// Package editor emulates the write-only host editor: a plain text buffer
// driven purely by key transitions. It stands in for the real editor during
// local play and in end-to-end tests, and is the reference for how emitted
// keystroke scripts land.
package editor

import (
	"strings"
	"sync"

	"github.com/vovakirdan/typetris/internal/keys"
)

// position is a cursor location: line index and byte column.
type position struct {
	line int
	col  int
}

func (p position) before(q position) bool {
	if p.line != q.line {
		return p.line < q.line
	}
	return p.col < q.col
}

// Surface is an editable text buffer implementing keys.Emitter. It models
// the subset of editor behavior the keystroke scripts rely on: character
// insertion, Enter, Backspace, Home/End, Down, Ctrl+Home, Ctrl+A and
// Shift-extended selection. Safe for concurrent use.
type Surface struct {
	mu     sync.Mutex
	lines  []string
	cursor position

	// selection anchor; active while selecting is true
	anchor    position
	selecting bool

	ctrlHeld  bool
	shiftHeld bool
}

// New creates an empty surface with a single empty line.
func New() *Surface {
	return &Surface{lines: []string{""}}
}

// Emit applies one key transition to the buffer.
func (s *Surface) Emit(ev keys.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Key {
	case keys.KeyCtrl:
		s.ctrlHeld = ev.Press
		return
	case keys.KeyShift:
		s.shiftHeld = ev.Press
		return
	}
	if !ev.Press {
		return
	}

	switch {
	case s.ctrlHeld && ev.Key == keys.KeyA:
		s.selectAll()
	case s.ctrlHeld && ev.Key == keys.KeyHome:
		s.moveTo(position{0, 0})
	case ev.Key == keys.KeyHome:
		s.moveTo(position{s.cursor.line, 0})
	case ev.Key == keys.KeyEnd:
		s.moveTo(position{s.cursor.line, len(s.lines[s.cursor.line])})
	case ev.Key == keys.KeyDown:
		s.moveDown()
	case ev.Key == keys.KeyBackspace:
		s.backspace()
	case ev.Key == keys.KeyEnter:
		s.insert("\n")
	default:
		if r := ev.Key.Rune(); r != 0 {
			s.insert(string(r))
		}
	}
}

// Text returns the buffer contents with lines joined by newlines.
func (s *Surface) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.lines, "\n")
}

// Lines returns a copy of the buffer's lines.
func (s *Surface) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Line returns one line of the buffer, or "" when out of range.
func (s *Surface) Line(i int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.lines) {
		return ""
	}
	return s.lines[i]
}

// Reset empties the buffer and releases any held modifiers.
func (s *Surface) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = []string{""}
	s.cursor = position{}
	s.selecting = false
	s.ctrlHeld = false
	s.shiftHeld = false
}

// moveTo moves the cursor, starting or extending a selection while Shift
// is held and dropping it otherwise.
func (s *Surface) moveTo(p position) {
	if s.shiftHeld {
		if !s.selecting {
			s.anchor = s.cursor
			s.selecting = true
		}
	} else {
		s.selecting = false
	}
	s.cursor = p
}

func (s *Surface) moveDown() {
	p := s.cursor
	if p.line+1 < len(s.lines) {
		p.line++
		if p.col > len(s.lines[p.line]) {
			p.col = len(s.lines[p.line])
		}
	} else {
		p.col = len(s.lines[p.line])
	}
	s.moveTo(p)
}

func (s *Surface) selectAll() {
	s.anchor = position{0, 0}
	last := len(s.lines) - 1
	s.cursor = position{last, len(s.lines[last])}
	s.selecting = s.anchor != s.cursor
}

// selection returns the active selection's bounds in document order.
func (s *Surface) selection() (position, position, bool) {
	if !s.selecting || s.anchor == s.cursor {
		return position{}, position{}, false
	}
	if s.anchor.before(s.cursor) {
		return s.anchor, s.cursor, true
	}
	return s.cursor, s.anchor, true
}

// deleteSelection removes the selected span and reports whether there was
// one.
func (s *Surface) deleteSelection() bool {
	from, to, ok := s.selection()
	if !ok {
		return false
	}
	head := s.lines[from.line][:from.col]
	tail := s.lines[to.line][to.col:]
	merged := append([]string{}, s.lines[:from.line]...)
	merged = append(merged, head+tail)
	merged = append(merged, s.lines[to.line+1:]...)
	s.lines = merged
	s.cursor = from
	s.selecting = false
	return true
}

func (s *Surface) backspace() {
	if s.deleteSelection() {
		return
	}
	p := s.cursor
	if p.col > 0 {
		line := s.lines[p.line]
		s.lines[p.line] = line[:p.col-1] + line[p.col:]
		s.cursor.col--
		return
	}
	if p.line == 0 {
		return
	}
	// join with the previous line
	prev := s.lines[p.line-1]
	s.cursor = position{p.line - 1, len(prev)}
	s.lines[p.line-1] = prev + s.lines[p.line]
	s.lines = append(s.lines[:p.line], s.lines[p.line+1:]...)
}

// insert replaces any selection with text, splitting on newlines.
func (s *Surface) insert(text string) {
	s.deleteSelection()
	p := s.cursor
	line := s.lines[p.line]
	head, tail := line[:p.col], line[p.col:]

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		s.lines[p.line] = head + text + tail
		s.cursor.col += len(text)
		return
	}

	merged := append([]string{}, s.lines[:p.line]...)
	merged = append(merged, head+parts[0])
	merged = append(merged, parts[1:len(parts)-1]...)
	last := parts[len(parts)-1]
	merged = append(merged, last+tail)
	merged = append(merged, s.lines[p.line+1:]...)
	s.lines = merged
	s.cursor = position{p.line + len(parts) - 1, len(last)}
}
