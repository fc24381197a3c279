package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/typetris/internal/sched"
)

// PlayKeyMap defines the key bindings for a play session.
type PlayKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	RotateCW  key.Binding
	RotateCCW key.Binding
	SoftDrop  key.Binding
	HardDrop  key.Binding
	Hold      key.Binding
	Pause     key.Binding
	Reset     key.Binding
	Redraw    key.Binding
	Clear     key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.RotateCW, k.SoftDrop, k.HardDrop, k.Hold, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.RotateCW, k.RotateCCW},
		{k.SoftDrop, k.HardDrop, k.Hold},
		{k.Pause, k.Reset, k.Redraw, k.Clear, k.Quit},
	}
}

// DefaultPlayKeyMap returns default key bindings.
func DefaultPlayKeyMap() PlayKeyMap {
	return PlayKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "move right"),
		),
		RotateCW: key.NewBinding(
			key.WithKeys("up", "x"),
			key.WithHelp("up/x", "rotate cw"),
		),
		RotateCCW: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "rotate ccw"),
		),
		SoftDrop: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "soft drop"),
		),
		HardDrop: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "hard drop"),
		),
		Hold: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "hold"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Redraw: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "redraw"),
		),
		Clear: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("bksp", "clear surface"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a core command number.
// Returns the command (ok=false when the key is unbound) and whether it's
// a quit request.
func (k PlayKeyMap) MapKey(msg tea.KeyMsg) (cmd int, ok bool, isQuit bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return 0, false, true
	case key.Matches(msg, k.Left):
		return sched.CmdLeft, true, false
	case key.Matches(msg, k.Right):
		return sched.CmdRight, true, false
	case key.Matches(msg, k.RotateCW):
		return sched.CmdRotateCW, true, false
	case key.Matches(msg, k.RotateCCW):
		return sched.CmdRotateCCW, true, false
	case key.Matches(msg, k.SoftDrop):
		return sched.CmdSoftDrop, true, false
	case key.Matches(msg, k.HardDrop):
		return sched.CmdHardDrop, true, false
	case key.Matches(msg, k.Hold):
		return sched.CmdHold, true, false
	case key.Matches(msg, k.Pause):
		return sched.CmdPause, true, false
	case key.Matches(msg, k.Reset):
		return sched.CmdReset, true, false
	case key.Matches(msg, k.Redraw):
		return sched.CmdRedraw, true, false
	case key.Matches(msg, k.Clear):
		return sched.CmdClear, true, false
	}
	return 0, false, false
}
