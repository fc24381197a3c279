// Package keys models the outbound keystroke channel: virtual key codes,
// press/release events and the script state machine that sequences them.
// Nothing is ever read back from the host editor; the channel is strictly
// one-way.
package keys

// Key is a virtual key code.
type Key uint8

const (
	KeyNone Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeySpace
	KeyEnter
	KeyDot
	KeyDash

	KeyBackspace
	KeyHome
	KeyEnd
	KeyDown

	KeyCtrl
	KeyShift
)

// Event is one unit on the keystroke channel: a single key going down or up.
type Event struct {
	Key   Key
	Press bool
}

// Emitter is the external primitive that delivers one key transition to the
// host editor. Implementations must be synchronous; the core trusts that an
// emitted event has landed by the time Emit returns.
type Emitter interface {
	Emit(Event)
}

// CharKey maps a printable character to its virtual key. Only the small
// supported set (lowercase letters, digits, space, newline, dot, dash) maps;
// anything else returns false and is skipped by the typing scripts.
func CharKey(c byte) (Key, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return KeyA + Key(c-'a'), true
	case c >= '0' && c <= '9':
		return Key0 + Key(c-'0'), true
	case c == ' ':
		return KeySpace, true
	case c == '\n':
		return KeyEnter, true
	case c == '.':
		return KeyDot, true
	case c == '-':
		return KeyDash, true
	default:
		return KeyNone, false
	}
}

// Rune returns the character a printable key produces, or 0 for control
// and navigation keys.
func (k Key) Rune() rune {
	switch {
	case k >= KeyA && k <= KeyZ:
		return rune('a' + k - KeyA)
	case k >= Key0 && k <= Key9:
		return rune('0' + k - Key0)
	case k == KeySpace:
		return ' '
	case k == KeyEnter:
		return '\n'
	case k == KeyDot:
		return '.'
	case k == KeyDash:
		return '-'
	default:
		return 0
	}
}

func (k Key) String() string {
	if r := k.Rune(); r != 0 {
		if r == '\n' {
			return "enter"
		}
		if r == ' ' {
			return "space"
		}
		return string(r)
	}
	switch k {
	case KeyBackspace:
		return "backspace"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyDown:
		return "down"
	case KeyCtrl:
		return "ctrl"
	case KeyShift:
		return "shift"
	default:
		return "none"
	}
}
