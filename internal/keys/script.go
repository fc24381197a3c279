package keys

import "time"

// Line is one surface line queued for replacement.
type Line struct {
	Index int // absolute line index on the surface, 0-based
	Text  string
}

type scriptKind int

const (
	scriptIdle scriptKind = iota
	scriptClear
	scriptFrame
	scriptLine
)

// Replace-line phases, executed strictly in order, one per scheduled step.
type linePhase int

const (
	phaseTop      linePhase = iota // jump to document start
	phaseDown                      // one down-arrow per step until the target line
	phaseHome                      // jump to line start
	phaseShiftOn                   // hold the selection modifier
	phaseEnd                       // jump to line end, selecting the line
	phaseShiftOff                  // release the modifier
	phaseDelete                    // delete the selection
	phaseType                      // type the replacement, one char per step
)

// Engine sequences keystroke scripts. Exactly one script is in flight at a
// time; each Step call performs one keystroke-sized unit of work and
// returns the delay before the next step. Unsupported characters are
// silently skipped while typing.
type Engine struct {
	emitter      Emitter
	keyDelay     time.Duration
	newlineDelay time.Duration

	kind scriptKind

	// clear-surface
	clearStep int
	follow    string // frame text typed after the clear, for full redraws

	// frame / replacement typing
	text string
	pos  int

	// replace-line
	phase     linePhase
	downsLeft int

	// chained replace-line batch
	queue []Line
}

// NewEngine creates a script engine writing to the given emitter.
func NewEngine(e Emitter, keyDelay, newlineDelay time.Duration) *Engine {
	return &Engine{
		emitter:      e,
		keyDelay:     keyDelay,
		newlineDelay: newlineDelay,
	}
}

// Busy reports whether a script is in flight. While busy, no other script
// may start and all game mutations must queue.
func (e *Engine) Busy() bool {
	return e.kind != scriptIdle
}

// StartClear begins the two-step clear-surface script: select all, delete.
func (e *Engine) StartClear() bool {
	if e.Busy() {
		return false
	}
	e.kind = scriptClear
	e.clearStep = 0
	e.follow = ""
	return true
}

// StartRedraw begins a full redraw: clear the surface, then type the whole
// frame blob one character per step.
func (e *Engine) StartRedraw(frame string) bool {
	if e.Busy() {
		return false
	}
	e.kind = scriptClear
	e.clearStep = 0
	e.follow = frame
	return true
}

// StartBatch begins a chained sequence of replace-line scripts, one per
// changed line, in the given order.
func (e *Engine) StartBatch(lines []Line) bool {
	if e.Busy() || len(lines) == 0 {
		return false
	}
	e.queue = append(e.queue[:0], lines[1:]...)
	e.startLine(lines[0])
	return true
}

func (e *Engine) startLine(l Line) {
	e.kind = scriptLine
	e.phase = phaseTop
	e.downsLeft = l.Index
	e.text = l.Text
	e.pos = 0
}

// Reset cancels any in-flight script. A held selection modifier is released
// so the host editor is not left with a stuck key.
func (e *Engine) Reset() {
	if e.kind == scriptLine && (e.phase == phaseEnd || e.phase == phaseShiftOff) {
		e.emitter.Emit(Event{Key: KeyShift, Press: false})
	}
	e.kind = scriptIdle
	e.queue = e.queue[:0]
	e.follow = ""
	e.text = ""
	e.pos = 0
}

// Step executes one script step and returns the delay to schedule before
// the next one. The second result is false once the engine is idle again;
// the caller then runs its input drain.
func (e *Engine) Step() (time.Duration, bool) {
	switch e.kind {
	case scriptIdle:
		return 0, false
	case scriptClear:
		return e.stepClear()
	case scriptFrame:
		return e.stepType(func() (time.Duration, bool) {
			e.kind = scriptIdle
			return 0, false
		})
	case scriptLine:
		return e.stepLine()
	}
	return 0, false
}

func (e *Engine) stepClear() (time.Duration, bool) {
	switch e.clearStep {
	case 0:
		e.emitter.Emit(Event{Key: KeyCtrl, Press: true})
		e.tap(KeyA)
		e.emitter.Emit(Event{Key: KeyCtrl, Press: false})
		e.clearStep = 1
		return e.keyDelay, true
	default:
		e.tap(KeyBackspace)
		if e.follow != "" {
			e.kind = scriptFrame
			e.text = e.follow
			e.follow = ""
			e.pos = 0
			return e.keyDelay, true
		}
		e.kind = scriptIdle
		return 0, false
	}
}

func (e *Engine) stepLine() (time.Duration, bool) {
	switch e.phase {
	case phaseTop:
		e.emitter.Emit(Event{Key: KeyCtrl, Press: true})
		e.tap(KeyHome)
		e.emitter.Emit(Event{Key: KeyCtrl, Press: false})
		if e.downsLeft > 0 {
			e.phase = phaseDown
		} else {
			e.phase = phaseHome
		}
	case phaseDown:
		e.tap(KeyDown)
		e.downsLeft--
		if e.downsLeft == 0 {
			e.phase = phaseHome
		}
	case phaseHome:
		e.tap(KeyHome)
		e.phase = phaseShiftOn
	case phaseShiftOn:
		e.emitter.Emit(Event{Key: KeyShift, Press: true})
		e.phase = phaseEnd
	case phaseEnd:
		e.tap(KeyEnd)
		e.phase = phaseShiftOff
	case phaseShiftOff:
		e.emitter.Emit(Event{Key: KeyShift, Press: false})
		e.phase = phaseDelete
	case phaseDelete:
		e.tap(KeyBackspace)
		e.phase = phaseType
		e.pos = 0
	case phaseType:
		return e.stepType(e.finishLine)
	}
	return e.keyDelay, true
}

// finishLine chains into the next queued replace-line script, or goes idle.
func (e *Engine) finishLine() (time.Duration, bool) {
	if len(e.queue) > 0 {
		next := e.queue[0]
		e.queue = e.queue[1:]
		e.startLine(next)
		return e.keyDelay, true
	}
	e.kind = scriptIdle
	return 0, false
}

// stepType emits the next supported character of e.text, or calls done
// when the text is exhausted.
func (e *Engine) stepType(done func() (time.Duration, bool)) (time.Duration, bool) {
	for e.pos < len(e.text) {
		c := e.text[e.pos]
		e.pos++
		k, ok := CharKey(c)
		if !ok {
			continue
		}
		e.tap(k)
		if c == '\n' {
			return e.newlineDelay, true
		}
		return e.keyDelay, true
	}
	return done()
}

func (e *Engine) tap(k Key) {
	e.emitter.Emit(Event{Key: k, Press: true})
	e.emitter.Emit(Event{Key: k, Press: false})
}
