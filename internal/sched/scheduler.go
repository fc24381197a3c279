// Package sched multiplexes the game's four timers and the keystroke
// script engine over the one contended resource: the outbound keystroke
// channel. All work happens as short serialized steps; every state-mutating
// entry point checks the shared busy condition first and queues its effect
// when the channel is taken.
package sched

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/typetris/internal/config"
	"github.com/vovakirdan/typetris/internal/game"
	"github.com/vovakirdan/typetris/internal/keys"
	"github.com/vovakirdan/typetris/internal/render"
)

// Numeric commands, as delivered by the surrounding input dispatch. Any
// other number is not ours and is reported unhandled.
const (
	CmdReset     = 0 // full reset + redraw
	CmdClear     = 1 // clear the surface and stop
	CmdPause     = 2 // pause toggle
	CmdRedraw    = 3 // forced full redraw
	CmdLeft      = 4
	CmdRight     = 5
	CmdRotateCW  = 6
	CmdRotateCCW = 7
	CmdSoftDrop  = 8
	CmdHardDrop  = 9
	CmdHold      = 10
)

// pending accumulates user input that arrived while the keystroke channel
// was busy or rows were clearing. It is drained atomically as one batch.
type pending struct {
	dx   int // merged horizontal delta
	ccw  int // queued counter-clockwise rotations
	cw   int // queued clockwise rotations
	soft int // queued soft-drop steps
	hard bool
	hold bool
}

func (p pending) any() bool {
	return p.dx != 0 || p.ccw != 0 || p.cw != 0 || p.soft != 0 || p.hard || p.hold
}

// Scheduler owns one game session end to end: the state machine, the diff
// renderer, the script engine and the four timers. All methods are safe for
// concurrent use; internally every step runs under one lock, which is the
// single logical queue the design calls for.
type Scheduler struct {
	mu     sync.Mutex
	clock  Clock
	logger *log.Logger
	cfg    config.Config

	game   *game.Game
	diff   *render.Diff
	script *keys.Engine

	pend    pending
	running bool
	seed    int64

	scriptTimer Timer
	fallTimer   Timer
	blinkTimer  Timer
	spawnTimer  Timer
}

// New creates a scheduler emitting keystrokes through em. Nothing happens
// until Start or a reset command.
func New(em keys.Emitter, clock Clock, cfg config.Config, logger *log.Logger, seed int64) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		clock:  clock,
		logger: logger,
		cfg:    cfg,
		game:   game.New(seed),
		diff:   render.NewDiff(cfg.Render.BatchCap),
		script: keys.NewEngine(em, cfg.Keystrokes.KeyDelay(), cfg.Keystrokes.NewlineDelay()),
		seed:   seed,
	}
}

// Start performs the initial full reset and redraw.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Stop cancels all timers and in-flight script state and leaves the
// session idle. The surface keeps whatever it last showed.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.halt()
}

// Snapshot exposes the current game state for status displays and tests.
func (s *Scheduler) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// Command handles one numeric command. It returns false for command
// numbers that do not belong to this core.
func (s *Scheduler) Command(n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch n {
	case CmdReset:
		s.reset()
	case CmdClear:
		s.halt()
		s.diff.Reset()
		s.script.StartClear()
		s.scheduleScript(s.cfg.Keystrokes.KeyDelay())
	case CmdPause:
		paused := s.game.TogglePause()
		s.logger.Debug("pause toggled", "paused", paused)
	case CmdRedraw:
		if s.script.Busy() {
			s.logger.Debug("redraw ignored, script in flight")
			break
		}
		s.script.StartRedraw(s.diff.FullFrame(s.game))
		s.scheduleScript(s.cfg.Keystrokes.KeyDelay())
	case CmdLeft, CmdRight, CmdRotateCW, CmdRotateCCW, CmdSoftDrop, CmdHardDrop, CmdHold:
		s.input(n)
	default:
		return false
	}
	return true
}

// reset is the full reset+redraw path: cancel everything, wipe the game,
// spawn, clear the surface and type a fresh frame.
func (s *Scheduler) reset() {
	s.halt()
	s.game.Reset(s.seed)
	s.game.Spawn()
	s.diff.Reset()
	s.script.StartRedraw(s.diff.FullFrame(s.game))
	s.scheduleScript(s.cfg.Keystrokes.KeyDelay())
	s.fallTimer = s.clock.AfterFunc(s.cfg.Timing.FallInterval(), s.onFall)
	s.running = true
}

// halt is the only cancellation path: stop all four timers, drop script
// state and queued input.
func (s *Scheduler) halt() {
	for _, t := range []*Timer{&s.scriptTimer, &s.fallTimer, &s.blinkTimer, &s.spawnTimer} {
		if *t != nil {
			(*t).Stop()
			*t = nil
		}
	}
	s.script.Reset()
	s.pend = pending{}
	s.running = false
}

// input routes one game command: queue it while the channel is busy or
// rows are clearing, otherwise apply it immediately.
func (s *Scheduler) input(n int) {
	if !s.running {
		s.logger.Debug("input ignored, session stopped", "cmd", n)
		return
	}
	s.debounceFall()

	if s.script.Busy() || s.game.Phase() == game.PhaseClearing {
		switch n {
		case CmdLeft:
			s.pend.dx--
		case CmdRight:
			s.pend.dx++
		case CmdRotateCW:
			s.pend.cw++
		case CmdRotateCCW:
			s.pend.ccw++
		case CmdSoftDrop:
			s.pend.soft++
		case CmdHardDrop:
			s.pend.hard = true
		case CmdHold:
			s.pend.hold = true
		}
		return
	}

	changed := false
	switch n {
	case CmdLeft:
		changed = s.game.Move(-1)
	case CmdRight:
		changed = s.game.Move(1)
	case CmdRotateCW:
		changed = s.game.Rotate(true)
	case CmdRotateCCW:
		changed = s.game.Rotate(false)
	case CmdSoftDrop:
		if s.game.Phase() == game.PhaseFalling {
			if s.game.SoftDrop() {
				s.afterLock(s.cfg.Timing.SpawnDelay())
			}
			changed = true
		}
	case CmdHardDrop:
		if s.game.HardDrop() >= 0 {
			s.afterLock(s.cfg.Timing.HardDropDelay())
			changed = true
		}
	case CmdHold:
		changed = s.game.Hold()
	}
	if changed {
		s.redraw()
	}
}

// afterLock routes a just-locked piece onward: into the blink animation
// when rows completed, otherwise into the spawn delay for the given cause.
func (s *Scheduler) afterLock(spawnDelay time.Duration) {
	if s.game.Phase() == game.PhaseClearing {
		s.blinkTimer = s.clock.AfterFunc(s.cfg.Timing.BlinkInterval(), s.onBlink)
		return
	}
	s.spawnTimer = s.clock.AfterFunc(spawnDelay, s.onSpawn)
}

// redraw computes the changed lines and hands them to the script engine.
// Must only be called while the script is idle.
func (s *Scheduler) redraw() {
	changes, dropped := s.diff.Changes(s.game)
	if dropped > 0 {
		s.logger.Warn("diff batch overflow, lines dropped for this pass", "dropped", dropped)
	}
	if len(changes) == 0 {
		return
	}
	lines := make([]keys.Line, len(changes))
	for i, c := range changes {
		lines[i] = keys.Line{Index: c.Line, Text: c.Text}
	}
	s.script.StartBatch(lines)
	s.scheduleScript(s.cfg.Keystrokes.KeyDelay())
}

// drainApply applies the queued input batch in fixed priority: hold
// (exclusive), horizontal delta, CCW rotations, CW rotations, hard drop
// (exclusive, overrides queued soft drops), soft-drop steps. Reports
// whether state changed. Input stays queued until a piece is falling.
func (s *Scheduler) drainApply() bool {
	if s.game.Phase() != game.PhaseFalling {
		return false
	}
	p := s.pend
	s.pend = pending{}
	if !p.any() {
		return false
	}

	if p.hold {
		return s.game.Hold()
	}

	changed := false
	if p.dx != 0 && s.game.Move(p.dx) {
		changed = true
	}
	for i := 0; i < p.ccw; i++ {
		if s.game.Rotate(false) {
			changed = true
		}
	}
	for i := 0; i < p.cw; i++ {
		if s.game.Rotate(true) {
			changed = true
		}
	}
	if p.hard {
		if s.game.HardDrop() >= 0 {
			s.afterLock(s.cfg.Timing.HardDropDelay())
			changed = true
		}
		return changed
	}
	for i := 0; i < p.soft && s.game.Phase() == game.PhaseFalling; i++ {
		changed = true
		if s.game.SoftDrop() {
			s.afterLock(s.cfg.Timing.SpawnDelay())
			break
		}
	}
	return changed
}

func (s *Scheduler) scheduleScript(d time.Duration) {
	s.scriptTimer = s.clock.AfterFunc(d, s.onScriptStep)
}

// onScriptStep advances the in-flight script one step. When the script
// finishes, the channel is free again: drain queued input and redraw once.
func (s *Scheduler) onScriptStep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, more := s.script.Step()
	if more {
		s.scheduleScript(d)
		return
	}
	s.scriptTimer = nil
	if s.drainApply() {
		s.redraw()
	}
}

// onFall is the gravity tick. It no-ops (rescheduling shortly) while
// paused, while rows are clearing or while the script owns the channel.
func (s *Scheduler) onFall() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}

	if s.game.Paused() || s.script.Busy() || s.game.Phase() == game.PhaseClearing {
		s.fallTimer = s.clock.AfterFunc(s.cfg.Timing.BlockedRetry(), s.onFall)
		return
	}
	if s.game.Phase() == game.PhaseFalling {
		if s.game.Fall() {
			s.afterLock(s.cfg.Timing.SpawnDelay())
		}
		s.redraw()
	}
	s.fallTimer = s.clock.AfterFunc(s.cfg.Timing.FallInterval(), s.onFall)
}

// debounceFall pushes the gravity tick out to fire only after an idle
// period, so held input does not fight the fall timer for the channel.
func (s *Scheduler) debounceFall() {
	if s.fallTimer != nil {
		s.fallTimer.Stop()
	}
	s.fallTimer = s.clock.AfterFunc(s.cfg.Timing.InputDebounce(), s.onFall)
}

// onBlink advances the clear animation. After the last frame the board
// compacts and the post-clear spawn delay starts.
func (s *Scheduler) onBlink() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.game.Phase() != game.PhaseClearing {
		s.blinkTimer = nil
		return
	}

	if s.game.Paused() || s.script.Busy() {
		s.blinkTimer = s.clock.AfterFunc(s.cfg.Timing.BlinkInterval(), s.onBlink)
		return
	}
	if s.game.AdvanceBlink() >= s.cfg.Timing.BlinkFrames {
		s.game.FinishClear()
		s.blinkTimer = nil
		s.spawnTimer = s.clock.AfterFunc(s.cfg.Timing.ClearDelay(), s.onSpawn)
	} else {
		s.blinkTimer = s.clock.AfterFunc(s.cfg.Timing.BlinkInterval(), s.onBlink)
	}
	s.redraw()
}

// onSpawn ends the spawn delay: spawn the next piece, drain any input that
// queued up meanwhile, redraw once and restart gravity.
func (s *Scheduler) onSpawn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}

	if s.game.Paused() || s.script.Busy() || s.game.Phase() == game.PhaseClearing {
		s.spawnTimer = s.clock.AfterFunc(s.cfg.Timing.BlockedRetry(), s.onSpawn)
		return
	}
	s.spawnTimer = nil
	if s.game.Spawn() {
		s.logger.Info("top-out, board wiped", "score", s.game.Score())
	}
	s.drainApply()
	s.redraw()
	if s.fallTimer != nil {
		s.fallTimer.Stop()
	}
	s.fallTimer = s.clock.AfterFunc(s.cfg.Timing.FallInterval(), s.onFall)
}
