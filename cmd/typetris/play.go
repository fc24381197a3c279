package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/typetris/internal/config"
	"github.com/vovakirdan/typetris/internal/keys"
	"github.com/vovakirdan/typetris/internal/platform/editor"
	"github.com/vovakirdan/typetris/internal/platform/tui"
	"github.com/vovakirdan/typetris/internal/sched"
	"github.com/vovakirdan/typetris/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in an emulated editor buffer",
	Long: `Start an interactive session. The game types its frames into an
emulated editor buffer shown in the terminal.

Controls:
  Left/Right/h/l - Move
  Up/x, z        - Rotate clockwise / counter-clockwise
  Down/j         - Soft drop
  Space          - Hard drop
  C              - Hold
  P/Esc          - Pause
  R              - Reset
  D              - Force a full redraw
  Q/Ctrl+C       - Quit

Examples:
  typetris play
  typetris play --preset fast
  typetris play --seed 42 --trace-db ~/.typetris/trace.db`,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flagPreset != "" {
		config.ApplyPreset(&cfg, config.Preset(flagPreset))
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// The preview needs a reasonably sized terminal; warn, don't refuse.
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && (w < 20 || h < 18) {
		logger.Warn("terminal is small, the preview may clip", "width", w, "height", h)
	}

	surface := editor.New()
	var emitter keys.Emitter = surface

	var trace *storage.TraceEmitter
	if flagTraceDB != "" {
		store, err := storage.Open(flagTraceDB)
		if err != nil {
			return fmt.Errorf("open trace database: %w", err)
		}
		defer store.Close()

		trace, err = storage.NewTraceEmitter(surface, store, presetName(), seed)
		if err != nil {
			return fmt.Errorf("start trace session: %w", err)
		}
		emitter = trace
		logger.Info("recording keystroke trace", "session", trace.Session())
	}

	scheduler := sched.New(emitter, sched.RealClock{}, cfg, logger, seed)
	scheduler.Start()
	defer scheduler.Stop()

	p := tea.NewProgram(tui.NewModel(scheduler, surface), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}

	if trace != nil {
		if err := trace.Flush(); err != nil {
			logger.Error("trace flush failed", "err", err)
		}
	}
	return nil
}

func presetName() string {
	if flagPreset == "" {
		return string(config.PresetNormal)
	}
	return flagPreset
}
