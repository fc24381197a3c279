package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/typetris/internal/game"
	"github.com/vovakirdan/typetris/internal/platform/editor"
	"github.com/vovakirdan/typetris/internal/sched"
)

// refreshRate is the surface preview refresh rate in Hz. The core runs on
// its own timers; the preview only needs to look smooth.
const refreshRate = 20

// Model is the Bubble Tea model for a local play session. The scheduler
// runs on real timers in the background; the model only previews the
// editor surface and forwards key presses as numeric commands.
type Model struct {
	scheduler *sched.Scheduler
	surface   *editor.Surface
	keys      PlayKeyMap
	help      help.Model
	snapshot  game.Snapshot
	quitting  bool
}

// NewModel creates a model previewing the given surface.
func NewModel(s *sched.Scheduler, surface *editor.Surface) Model {
	h := help.New()
	h.ShowAll = false

	return Model{
		scheduler: s,
		surface:   surface,
		keys:      DefaultPlayKeyMap(),
		help:      h,
	}
}

// Init starts the refresh loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(refreshRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.snapshot = m.scheduler.Snapshot()
		return m, tickCmd(refreshRate)
	}

	return m, nil
}

// handleKey forwards bound keys to the core.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	cmd, ok, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.scheduler.Stop()
		return m, tea.Quit
	}
	if ok {
		m.scheduler.Command(cmd)
	}
	return m, nil
}

// View renders the surface preview with a status and help footer.
func (m Model) View() string {
	if m.quitting {
		return "bye\n"
	}

	status := fmt.Sprintf("score %d  lines %d", m.snapshot.Score, m.snapshot.Lines)
	if m.snapshot.Paused {
		status += "  [paused]"
	}

	return renderView(m.surface.Text(), status, m.help.View(m.keys))
}
