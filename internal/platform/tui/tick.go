// Package tui provides the Bubble Tea integration for local play.
// It previews the emulated editor surface and maps keyboard input to
// numeric core commands.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to refresh the surface preview.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends refresh ticks at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
