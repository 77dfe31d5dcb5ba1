// Package tui provides the Bubble Tea host for the platformer.
// It handles the terminal UI loop, input mapping, level selection and the
// SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to request a simulation frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick message after interval.
// The simulation's frame gate decides whether the frame actually runs.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
