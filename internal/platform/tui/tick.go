// Package tui provides the Bubble Tea integration: the reveal, spew and
// history models, key bindings, screen rendering and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance a model by one frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after one frame
// at the specified rate.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// clock converts wall-clock tick times to time elapsed since the first
// tick it saw.
type clock struct {
	start time.Time
}

func (c *clock) since(t time.Time) time.Duration {
	if c.start.IsZero() {
		c.start = t
	}
	return t.Sub(c.start)
}
