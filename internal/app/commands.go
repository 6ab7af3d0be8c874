package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickInterval is how often background events are folded into the session.
const tickInterval = 200 * time.Millisecond

// TickMsg drives the event router.
type TickMsg time.Time

// TickCmd returns a command that sends TickMsg after tickInterval.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
