package downloads

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavecast/internal/downloads"
	"github.com/llehouerou/wavecast/internal/ui"
	"github.com/llehouerou/wavecast/internal/ui/render"
	"github.com/llehouerou/wavecast/internal/ui/styles"
)

const (
	completedSymbol = "✓"
	failedSymbol    = "✗"
	downloadingIcon = "⇩"
	pendingIcon     = "○"
)

// View renders the panel. The last rows win when the list is taller than
// the panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	inner := m.Width() - ui.BorderHeight
	title := fmt.Sprintf("Downloads (%d active)", m.Active())

	var body string
	if m.IsEmpty() {
		body = styles.T().S().Subtle.Italic(true).Render(render.Fit("No downloads", inner))
	} else {
		rows := m.Height() - ui.BorderHeight - 1
		items := m.items[max(len(m.items)-rows, 0):]
		lines := make([]string, 0, len(items))
		for _, p := range items {
			lines = append(lines, renderLine(p, inner))
		}
		body = strings.Join(lines, "\n")
	}

	return styles.Panel(title, body, m.Width(), m.Height(), false)
}

func renderLine(p downloads.Progress, width int) string {
	icon, style := statusIcon(p.Status)
	return style.Render(icon + " " + render.Fit(p.String(), width-2))
}

func statusIcon(s downloads.Status) (string, lipgloss.Style) {
	st := styles.T().S()
	switch s {
	case downloads.StatusDone:
		return completedSymbol, st.Success
	case downloads.StatusFailed:
		return failedSymbol, st.Error
	case downloads.StatusInProgress:
		return downloadingIcon, st.Playing
	default:
		return pendingIcon, st.Muted
	}
}
