package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavecast/internal/player"
)

const (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// RenderProgressBar renders "▶  1:23  ▓▓▓░░░  4:56" in width cells, or just
// the times when the bar would be narrower than 3 cells.
func RenderProgressBar(position, duration time.Duration, width int, status player.State) string {
	icon := statusIcon(status)
	posStr := FormatDuration(position)
	durStr := FormatDuration(duration)

	fixed := lipgloss.Width(icon) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixed
	if barWidth < 3 {
		return icon + "  " + posStr + " / " + durStr
	}

	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	filled := max(min(int(float64(barWidth)*ratio), barWidth), 0)

	bar := progressFilledStyle().Render(strings.Repeat(filledBlock, filled)) +
		progressEmptyStyle().Render(strings.Repeat(emptyBlock, barWidth-filled))

	return icon + "  " + posStr + "  " + bar + "  " + durStr
}

func statusIcon(s player.State) string {
	switch s {
	case player.Playing:
		return "▶"
	case player.Paused:
		return "⏸"
	default:
		return "■"
	}
}
