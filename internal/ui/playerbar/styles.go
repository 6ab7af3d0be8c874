package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavecast/internal/ui/styles"
)

func barStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border).
		Padding(0, 1)
}

func progressFilledStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary)
}

func progressEmptyStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

func metaStyle() lipgloss.Style {
	return styles.T().S().Muted
}

func loopActiveStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Secondary)
}
