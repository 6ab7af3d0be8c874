package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Panel renders content inside a rounded border with the title on the first
// line. width and height include the border.
func Panel(title, content string, width, height int, focused bool) string {
	border := T().Border
	if focused {
		border = T().BorderFocus
	}
	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(width-2, 0)).
		Height(max(height-2, 0))

	head := T().S().Muted.Render(title)
	if focused {
		head = ApplyBoldGradient(title, T().Primary, T().Secondary)
	}
	return style.Render(head + "\n" + content)
}
