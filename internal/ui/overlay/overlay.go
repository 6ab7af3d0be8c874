// Package overlay draws a box on top of an already rendered screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Center places box in the middle of base, which is width x height cells.
func Center(base, box string, width, height int) string {
	boxLines := strings.Split(box, "\n")
	boxWidth := 0
	for _, l := range boxLines {
		boxWidth = max(boxWidth, lipgloss.Width(l))
	}
	top := max((height-len(boxLines))/2, 0)
	left := max((width-boxWidth)/2, 0)
	return Compose(base, box, left, top, width)
}

// Compose writes box over base with its top-left corner at (left, top).
// Styled text on both sides is cut on cell boundaries.
func Compose(base, box string, left, top, width int) string {
	baseLines := strings.Split(base, "\n")
	for i, line := range strings.Split(box, "\n") {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		bl := baseLines[row]
		if w := ansi.StringWidth(bl); w < width {
			bl += strings.Repeat(" ", width-w)
		}
		end := left + ansi.StringWidth(line)
		out := ansi.Cut(bl, 0, left) + line
		if end < width {
			out += ansi.Cut(bl, end, width)
		}
		baseLines[row] = out
	}
	return strings.Join(baseLines, "\n")
}
