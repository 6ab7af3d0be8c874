// Package render provides width-aware text helpers for the terminal views.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Sanitize drops control characters and invalid UTF-8 from tag metadata and
// turns non-breaking spaces into plain ones.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
		case r != '\t' && unicode.IsControl(r):
		case r == '\u00a0':
			b.WriteByte(' ')
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// Truncate shortens plain text to maxWidth cells with a "…" tail.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "…")
}

// TruncateStyled shortens text that may carry ANSI styling.
func TruncateStyled(s string, maxWidth int) string {
	return ansi.Truncate(s, maxWidth, "…")
}

// Pad fills plain text with spaces to width cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Fit truncates then pads so the result is exactly width cells.
func Fit(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// Row puts left and right at the two ends of a width-cell line, keeping at
// least one space between them.
func Row(left, right string, width int) string {
	gap := max(width-ansi.StringWidth(left)-ansi.StringWidth(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator is a horizontal rule width cells wide.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}
