package queuepanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavecast/internal/playlist"
	"github.com/llehouerou/wavecast/internal/ui"
	"github.com/llehouerou/wavecast/internal/ui/playerbar"
	"github.com/llehouerou/wavecast/internal/ui/render"
	"github.com/llehouerou/wavecast/internal/ui/styles"
)

const playingSymbol = "▶"

// View renders the panel for tracks with playingIdx marked (-1 for none).
func (m Model) View(tracks []playlist.Track, playingIdx int) string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	inner := m.Width() - ui.BorderHeight

	current := max(playingIdx+1, 0)
	title := fmt.Sprintf("Queue (%d/%d)", current, len(tracks))
	body := render.Separator(inner) + "\n" + m.renderTracks(tracks, playingIdx, inner)

	return styles.Panel(title, body, m.Width(), m.Height(), m.IsFocused())
}

func (m Model) renderTracks(tracks []playlist.Track, playingIdx, width int) string {
	h := m.listHeight()
	if len(tracks) == 0 {
		return styles.T().S().Subtle.Render(render.Fit("Queue is empty", width))
	}
	lines := make([]string, 0, h)
	for i := range h {
		idx := m.offset + i
		if idx >= len(tracks) {
			break
		}
		lines = append(lines, m.renderLine(tracks[idx], idx, playingIdx, width))
	}
	return strings.Join(lines, "\n")
}

// renderLine lays out "▶ title  artist  3:45" with a podcast marker.
func (m Model) renderLine(t playlist.Track, idx, playingIdx, width int) string {
	prefix := "  "
	if idx == playingIdx {
		prefix = playingSymbol + " "
	}
	kind := " "
	if t.MediaType == playlist.MediaPodcast {
		kind = "◉"
	}
	dur := ""
	if t.Duration > 0 {
		dur = playerbar.FormatDuration(t.Duration)
	}
	suffix := fmt.Sprintf(" %6s", dur)

	content := width - lipgloss.Width(prefix) - 2 - lipgloss.Width(suffix)
	titleWidth := content * 3 / 5
	artistWidth := content - titleWidth

	title := t.Title
	if title == "" {
		title = t.DisplayName()
	}
	line := prefix + kind + " " + render.Fit(title, titleWidth) + render.Fit(t.Artist, artistWidth) + suffix

	return m.lineStyle(t, idx, playingIdx).Render(line)
}

func (m Model) lineStyle(t playlist.Track, idx, playingIdx int) lipgloss.Style {
	st := styles.T().S()
	isCursor := idx == m.cursor && m.IsFocused()

	base := st.Base
	switch {
	case idx == playingIdx:
		base = st.Playing
	case t.MediaType == playlist.MediaPodcast:
		base = st.Podcast
	case playingIdx >= 0 && idx < playingIdx:
		base = st.Muted
	}
	if isCursor {
		return st.Cursor.Inherit(base)
	}
	return base
}
