// Package playerbar renders the now-playing bar: track info, progress,
// volume and loop mode.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavecast/internal/player"
	"github.com/llehouerou/wavecast/internal/playlist"
	"github.com/llehouerou/wavecast/internal/ui/render"
	"github.com/llehouerou/wavecast/internal/ui/styles"
)

// Height is the rendered height including borders.
const Height = 4

// State holds everything needed to render the bar.
type State struct {
	Status    player.State
	Track     *playlist.Track
	Position  time.Duration
	Duration  time.Duration
	Volume    int
	Loop      playlist.LoopMode
	LyricLine string
}

// Render returns the bar for the given total width.
func Render(s State, width int) string {
	inner := max(width-4, 0)

	info := renderInfo(s, inner)

	right := RenderVolume(s.Volume) + "  " + RenderLoop(s.Loop)
	barWidth := max(inner-lipgloss.Width(right)-2, 0)
	progress := RenderProgressBar(s.Position, s.Duration, barWidth, s.Status)
	line2 := render.Row(progress, right, inner)

	return barStyle().Width(max(width-2, 0)).Render(info + "\n" + line2)
}

func renderInfo(s State, width int) string {
	st := styles.T().S()
	if s.Status == player.Stopped || s.Track == nil {
		return st.Subtle.Render("Stopped")
	}

	title := s.Track.Title
	if title == "" {
		title = s.Track.DisplayName()
	}
	titleStyle := st.Playing
	if s.Track.MediaType == playlist.MediaPodcast {
		titleStyle = st.Podcast.Bold(true)
	}

	var parts []string
	if s.Track.Artist != "" {
		parts = append(parts, s.Track.Artist)
	}
	if s.Track.Album != "" {
		parts = append(parts, s.Track.Album)
	}
	line := titleStyle.Render(render.Sanitize(title))
	if len(parts) > 0 {
		line += "   " + st.Muted.Render(render.Sanitize(strings.Join(parts, " · ")))
	}
	if s.LyricLine != "" {
		line += "   " + st.Lyric.Render(render.Sanitize(s.LyricLine))
	}
	return render.TruncateStyled(line, width)
}

// FormatDuration renders d as m:ss.
func FormatDuration(d time.Duration) string {
	m := int(d.Minutes())
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, sec)
}
