package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavecast/internal/downloads"
	"github.com/llehouerou/wavecast/internal/keymap"
	"github.com/llehouerou/wavecast/internal/ui/overlay"
	"github.com/llehouerou/wavecast/internal/ui/playerbar"
	"github.com/llehouerou/wavecast/internal/ui/render"
	"github.com/llehouerou/wavecast/internal/ui/styles"
)

const (
	headerHeight = 1
	footerHeight = 1

	// minSplitWidth is the narrowest terminal that still shows the
	// downloads panel beside the queue.
	minSplitWidth = 80
)

// View implements tea.Model. The frame is rebuilt in Update only when the
// session asked for a redraw.
func (m Model) View() string {
	return m.view
}

func (m *Model) refreshView() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	if !m.ctrl.NeedsRedraw() && m.ctrl.SinceLastRedraw() < clockRefresh {
		return
	}
	if m.dl != nil {
		m.dlPanel.SetDownloads(m.dl.Tracker().Snapshot())
	}
	m.view = m.render()
	m.ctrl.ClearRedraw()
}

func (m *Model) render() string {
	c := m.ctrl
	q := c.Queue()

	bodyHeight := max(m.Height-headerHeight-footerHeight-playerbar.Height, 0)
	queueWidth := m.Width
	showDownloads := m.dl != nil && m.Width >= minSplitWidth
	if showDownloads {
		queueWidth = m.Width * 2 / 3
		m.dlPanel.SetSize(m.Width-queueWidth, bodyHeight)
	}
	m.queuePanel.SetSize(queueWidth, bodyHeight)
	m.queuePanel.Clamp(q.Len())

	body := m.queuePanel.View(q.Tracks(), q.CurrentIndex())
	if showDownloads {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.dlPanel.View())
	}

	bar := playerbar.Render(playerbar.State{
		Status:    c.State(),
		Track:     q.Current(),
		Position:  c.TimePos(),
		Duration:  c.Duration(),
		Volume:    c.Volume(),
		Loop:      c.LoopMode(),
		LyricLine: c.LyricLine(),
	}, m.Width)

	screen := strings.Join([]string{m.renderHeader(), body, bar, m.renderFooter()}, "\n")
	if m.prompt.Active() {
		screen = overlay.Center(screen, m.prompt.View(m.Width), m.Width, m.Height)
	}
	return screen
}

func (m *Model) renderHeader() string {
	t := styles.T()
	left := styles.ApplyBoldGradient("wavecast", t.Primary, t.Secondary)
	if title := m.ctrl.Title(); title != "" {
		left += "  " + t.S().Base.Render(render.Sanitize(title))
	}
	right := ""
	if n := m.ctrl.Notice(); n != "" {
		right = t.S().Notice.Render(n)
	} else if m.dl != nil && m.Width < minSplitWidth {
		// the downloads panel is hidden; keep a count of running ones
		if n := m.dl.Tracker().Count(downloads.StatusInProgress); n > 0 {
			right = t.S().Subtle.Render(fmt.Sprintf("⇩ %d", n))
		}
	}
	return render.TruncateStyled(render.Row(left, right, m.Width), m.Width)
}

func (m *Model) renderFooter() string {
	help := m.keys.Help(
		keymap.ActionPlayPause,
		keymap.ActionNextTrack,
		keymap.ActionSeekForward,
		keymap.ActionCycleLoop,
		keymap.ActionAddEpisode,
		keymap.ActionQuit,
	)
	return styles.T().S().Subtle.Render(render.Truncate(help, m.Width))
}
