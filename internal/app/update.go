package app

import (
	"net/url"
	"path"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavecast/internal/downloads"
	"github.com/llehouerou/wavecast/internal/errmsg"
	"github.com/llehouerou/wavecast/internal/keymap"
	"github.com/llehouerou/wavecast/internal/ui/prompt"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.ctrl.ForceRedraw()

	case TickMsg:
		if m.router != nil {
			m.router.Drain()
		}
		cmd = TickCmd()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.ctrl.Shutdown()
			return m, tea.Quit
		}
		if m.prompt.Active() {
			var res *prompt.Result
			res, cmd = m.prompt.Update(msg)
			if res != nil {
				m.handlePromptResult(*res)
			}
			m.ctrl.ForceRedraw()
			break
		}
		var quit bool
		cmd, quit = m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}

	default:
		if m.prompt.Active() {
			_, cmd = m.prompt.Update(msg)
			m.ctrl.ForceRedraw()
		}
	}

	m.refreshView()
	return m, cmd
}

// handleKey dispatches a key through the keymap. quit is true once the
// session has been shut down.
func (m *Model) handleKey(msg tea.KeyMsg) (cmd tea.Cmd, quit bool) {
	c := m.ctrl
	n := c.Queue().Len()

	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		c.Shutdown()
		return nil, true
	case keymap.ActionClearNotice:
		c.ClearNotice()
	case keymap.ActionClearDownloads:
		if m.dl != nil {
			m.dl.Tracker().Prune()
			c.ForceRedraw()
		}
	case keymap.ActionAddEpisode:
		if m.dl == nil {
			return nil, false
		}
		cmd = m.prompt.Open("Download episode", "https://example.com/episode.mp3")
		c.ForceRedraw()

	case keymap.ActionPlayPause:
		c.TogglePause()
	case keymap.ActionStop:
		c.Stop()
	case keymap.ActionNextTrack:
		c.Next()
	case keymap.ActionPrevTrack:
		c.Previous()
	case keymap.ActionSeekForward:
		c.Seek(seekStep)
	case keymap.ActionSeekBack:
		c.Seek(-seekStep)
	case keymap.ActionSeekForwardLong:
		c.Seek(seekLongStep)
	case keymap.ActionSeekBackLong:
		c.Seek(-seekLongStep)
	case keymap.ActionVolumeUp:
		c.AdjustVolume(volumeStep)
	case keymap.ActionVolumeDown:
		c.AdjustVolume(-volumeStep)
	case keymap.ActionCycleLoop:
		c.CycleLoopMode()

	case keymap.ActionMoveUp:
		m.queuePanel.Move(-1, n)
		c.ForceRedraw()
	case keymap.ActionMoveDown:
		m.queuePanel.Move(1, n)
		c.ForceRedraw()
	case keymap.ActionSelect:
		c.PlayIndex(m.queuePanel.Cursor())
	case keymap.ActionDelete:
		c.Remove(m.queuePanel.Cursor())
		m.queuePanel.Clamp(c.Queue().Len())
	}
	return cmd, false
}

func (m *Model) handlePromptResult(res prompt.Result) {
	if res.Canceled || res.Text == "" {
		return
	}
	job := downloads.Job{
		URL:        res.Text,
		EpisodeKey: res.Text,
		Title:      EpisodeTitle(res.Text),
		Dir:        m.downloadDir,
		Enqueue:    true,
	}
	if _, err := m.dl.Submit(job); err != nil {
		m.ctrl.SetNotice(errmsg.Format(errmsg.OpDownloadQueue, err))
	}
}

// EpisodeTitle names a download after the last path segment of its URL.
func EpisodeTitle(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" || u.Path == "/" {
		return raw
	}
	base := path.Base(u.Path)
	if name := strings.TrimSuffix(base, path.Ext(base)); name != "" {
		return name
	}
	return base
}
