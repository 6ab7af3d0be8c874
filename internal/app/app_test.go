package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavecast/internal/downloads"
	"github.com/llehouerou/wavecast/internal/player"
	"github.com/llehouerou/wavecast/internal/playlist"
	"github.com/llehouerou/wavecast/internal/session"
)

type fakeDownloader struct {
	jobs    []downloads.Job
	err     error
	tracker *downloads.Tracker
}

func (f *fakeDownloader) Submit(job downloads.Job) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.jobs = append(f.jobs, job)
	return "id", nil
}

func (f *fakeDownloader) Tracker() *downloads.Tracker { return f.tracker }

type testEnv struct {
	m       Model
	backend *player.Mock
	queue   *playlist.Queue
	dl      *fakeDownloader
}

func newTestEnv(tracks ...playlist.Track) *testEnv {
	backend := player.NewMock()
	queue := playlist.NewQueue()
	queue.Add(tracks...)
	ctrl := session.New(session.Options{Backend: backend, Queue: queue, Volume: 50})
	dl := &fakeDownloader{tracker: downloads.NewTracker()}
	router := session.NewRouter(ctrl, session.Sources{Backend: backend.Events()})
	m := New(Deps{Controller: ctrl, Router: router, Downloads: dl, DownloadDir: "/tmp/pods"})
	return &testEnv{m: m, backend: backend, queue: queue, dl: dl}
}

func (e *testEnv) send(msg tea.Msg) tea.Cmd {
	next, cmd := e.m.Update(msg)
	e.m = next.(Model)
	return cmd
}

func (e *testEnv) key(s string) tea.Cmd {
	switch s {
	case "enter":
		return e.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return e.send(tea.KeyMsg{Type: tea.KeyEsc})
	case " ":
		return e.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	}
	return e.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (e *testEnv) typeText(s string) {
	for _, r := range s {
		e.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func song(name string) playlist.Track {
	return playlist.Track{Key: name, Path: "/music/" + name + ".mp3", Title: name, MediaType: playlist.MediaMusic, Duration: 3 * time.Minute}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestUpdate_WindowSizeRendersView(t *testing.T) {
	e := newTestEnv(song("one"))

	e.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, 100, e.m.Width)
	assert.Equal(t, 30, e.m.Height)
	plain := ansi.Strip(e.m.View())
	assert.Contains(t, plain, "wavecast")
	assert.Contains(t, plain, "Queue (0/1)")
	assert.Contains(t, plain, "Downloads")
	assert.Contains(t, plain, "Stopped")
}

func TestUpdate_NarrowHidesDownloads(t *testing.T) {
	e := newTestEnv(song("one"))

	e.send(tea.WindowSizeMsg{Width: 60, Height: 20})

	assert.NotContains(t, ansi.Strip(e.m.View()), "Downloads")
}

func TestUpdate_SpaceStartsPlayback(t *testing.T) {
	e := newTestEnv(song("one"), song("two"))
	e.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	e.key(" ")

	require.Len(t, e.backend.PlayCalls(), 1)
	assert.Equal(t, "one", e.backend.PlayCalls()[0].Track.Key)
	assert.Contains(t, ansi.Strip(e.m.View()), "Queue (1/2)")
}

func TestUpdate_PlaybackKeys(t *testing.T) {
	e := newTestEnv(song("one"), song("two"))
	e.key(" ")

	e.key("+")
	assert.Equal(t, 55, e.backend.Volume())

	e.key("-")
	e.key("-")
	assert.Equal(t, 45, e.backend.Volume())

	e.key("r")
	assert.Equal(t, playlist.LoopQueue, e.queue.LoopMode())

	e.key("l")
	assert.Equal(t, []time.Duration{seekStep}, e.backend.SeekCalls())

	e.key("s")
	assert.True(t, e.queue.IsStopped())
}

func TestUpdate_SelectPlaysCursorTrack(t *testing.T) {
	e := newTestEnv(song("one"), song("two"), song("three"))
	e.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	e.key("j")
	e.key("j")
	e.key("enter")

	require.NotEmpty(t, e.backend.PlayCalls())
	assert.Equal(t, "three", e.backend.PlayCalls()[0].Track.Key)
}

func TestUpdate_DeleteRemovesCursorTrack(t *testing.T) {
	e := newTestEnv(song("one"), song("two"))
	e.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	e.key("j")
	e.key("d")

	require.Equal(t, 1, e.queue.Len())
	assert.Equal(t, "one", e.queue.Tracks()[0].Key)
	assert.Equal(t, 0, e.m.queuePanel.Cursor())
}

func TestUpdate_QuitShutsDown(t *testing.T) {
	e := newTestEnv(song("one"))
	e.key(" ")

	cmd := e.key("q")

	assert.True(t, isQuit(cmd))
	calls := e.backend.Calls()
	assert.Equal(t, "stop", calls[len(calls)-1])
}

func TestUpdate_CtrlCQuitsFromPrompt(t *testing.T) {
	e := newTestEnv()
	e.key("e")
	require.True(t, e.m.prompt.Active())

	cmd := e.send(tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.True(t, isQuit(cmd))
}

func TestUpdate_EpisodePromptSubmitsDownload(t *testing.T) {
	e := newTestEnv()
	e.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	e.key("e")
	assert.Contains(t, ansi.Strip(e.m.View()), "Download episode")

	e.typeText("https://example.com/feed/ep42.mp3")
	e.key("enter")

	require.Len(t, e.dl.jobs, 1)
	job := e.dl.jobs[0]
	assert.Equal(t, "https://example.com/feed/ep42.mp3", job.URL)
	assert.Equal(t, job.URL, job.EpisodeKey)
	assert.Equal(t, "ep42", job.Title)
	assert.Equal(t, "/tmp/pods", job.Dir)
	assert.True(t, job.Enqueue)
	assert.False(t, e.m.prompt.Active())
}

func TestUpdate_EpisodePromptCancel(t *testing.T) {
	e := newTestEnv()
	e.key("e")
	e.typeText("https://example.com/x.mp3")

	e.key("esc")

	assert.Empty(t, e.dl.jobs)
	assert.False(t, e.m.prompt.Active())
	assert.Empty(t, e.m.ctrl.Notice())
}

func TestUpdate_EpisodeSubmitErrorBecomesNotice(t *testing.T) {
	e := newTestEnv()
	e.dl.err = downloads.ErrPoolClosed

	e.key("e")
	e.typeText("https://example.com/x.mp3")
	e.key("enter")

	assert.Contains(t, e.m.ctrl.Notice(), "queue download")

	e.key("esc")
	assert.Empty(t, e.m.ctrl.Notice())
}

func TestUpdate_NoDownloaderIgnoresEpisodeKey(t *testing.T) {
	e := newTestEnv()
	e.m.dl = nil

	e.key("e")

	assert.False(t, e.m.prompt.Active())
}

func TestUpdate_ClearDownloadsDropsFinished(t *testing.T) {
	e := newTestEnv()
	e.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	tr := e.dl.tracker
	tr.Set(downloads.Progress{Job: downloads.Job{ID: "1", Title: "finished-ep"}, Status: downloads.StatusDone})
	tr.Set(downloads.Progress{Job: downloads.Job{ID: "2", Title: "broken"}, Status: downloads.StatusFailed})
	tr.Set(downloads.Progress{Job: downloads.Job{ID: "3", Title: "running"}, Status: downloads.StatusInProgress})

	e.key("x")

	snap := tr.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "3", snap[0].Job.ID)
	plain := ansi.Strip(e.m.View())
	assert.Contains(t, plain, "running")
	assert.NotContains(t, plain, "finished-ep")
}

func TestView_NarrowHeaderCountsActiveDownloads(t *testing.T) {
	e := newTestEnv()
	e.dl.tracker.Set(downloads.Progress{Job: downloads.Job{ID: "1"}, Status: downloads.StatusInProgress})
	e.dl.tracker.Set(downloads.Progress{Job: downloads.Job{ID: "2"}, Status: downloads.StatusQueued})

	e.send(tea.WindowSizeMsg{Width: 60, Height: 20})

	assert.Contains(t, ansi.Strip(e.m.View()), "⇩ 1")
}

func TestUpdate_TickDrainsBackendEvents(t *testing.T) {
	e := newTestEnv(song("one"))
	e.key(" ")

	e.backend.Emit(player.Progress{Token: e.m.ctrl.Token(), Position: 42 * time.Second, Duration: 3 * time.Minute})
	cmd := e.send(TickMsg(time.Now()))

	assert.NotNil(t, cmd)
	assert.Equal(t, 42*time.Second, e.m.ctrl.TimePos())
}

func TestUpdate_TickWithoutRouter(t *testing.T) {
	e := newTestEnv()
	e.m.router = nil

	assert.NotPanics(t, func() { e.send(TickMsg(time.Now())) })
}

func TestView_CachedUntilRedraw(t *testing.T) {
	e := newTestEnv(song("one"))
	e.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	before := e.m.View()

	e.m.ctrl.Enqueue(song("two"))
	assert.Equal(t, before, e.m.View())

	e.send(TickMsg(time.Now()))
	assert.Contains(t, ansi.Strip(e.m.View()), "Queue (0/2)")
}

func TestEpisodeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/ep1.mp3", "ep1"},
		{"https://example.com/a/b/show-123.m4a?x=1", "show-123"},
		{"https://example.com/", "https://example.com/"},
		{"not a url", "not a url"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EpisodeTitle(tt.in))
		})
	}
}
