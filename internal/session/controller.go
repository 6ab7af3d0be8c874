// Package session owns the play session: it drives the audio backend from the
// queue, persists positions, and folds background events into one state that
// the UI renders.
package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavecast/internal/downloads"
	"github.com/llehouerou/wavecast/internal/errmsg"
	"github.com/llehouerou/wavecast/internal/lyrics"
	"github.com/llehouerou/wavecast/internal/player"
	"github.com/llehouerou/wavecast/internal/playlist"
	"github.com/llehouerou/wavecast/internal/position"
	"github.com/llehouerou/wavecast/internal/remote"
	"github.com/llehouerou/wavecast/internal/sink"
	"github.com/llehouerou/wavecast/internal/state"
)

const (
	// seekSettle is how long a backend that cannot seek while paused gets
	// to apply the seek before it is paused again.
	seekSettle = 50 * time.Millisecond

	// stopDisplayDuration is the total shown by the progress bar once stopped.
	stopDisplayDuration = 60 * time.Second

	loopbackBuffer = 16
)

// CoverUpdater resolves album art for the playing track.
type CoverUpdater interface {
	Update(t playlist.Track) error
	Clear()
}

// LyricSearcher looks lyrics up in the background; results come back through
// the router.
type LyricSearcher interface {
	Search(t playlist.Track)
}

// Persister keeps the queue and volume across launches.
type Persister interface {
	ScheduleQueueSave(s state.QueueState)
	SaveVolume(volume int) error
}

// Options configures a Controller. Backend and Queue are required; every
// other collaborator is optional.
type Options struct {
	Backend   player.Backend
	Queue     *playlist.Queue
	Stores    position.Stores
	Policy    position.Policy
	Sink      sink.Sink
	Cover     CoverUpdater
	Lyrics    LyricSearcher
	Persister Persister
	Volume    int

	// Probe reads metadata of a downloaded episode.
	Probe func(path string) (playlist.Track, error)
}

// Controller is the playback state machine. It is not safe for concurrent
// use: only the control loop calls it, and background work reaches it
// through the Router.
type Controller struct {
	backend   player.Backend
	queue     *playlist.Queue
	stores    position.Stores
	policy    position.Policy
	sink      sink.Sink
	cover     CoverUpdater
	lyrics    LyricSearcher
	persister Persister
	probe     func(string) (playlist.Track, error)

	token     player.Token
	timePos   int // whole seconds into the current track
	duration  time.Duration
	volume    int
	title     string
	lyr       *lyrics.Lyrics
	lyricLine string
	notice    string

	redraw     bool
	lastRedraw time.Time

	sleep    func(time.Duration)
	loopback chan player.Event
}

func New(opts Options) *Controller {
	c := &Controller{
		backend:   opts.Backend,
		queue:     opts.Queue,
		stores:    opts.Stores,
		policy:    opts.Policy,
		sink:      opts.Sink,
		cover:     opts.Cover,
		lyrics:    opts.Lyrics,
		persister: opts.Persister,
		probe:     opts.Probe,
		volume:    clampVolume(opts.Volume),
		sleep:     time.Sleep,
		loopback:  make(chan player.Event, loopbackBuffer),
		redraw:    true,
	}
	c.backend.SetVolume(c.volume)
	return c
}

// State derives the session state from the queue cursor and the backend.
func (c *Controller) State() player.State {
	if c.queue.IsStopped() {
		return player.Stopped
	}
	if c.backend.IsPaused() {
		return player.Paused
	}
	return player.Playing
}

// Run starts playback when the queue is stopped, then restores the track's
// remembered position.
func (c *Controller) Run() {
	if !c.queue.IsStopped() {
		return
	}
	if c.queue.Start() == nil {
		return
	}
	c.startCurrent()
}

// Stop saves the position and halts playback.
func (c *Controller) Stop() {
	c.SaveLastPosition()
	c.halt()
}

func (c *Controller) halt() {
	c.timePos = 0
	c.duration = 0
	c.backend.Stop()
	c.queue.Stop()
	// late events from the stopped stream must read as stale
	c.token++
	c.emitLoopback(player.Progress{Token: c.token, Duration: stopDisplayDuration})
	if c.cover != nil {
		c.cover.Clear()
	}
	c.notifySink(func(s sink.Sink) error { return s.Stop() })
	c.title = ""
	c.lyr = nil
	c.lyricLine = ""
	c.queueChanged()
	c.redraw = true
}

// TogglePause flips between Playing and Paused. Pausing is a persistence
// point. A stopped, non-empty queue starts playing.
func (c *Controller) TogglePause() {
	if c.queue.IsEmpty() && c.queue.Current() == nil {
		return
	}
	if c.queue.IsStopped() {
		c.Run()
		return
	}
	if c.backend.IsPaused() {
		c.backend.Resume()
		pos := c.TimePos()
		c.notifySink(func(s sink.Sink) error { return s.Resume(pos) })
	} else {
		c.backend.Pause()
		c.notifySink(func(s sink.Sink) error { return s.Pause() })
		c.SaveLastPosition()
	}
	c.refreshTitle()
	c.redraw = true
}

// Seek moves playback by offset.
func (c *Controller) Seek(offset time.Duration) {
	c.seek(func() error { return c.backend.Seek(offset) }, c.TimePos()+offset)
}

// SeekTo moves playback to pos.
func (c *Controller) SeekTo(pos time.Duration) {
	c.seek(func() error { return c.backend.SeekTo(pos) }, pos)
}

func (c *Controller) seek(do func() error, target time.Duration) {
	if c.queue.IsStopped() {
		return
	}
	var err error
	if c.backend.IsPaused() && !c.backend.SupportsSeekWhilePaused() {
		c.backend.SetVolume(0)
		c.backend.Resume()
		err = do()
		c.redraw = true
		c.sleep(seekSettle)
		c.backend.Pause()
		c.backend.SetVolume(c.volume)
	} else {
		err = do()
	}
	if err != nil {
		c.setNotice(errmsg.Format(errmsg.OpPlaybackSeek, err))
		return
	}

	c.timePos = c.clampSeconds(target)
	c.updateLyricLine()
	if !c.backend.IsPaused() {
		pos := c.TimePos()
		c.notifySink(func(s sink.Sink) error { return s.Resume(pos) })
	}
	c.redraw = true
}

func (c *Controller) clampSeconds(d time.Duration) int {
	if d < 0 {
		return 0
	}
	if c.duration > 0 && d > c.duration {
		d = c.duration
	}
	return int(d / time.Second)
}

// Previous steps back one track. Looping modes keep the cursor where it is.
func (c *Controller) Previous() {
	switch c.queue.LoopMode() {
	case playlist.LoopSingle, playlist.LoopQueue:
		return
	case playlist.LoopNone:
	}
	if c.queue.IsEmpty() {
		c.Stop()
		return
	}
	c.SaveLastPosition()
	if c.queue.HandlePrevious() == nil {
		return
	}
	c.startCurrent()
}

// Next skips the current track. The backend reports the skip as a track end,
// which advances the queue.
func (c *Controller) Next() {
	if c.queue.IsEmpty() {
		c.Stop()
		return
	}
	if c.queue.IsStopped() {
		return
	}
	c.backend.Skip()
}

// PlayIndex jumps to the track at index and plays it.
func (c *Controller) PlayIndex(index int) {
	if index < 0 || index >= c.queue.Len() {
		return
	}
	c.SaveLastPosition()
	c.queue.JumpTo(index)
	c.startCurrent()
}

// startCurrent hands the queue's current track to the backend under a fresh
// token, refreshes everything shown for it and restores its position.
func (c *Controller) startCurrent() {
	t := c.queue.Current()
	if t == nil {
		return
	}
	c.token++
	if err := c.backend.Play(*t, c.token); err != nil {
		c.setNotice(errmsg.FormatWith(errmsg.OpPlaybackStart, t.DisplayName(), err))
		c.halt()
		return
	}
	c.OnTrackAdvance()
	c.RestoreLastPosition()
}

// OnTrackAdvance refreshes the session for the queue's new current track.
func (c *Controller) OnTrackAdvance() {
	t := c.queue.Current()
	if t == nil {
		return
	}
	track := *t
	c.timePos = 0
	c.duration = track.Duration
	c.queueChanged()
	c.notifySink(func(s sink.Sink) error { return s.AddAndPlay(track) })
	if c.cover != nil {
		if err := c.cover.Update(track); err != nil {
			c.setNotice(errmsg.Format(errmsg.OpCoverLoad, err))
		} else {
			c.notifySink(func(s sink.Sink) error { return s.Update(track) })
		}
	}
	c.refreshTitle()
	c.lyr = nil
	c.lyricLine = ""
	if c.lyrics != nil {
		c.lyrics.Search(track)
	}
	c.redraw = true
}

// HandleEvent applies one backend or loopback event.
func (c *Controller) HandleEvent(ev player.Event) {
	switch e := ev.(type) {
	case player.Progress:
		c.HandleProgress(e)
	case player.TrackEnded:
		c.HandleTrackEnded(e)
	case player.Error:
		c.HandleBackendError(e)
	}
}

// HandleTrackEnded advances the queue after the current track finished or
// was skipped.
func (c *Controller) HandleTrackEnded(ev player.TrackEnded) {
	if ev.Token != c.token {
		return
	}
	if !ev.Skipped {
		c.timePos = 0
	}
	c.SaveLastPosition()
	if c.queue.HandleAdvance() == nil {
		c.halt()
		return
	}
	c.startCurrent()
}

func (c *Controller) HandleProgress(ev player.Progress) {
	if ev.Token != c.token {
		return
	}
	pos := int(ev.Position / time.Second)
	if pos != c.timePos {
		c.timePos = pos
		c.redraw = true
	}
	if ev.Duration > 0 && ev.Duration != c.duration {
		c.duration = ev.Duration
		c.redraw = true
		if t := c.queue.Current(); t != nil && t.Duration == 0 {
			c.queue.SetDuration(c.queue.CurrentIndex(), ev.Duration)
			track := *c.queue.Current()
			c.notifySink(func(s sink.Sink) error { return s.Update(track) })
			c.queueChanged()
		}
	}
	c.updateLyricLine()
}

// HandleBackendError reports a playback failure and stops.
func (c *Controller) HandleBackendError(ev player.Error) {
	if ev.Token != c.token {
		return
	}
	c.setNotice(errmsg.Format(errmsg.OpPlayback, ev.Err))
	c.halt()
}

// SaveLastPosition writes the current position to the store matching the
// track's media type, if the policy covers the track. Failures are logged
// only.
func (c *Controller) SaveLastPosition() {
	t := c.queue.Current()
	if t == nil {
		return
	}
	store := c.policy.StoreFor(c.stores, *t)
	if store == nil {
		return
	}
	pos := time.Duration(c.timePos) * time.Second
	if err := store.SetLastPosition(*t, pos); err != nil {
		log.Debug().Err(err).Str("track", t.Identity()).Msg("save last position")
	}
}

// RestoreLastPosition seeks to the remembered position of the current track
// and then zeroes it, so a position is restored at most once.
func (c *Controller) RestoreLastPosition() {
	t := c.queue.Current()
	if t == nil {
		return
	}
	store := c.policy.StoreFor(c.stores, *t)
	if store == nil {
		return
	}
	pos, err := store.GetLastPosition(*t)
	if err != nil {
		if !errors.Is(err, position.ErrNotFound) {
			log.Debug().Err(err).Str("track", t.Identity()).Msg("restore last position")
		}
		return
	}
	if pos <= 0 {
		return
	}
	if err := c.backend.SeekTo(pos); err != nil {
		log.Debug().Err(err).Str("track", t.Identity()).Msg("seek to last position")
		return
	}
	c.timePos = int(pos / time.Second)
	c.updateLyricLine()
	if err := store.SetLastPosition(*t, 0); err != nil {
		log.Debug().Err(err).Str("track", t.Identity()).Msg("reset last position")
	}
	c.redraw = true
}

// SetVolume sets the output level (0-100) and remembers it.
func (c *Controller) SetVolume(level int) {
	level = clampVolume(level)
	if level == c.volume {
		return
	}
	c.volume = level
	c.backend.SetVolume(level)
	if c.persister != nil {
		if err := c.persister.SaveVolume(level); err != nil {
			log.Debug().Err(err).Msg("save volume")
		}
	}
	c.redraw = true
}

func (c *Controller) AdjustVolume(delta int) {
	c.SetVolume(c.volume + delta)
}

func clampVolume(level int) int {
	return max(0, min(100, level))
}

// CycleLoopMode switches None -> Queue -> Single -> None.
func (c *Controller) CycleLoopMode() {
	c.queue.SetLoopMode(c.queue.LoopMode().Next())
	c.queueChanged()
	c.redraw = true
}

// Enqueue appends tracks without touching playback.
func (c *Controller) Enqueue(tracks ...playlist.Track) {
	if len(tracks) == 0 {
		return
	}
	c.queue.Add(tracks...)
	c.queueChanged()
	c.redraw = true
}

// Remove drops the track at index. Removing the playing track stops playback
// first so its position is saved.
func (c *Controller) Remove(index int) {
	if index < 0 || index >= c.queue.Len() {
		return
	}
	if index == c.queue.CurrentIndex() && !c.queue.IsStopped() {
		c.Stop()
	}
	c.queue.RemoveAt(index)
	c.queueChanged()
	c.redraw = true
}

// OnDownloadProgress reacts to a download update: finished episodes marked
// for enqueueing join the queue, failures become a notice.
func (c *Controller) OnDownloadProgress(p downloads.Progress) {
	switch p.Status {
	case downloads.StatusDone:
		if !p.Job.Enqueue {
			break
		}
		if !player.IsAudioFile(p.Path) {
			c.setNotice(errmsg.FormatWith(errmsg.OpQueueAdd, episodeName(p),
				fmt.Errorf("%w: %s", player.ErrUnsupportedFormat, filepath.Ext(p.Path))))
			break
		}
		c.Enqueue(c.episodeTrack(p))
	case downloads.StatusFailed:
		c.setNotice(errmsg.FormatWith(errmsg.OpDownload, p.Job.Title, p.Err))
	case downloads.StatusQueued, downloads.StatusInProgress:
	}
	c.redraw = true
}

func (c *Controller) episodeTrack(p downloads.Progress) playlist.Track {
	t := playlist.Track{Path: p.Path}
	if c.probe != nil {
		probed, err := c.probe(p.Path)
		if err != nil {
			log.Debug().Err(err).Str("path", p.Path).Msg("read episode metadata")
		}
		t = probed
	}
	t.Key = p.Job.EpisodeKey
	t.Path = p.Path
	t.MediaType = playlist.MediaPodcast
	if p.Job.Title != "" || t.Title == "" {
		t.Title = episodeName(p)
	}
	return t
}

func episodeName(p downloads.Progress) string {
	if p.Job.Title != "" {
		return p.Job.Title
	}
	return strings.TrimSuffix(filepath.Base(p.Path), filepath.Ext(p.Path))
}

// ApplyLyrics installs a lyric search result if it still matches the current
// track. It reports whether the result was used.
func (c *Controller) ApplyLyrics(r lyrics.Result) bool {
	t := c.queue.Current()
	if t == nil || r.TrackKey != t.Identity() {
		return false
	}
	if r.Err != nil {
		log.Debug().Err(r.Err).Str("track", r.TrackKey).Msg("lyrics lookup")
	}
	c.lyr = r.Lyrics
	c.updateLyricLine()
	c.redraw = true
	return true
}

// HandleCommand applies a remote control command.
func (c *Controller) HandleCommand(cmd remote.Command) {
	switch cmd.Action {
	case remote.PlayPause:
		c.TogglePause()
	case remote.Play:
		if c.State() != player.Playing {
			c.TogglePause()
		}
	case remote.Pause:
		if c.State() == player.Playing {
			c.TogglePause()
		}
	case remote.Stop:
		c.Stop()
	case remote.Next:
		c.Next()
	case remote.Previous:
		c.Previous()
	case remote.Seek:
		c.Seek(cmd.Offset)
	case remote.SetPosition:
		c.SeekTo(cmd.Offset)
	case remote.CycleLoop:
		c.CycleLoopMode()
	}
}

// Shutdown persists what is needed for the next launch and releases the
// backend and sinks.
func (c *Controller) Shutdown() {
	c.SaveLastPosition()
	c.queueChanged()
	c.backend.Stop()
	c.notifySink(func(s sink.Sink) error { return s.Stop() })
}

func (c *Controller) notifySink(call func(sink.Sink) error) {
	if c.sink == nil {
		return
	}
	if err := call(c.sink); err != nil {
		c.setNotice(errmsg.Format(errmsg.OpSinkUpdate, err))
	}
}

func (c *Controller) queueChanged() {
	if c.persister != nil {
		c.persister.ScheduleQueueSave(state.CaptureQueue(c.queue))
	}
}

func (c *Controller) emitLoopback(ev player.Event) {
	select {
	case c.loopback <- ev:
	default:
	}
}

func (c *Controller) refreshTitle() {
	t := c.queue.Current()
	if t == nil {
		c.title = ""
		return
	}
	icon := "▶"
	if c.backend.IsPaused() {
		icon = "⏸"
	}
	c.title = fmt.Sprintf("%s %s", icon, t.DisplayName())
}

func (c *Controller) updateLyricLine() {
	line := c.lyr.TextAt(c.TimePos())
	if line != c.lyricLine {
		c.lyricLine = line
		c.redraw = true
	}
}

// SetNotice shows msg until it is replaced or cleared.
func (c *Controller) SetNotice(msg string) { c.setNotice(msg) }

func (c *Controller) setNotice(msg string) {
	if msg == "" {
		return
	}
	log.Warn().Msg(msg)
	c.notice = msg
	c.redraw = true
}

func (c *Controller) ClearNotice() {
	if c.notice != "" {
		c.notice = ""
		c.redraw = true
	}
}

// Loopback carries events the controller emits to itself.
func (c *Controller) Loopback() <-chan player.Event { return c.loopback }

func (c *Controller) NeedsRedraw() bool { return c.redraw }

// ClearRedraw is called once the view has been rendered.
func (c *Controller) ClearRedraw() {
	c.redraw = false
	c.lastRedraw = time.Now()
}

func (c *Controller) ForceRedraw() { c.redraw = true }

// SinceLastRedraw is the time since the view was last rendered.
func (c *Controller) SinceLastRedraw() time.Duration { return time.Since(c.lastRedraw) }

func (c *Controller) TimePos() time.Duration { return time.Duration(c.timePos) * time.Second }

func (c *Controller) Duration() time.Duration { return c.duration }

func (c *Controller) Title() string { return c.title }

func (c *Controller) LyricLine() string { return c.lyricLine }

func (c *Controller) Notice() string { return c.notice }

func (c *Controller) Volume() int { return c.volume }

func (c *Controller) LoopMode() playlist.LoopMode { return c.queue.LoopMode() }

// Queue exposes the queue for rendering. Callers must not mutate it.
func (c *Controller) Queue() *playlist.Queue { return c.queue }

// Token identifies the stream the backend is currently playing.
func (c *Controller) Token() player.Token { return c.token }
