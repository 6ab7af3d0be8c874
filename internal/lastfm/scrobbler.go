package lastfm

import (
	"sync"
	"time"

	"github.com/llehouerou/wavecast/internal/playlist"
)

const (
	minScrobbleLength = 30 * time.Second
	maxScrobbleWait   = 4 * time.Minute
)

// API is the part of Client the scrobbler uses.
type API interface {
	UpdateNowPlaying(ScrobbleTrack) error
	Scrobble(ScrobbleTrack) error
}

type request struct {
	track      ScrobbleTrack
	nowPlaying bool
}

// Scrobbler is a playback sink that reports now-playing updates and
// scrobbles tracks listened to for half their length or four minutes.
// Requests run on a single goroutine; failures surface on Errors.
type Scrobbler struct {
	api API
	now func() time.Time

	track    playlist.Track
	active   bool
	started  time.Time
	playedAt time.Time
	played   time.Duration
	paused   bool

	reqs   chan request
	errs   chan error
	wg     sync.WaitGroup
	closed bool
}

func NewScrobbler(api API) *Scrobbler {
	s := &Scrobbler{
		api:  api,
		now:  time.Now,
		reqs: make(chan request, 16),
		errs: make(chan error, 8),
	}
	s.wg.Add(1)
	go s.loop()
	return s
}

func (s *Scrobbler) loop() {
	defer s.wg.Done()
	for r := range s.reqs {
		var err error
		if r.nowPlaying {
			err = s.api.UpdateNowPlaying(r.track)
		} else {
			err = s.api.Scrobble(r.track)
		}
		if err != nil {
			select {
			case s.errs <- err:
			default:
			}
		}
	}
}

// Errors delivers request failures. Errors are dropped when nobody reads.
func (s *Scrobbler) Errors() <-chan error { return s.errs }

// Close finishes pending requests.
func (s *Scrobbler) Close() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.reqs)
	s.wg.Wait()
}

func (s *Scrobbler) AddAndPlay(t playlist.Track) error {
	s.finish()
	if !eligible(t) {
		return nil
	}
	now := s.now()
	s.track = t
	s.active = true
	s.started = now
	s.playedAt = now
	s.played = 0
	s.paused = false
	s.submit(request{track: fromTrack(t, now), nowPlaying: true})
	return nil
}

func (s *Scrobbler) Resume(time.Duration) error {
	if s.active && s.paused {
		s.paused = false
		s.playedAt = s.now()
	}
	return nil
}

func (s *Scrobbler) Pause() error {
	if s.active && !s.paused {
		s.played += s.now().Sub(s.playedAt)
		s.paused = true
	}
	return nil
}

// Update picks up a duration learned after playback started.
func (s *Scrobbler) Update(t playlist.Track) error {
	if s.active && t.Identity() == s.track.Identity() {
		s.track.Duration = t.Duration
	}
	return nil
}

func (s *Scrobbler) Stop() error {
	s.finish()
	return nil
}

func (s *Scrobbler) finish() {
	if !s.active {
		return
	}
	s.active = false
	played := s.played
	if !s.paused {
		played += s.now().Sub(s.playedAt)
	}
	if shouldScrobble(s.track.Duration, played) {
		s.submit(request{track: fromTrack(s.track, s.started)})
	}
}

func (s *Scrobbler) submit(r request) {
	if s.closed {
		return
	}
	select {
	case s.reqs <- r:
	default:
	}
}

func shouldScrobble(length, played time.Duration) bool {
	if length <= minScrobbleLength {
		return false
	}
	return played >= min(length/2, maxScrobbleWait)
}
