// Package mpris exposes playback over the MPRIS D-Bus interface.
package mpris

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/llehouerou/wavecast/internal/player"
	"github.com/llehouerou/wavecast/internal/playlist"
)

// Snapshot is the playback view served to D-Bus clients. The session
// controller writes it through the sink methods; the bus goroutine reads it.
type Snapshot struct {
	art func() string
	now func() time.Time

	mu       sync.RWMutex
	state    player.State
	track    playlist.Track
	hasTrack bool
	base     time.Duration
	since    time.Time
}

// NewSnapshot creates an empty snapshot. art returns the current cover path
// and may be nil.
func NewSnapshot(art func() string) *Snapshot {
	return &Snapshot{art: art, now: time.Now}
}

func (s *Snapshot) AddAndPlay(t playlist.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track = t
	s.hasTrack = true
	s.state = player.Playing
	s.base = 0
	s.since = s.now()
	return nil
}

func (s *Snapshot) Resume(pos time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = player.Playing
	s.base = pos
	s.since = s.now()
	return nil
}

func (s *Snapshot) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = s.positionLocked()
	s.state = player.Paused
	return nil
}

func (s *Snapshot) Update(t playlist.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track = t
	s.hasTrack = true
	return nil
}

func (s *Snapshot) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = player.Stopped
	s.track = playlist.Track{}
	s.hasTrack = false
	s.base = 0
	return nil
}

func (s *Snapshot) State() player.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Track returns the announced track, if any.
func (s *Snapshot) Track() (playlist.Track, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.track, s.hasTrack
}

// Position extrapolates from the last announced position while playing.
func (s *Snapshot) Position() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.positionLocked()
}

func (s *Snapshot) positionLocked() time.Duration {
	pos := s.base
	if s.state == player.Playing {
		pos += s.now().Sub(s.since)
	}
	if s.track.Duration > 0 && pos > s.track.Duration {
		pos = s.track.Duration
	}
	return pos
}

// ArtURL returns a file:// URL for the current cover, or "".
func (s *Snapshot) ArtURL() string {
	if s.art == nil {
		return ""
	}
	if p := s.art(); p != "" {
		return "file://" + p
	}
	return ""
}

func formatTrackID(key string) string {
	h := fnv.New64a()
	h.Write([]byte(key))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
