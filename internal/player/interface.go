// internal/player/interface.go
package player

import (
	"errors"
	"time"

	"github.com/llehouerou/wavecast/internal/playlist"
)

var (
	ErrNotPlaying        = errors.New("nothing is playing")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Token identifies one Play call. Events carry the token of the track that
// produced them so late events from a replaced track can be recognised.
type Token uint64

// Backend is the audio backend driven by the session controller.
type Backend interface {
	Play(t playlist.Track, token Token) error
	Pause()
	Resume()
	Stop()
	// Skip ends the current track now and reports it through a TrackEnded event.
	Skip()
	Seek(delta time.Duration) error
	SeekTo(pos time.Duration) error
	// SetVolume takes a level in percent (0-100).
	SetVolume(level int)
	IsPaused() bool
	// SupportsSeekWhilePaused is false for backends that drop seeks issued
	// while paused.
	SupportsSeekWhilePaused() bool
	Events() <-chan Event
}

// Verify Player implements Backend at compile time.
var _ Backend = (*Player)(nil)
