// Package position decides which tracks get their playback position
// remembered and where it is kept.
package position

import (
	"errors"
	"fmt"
	"time"

	"github.com/llehouerou/wavecast/internal/playlist"
)

// ErrNotFound is returned by a Store that has no position for a track.
var ErrNotFound = errors.New("no saved position")

// DefaultThreshold is the minimum duration for Auto to remember a position.
const DefaultThreshold = 600 * time.Second

// Store keeps one resume position per track identity.
type Store interface {
	GetLastPosition(t playlist.Track) (time.Duration, error)
	SetLastPosition(t playlist.Track, pos time.Duration) error
}

// Stores pairs the music library store with the podcast store.
type Stores struct {
	Music   Store
	Podcast Store
}

// For returns the store for a media type, or nil when tracks of that type
// are never persisted.
func (s Stores) For(m playlist.MediaType) Store {
	switch m {
	case playlist.MediaMusic:
		return s.Music
	case playlist.MediaPodcast:
		return s.Podcast
	default:
		return nil
	}
}

type Mode int

const (
	Never Mode = iota
	Always
	Auto
)

func (m Mode) String() string {
	switch m {
	case Always:
		return "yes"
	case Auto:
		return "auto"
	default:
		return "no"
	}
}

// ParseMode accepts the config spellings "auto", "yes"/"always", "no"/"never".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "auto":
		return Auto, nil
	case "yes", "always", "true":
		return Always, nil
	case "no", "never", "false":
		return Never, nil
	default:
		return Auto, fmt.Errorf("unknown position mode %q", s)
	}
}

// Policy decides whether a track's position is saved and restored.
type Policy struct {
	Mode      Mode
	Threshold time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Mode: Auto, Threshold: DefaultThreshold}
}

// Applies reports whether positions are remembered for t. Auto needs a known
// duration of at least the threshold.
func (p Policy) Applies(t playlist.Track) bool {
	switch p.Mode {
	case Always:
		return true
	case Auto:
		threshold := p.Threshold
		if threshold <= 0 {
			threshold = DefaultThreshold
		}
		return t.Duration >= threshold
	default:
		return false
	}
}

// StoreFor combines Policy and Stores: it returns the store to use for t, or
// nil when t's position must not be touched.
func (p Policy) StoreFor(stores Stores, t playlist.Track) Store {
	if !p.Applies(t) {
		return nil
	}
	return stores.For(t.MediaType)
}
