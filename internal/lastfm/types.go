package lastfm

import (
	"time"

	"github.com/llehouerou/wavecast/internal/playlist"
)

// ScrobbleTrack contains track metadata for scrobbling.
type ScrobbleTrack struct {
	Artist    string
	Track     string
	Album     string
	Duration  time.Duration
	Timestamp time.Time // When playback started
}

func fromTrack(t playlist.Track, started time.Time) ScrobbleTrack {
	return ScrobbleTrack{
		Artist:    t.Artist,
		Track:     t.Title,
		Album:     t.Album,
		Duration:  t.Duration,
		Timestamp: started,
	}
}

// eligible reports whether t carries enough metadata to be scrobbled.
// Podcasts are never scrobbled.
func eligible(t playlist.Track) bool {
	return t.MediaType == playlist.MediaMusic && t.Artist != "" && t.Title != ""
}
