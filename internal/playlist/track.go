package playlist

import (
	"fmt"
	"time"
)

// MediaType tells which store keeps a track's resume position.
type MediaType int

const (
	MediaNone MediaType = iota
	MediaMusic
	MediaPodcast
)

func (m MediaType) String() string {
	switch m {
	case MediaMusic:
		return "music"
	case MediaPodcast:
		return "podcast"
	default:
		return "none"
	}
}

// ParseMediaType is the inverse of MediaType.String. Unknown values map to MediaNone.
func ParseMediaType(s string) MediaType {
	switch s {
	case "music":
		return MediaMusic
	case "podcast":
		return MediaPodcast
	default:
		return MediaNone
	}
}

// Track represents a single playable item in the queue.
type Track struct {
	Key       string // stable identity: file path for music, episode URL or GUID for podcasts
	Path      string // local file path for playback
	Title     string
	Artist    string
	Album     string
	MediaType MediaType
	Duration  time.Duration // 0 when unknown
}

// Identity returns the key used to persist per-track state.
func (t Track) Identity() string {
	if t.Key != "" {
		return t.Key
	}
	return t.Path
}

// DisplayName returns "Artist - Title", falling back to the path.
func (t Track) DisplayName() string {
	switch {
	case t.Title != "" && t.Artist != "":
		return fmt.Sprintf("%s - %s", t.Artist, t.Title)
	case t.Title != "":
		return t.Title
	default:
		return t.Path
	}
}
