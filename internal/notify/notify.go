// Package notify announces tracks as desktop notifications.
package notify

import (
	"strings"

	"github.com/llehouerou/wavecast/internal/playlist"
)

// Urgency is the freedesktop urgency hint.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
)

// Timeouts in milliseconds. Episodes stay a little longer since their
// titles tend to be long.
const (
	trackTimeout   int32 = 5000
	episodeTimeout int32 = 8000
)

// Notification is one desktop notification. It is comparable so a sink can
// skip re-sending an unchanged one.
type Notification struct {
	Title      string
	Body       string
	Icon       string // cover file, empty for none
	Timeout    int32
	ReplacesID uint32
	Urgency    Urgency
	Transient  bool // kept out of the notification history
}

// Notifier delivers notifications. Notify returns the id that later calls
// pass as ReplacesID or to Close.
type Notifier interface {
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// ForTrack builds the now-playing notification for t with icon as artwork.
func ForTrack(t playlist.Track, icon string) Notification {
	n := Notification{
		Title:     t.Title,
		Icon:      icon,
		Timeout:   trackTimeout,
		Urgency:   UrgencyLow,
		Transient: true,
	}
	if n.Title == "" {
		n.Title = t.DisplayName()
	}

	parts := make([]string, 0, 3)
	if t.MediaType == playlist.MediaPodcast {
		parts = append(parts, "Podcast")
		n.Timeout = episodeTimeout
	}
	if t.Artist != "" {
		parts = append(parts, t.Artist)
	}
	if t.Album != "" {
		parts = append(parts, t.Album)
	}
	n.Body = strings.Join(parts, " · ")
	return n
}

// nopNotifier drops everything. Used when no notification service exists.
type nopNotifier struct{}

func (nopNotifier) Notify(Notification) (uint32, error) { return 0, nil }

func (nopNotifier) Close(uint32) error { return nil }
