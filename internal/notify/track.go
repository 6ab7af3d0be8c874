package notify

import (
	"time"

	"github.com/llehouerou/wavecast/internal/playlist"
)

// TrackSink keeps one notification for the current track, replacing it on
// every track change.
type TrackSink struct {
	n    Notifier
	art  func() string
	id   uint32
	last Notification // as sent, without ReplacesID
}

// NewTrackSink wraps n. art returns the cover path used as icon and may be nil.
func NewTrackSink(n Notifier, art func() string) *TrackSink {
	return &TrackSink{n: n, art: art}
}

// AddAndPlay announces t, even when it is the track already shown.
func (s *TrackSink) AddAndPlay(t playlist.Track) error {
	return s.show(ForTrack(t, s.icon()))
}

// Update re-issues the shown notification when the track details or the
// cover changed since it was sent.
func (s *TrackSink) Update(t playlist.Track) error {
	if s.id == 0 {
		return nil
	}
	notif := ForTrack(t, s.icon())
	if notif == s.last {
		return nil
	}
	return s.show(notif)
}

func (s *TrackSink) Resume(time.Duration) error { return nil }

func (s *TrackSink) Pause() error { return nil }

// Stop withdraws the notification.
func (s *TrackSink) Stop() error {
	if s.id == 0 {
		return nil
	}
	id := s.id
	s.id = 0
	s.last = Notification{}
	return s.n.Close(id)
}

func (s *TrackSink) show(notif Notification) error {
	sent := notif
	sent.ReplacesID = s.id
	id, err := s.n.Notify(sent)
	if err != nil {
		return err
	}
	s.id = id
	s.last = notif
	return nil
}

func (s *TrackSink) icon() string {
	if s.art == nil {
		return ""
	}
	return s.art()
}
