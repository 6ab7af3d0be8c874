// Package sink defines the optional desktop integrations that mirror
// playback: media keys, notifications, scrobbling.
package sink

import (
	"errors"
	"time"

	"github.com/llehouerou/wavecast/internal/playlist"
)

// Sink receives playback changes from the session controller. Calls are made
// on the control loop and must not block on the network.
type Sink interface {
	AddAndPlay(t playlist.Track) error
	Resume(pos time.Duration) error
	Pause() error
	Update(t playlist.Track) error
	Stop() error
}

// Join combines sinks into one. Nil entries are dropped; it returns nil when
// nothing is left so callers can skip the integration entirely.
func Join(sinks ...Sink) Sink {
	var m multi
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	default:
		return m
	}
}

// multi calls every sink and joins the errors.
type multi []Sink

func (m multi) each(fn func(Sink) error) error {
	var errs []error
	for _, s := range m {
		if err := fn(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multi) AddAndPlay(t playlist.Track) error {
	return m.each(func(s Sink) error { return s.AddAndPlay(t) })
}

func (m multi) Resume(pos time.Duration) error {
	return m.each(func(s Sink) error { return s.Resume(pos) })
}

func (m multi) Pause() error {
	return m.each(func(s Sink) error { return s.Pause() })
}

func (m multi) Update(t playlist.Track) error {
	return m.each(func(s Sink) error { return s.Update(t) })
}

func (m multi) Stop() error {
	return m.each(func(s Sink) error { return s.Stop() })
}
